package parser

import (
	"fmt"
)

// ValidateTags checks that a feature's tags are well formed against its
// layer: an even number of entries and every key and value index in range.
func ValidateTags(layer *Layer, f *Feature) error {
	if len(f.Tags)%2 != 0 {
		return &FeatureError{ID: f.ID, Index: -1, Reason: fmt.Sprintf("odd tag count %d", len(f.Tags))}
	}
	for i := 0; i < len(f.Tags); i += 2 {
		if int(f.Tags[i]) >= len(layer.Keys) {
			return &FeatureError{ID: f.ID, Index: i,
				Reason: fmt.Sprintf("key index %d out of range (%d keys)", f.Tags[i], len(layer.Keys))}
		}
		if int(f.Tags[i+1]) >= len(layer.Values) {
			return &FeatureError{ID: f.ID, Index: i + 1,
				Reason: fmt.Sprintf("value index %d out of range (%d values)", f.Tags[i+1], len(layer.Values))}
		}
	}
	return nil
}

// ValidateFeature checks tags and geometry of a feature.
func ValidateFeature(layer *Layer, f *Feature) error {
	if f == nil {
		return fmt.Errorf("feature is nil")
	}
	if err := ValidateTags(layer, f); err != nil {
		return err
	}
	if _, err := f.Path(); err != nil {
		return fmt.Errorf("layer %q: %w", layer.Name, err)
	}
	return nil
}
