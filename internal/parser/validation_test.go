package parser

import (
	"errors"
	"testing"
)

func TestValidateTags(t *testing.T) {
	layer := &Layer{
		Name:   "poi",
		Keys:   []string{"name", "rank"},
		Values: []Value{StringValue("Cafe"), IntValue(3)},
	}

	tests := []struct {
		name  string
		tags  []uint32
		valid bool
	}{
		{"empty", nil, true},
		{"pairs", []uint32{0, 0, 1, 1}, true},
		{"odd", []uint32{0, 0, 1}, false},
		{"key out of range", []uint32{2, 0}, false},
		{"value out of range", []uint32{0, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTags(layer, &Feature{ID: 4, Tags: tt.tags})
			if tt.valid && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tt.valid {
				var fe *FeatureError
				if !errors.As(err, &fe) {
					t.Errorf("Expected *FeatureError, got %v", err)
				}
			}
		})
	}
}

func TestValidateFeatureGeometry(t *testing.T) {
	layer := &Layer{Name: "roads"}
	err := ValidateFeature(layer, &Feature{ID: 2, Geometry: []uint32{1<<3 | 1, 4}})
	var fe *FeatureError
	if !errors.As(err, &fe) {
		t.Fatalf("Expected wrapped *FeatureError, got %v", err)
	}
	if fe.ID != 2 {
		t.Errorf("Expected feature 2, got %d", fe.ID)
	}
	if ValidateFeature(layer, nil) == nil {
		t.Error("Expected error for nil feature")
	}
}
