package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/vtrender/pkg/vtile"
)

func render(stylePath, tilePath string, zoom int) (*vtile.Result, error) {
	s, err := vtile.LoadStyleFile(stylePath)
	if err != nil {
		var se *vtile.StyleError
		if errors.As(err, &se) {
			return nil, fmt.Errorf("unusable style %s: %w", stylePath, err)
		}
		return nil, err
	}

	data, err := os.ReadFile(tilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("tile file not found: %s", tilePath)
		}
		return nil, err
	}

	res, err := vtile.Render(data, zoom, s, vtile.DefaultOptions())
	if err != nil {
		// Malformed wire data fails the whole tile
		var de *vtile.DecodeError
		if errors.As(err, &de) {
			log.Printf("Corrupt tile %s at byte %d", tilePath, de.Offset)
		}
		// Oversized gzip payloads
		if errors.Is(err, vtile.ErrTooLarge) {
			log.Printf("Tile %s is too large", tilePath)
		}
		return nil, err
	}

	// Malformed features are skipped, not reported
	if len(res.Intents) == 0 {
		log.Printf("Warning: %s rendered nothing at zoom %d", tilePath, zoom)
	}
	return res, nil
}

func main() {
	res, err := render("style.json", "14-8529-5975.pbf", 14)
	if err != nil {
		log.Printf("Error: %v", err)
		return
	}
	fmt.Printf("Rendered %d intents\n", len(res.Intents))

	// Try a truncated tile
	if err := os.WriteFile("broken.pbf", []byte{0x1a, 0x09, 0x0a}, 0o644); err == nil {
		defer os.Remove("broken.pbf")
		_, err = render("style.json", "broken.pbf", 14)
		log.Printf("Expected error: %v", err)
	}
}
