package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/vtrender/pkg/vtile"
)

func main() {
	// Load style
	style, err := vtile.LoadStyleFile("style.json")
	if err != nil {
		log.Fatal(err)
	}

	// Read a tile, gzipped or not
	data, err := os.ReadFile("14-8529-5975.pbf")
	if err != nil {
		log.Fatal(err)
	}

	// Render at zoom 14
	res, err := vtile.Render(data, 14, style, vtile.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Background: %v\n", res.Background)
	fmt.Printf("Paths: %d\n", len(res.Paths()))
	for _, l := range res.Labels() {
		fmt.Printf("Label %q at %v\n", l.Text, l.Anchor)
	}
}
