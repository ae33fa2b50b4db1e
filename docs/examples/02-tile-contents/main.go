package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/vtrender/pkg/vtile"
)

func main() {
	data, err := os.ReadFile("14-8529-5975.pbf")
	if err != nil {
		log.Fatal(err)
	}

	tile, err := vtile.Decode(data)
	if err != nil {
		log.Fatal(err)
	}

	for _, layer := range tile.Layers {
		fmt.Printf("%s (v%d, extent %d): %d features\n",
			layer.Name, layer.Version, layer.Extent, len(layer.Features))

		// Print the tags and geometry of the first few features
		for i, f := range layer.Features {
			if i == 3 {
				break
			}
			fmt.Printf("  #%d %s", f.ID, f.Type)
			for j := 0; j+1 < len(f.Tags); j += 2 {
				fmt.Printf(" %s=%s", layer.Keys[f.Tags[j]], layer.Values[f.Tags[j+1]])
			}
			fmt.Println()

			path, err := f.Path()
			if err != nil {
				fmt.Printf("    bad geometry: %v\n", err)
				continue
			}
			fmt.Printf("    %d parts, bounds %v\n", len(path.SubPaths()), path.Bound())
		}
	}
}
