package main

import (
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/vtrender/pkg/vtile"
)

func main() {
	s, err := vtile.LoadStyleFile("style.json")
	if err != nil {
		log.Fatal(err)
	}

	// Fonts are matched by family name against the files in ./fonts
	fonts := vtile.NewFontDir("fonts", nil)
	faces, err := fonts.Faces()
	if err != nil {
		log.Printf("No fonts: %v", err)
	}
	for _, f := range faces {
		fmt.Printf("Font: %s %s (%s)\n", f.Family, f.Subfamily, f.Path)
	}

	// The atlas image is decoded on the first icon lookup
	sprites, err := vtile.LoadSpritesFile("sprite.json", "sprite.png", vtile.DefaultSpriteOptions())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Sprites: %d\n", len(sprites.Names()))

	opts := vtile.DefaultOptions()
	opts.Fonts = fonts
	opts.Sprites = sprites

	data, err := os.ReadFile("14-8529-5975.pbf")
	if err != nil {
		log.Fatal(err)
	}
	res, err := vtile.NewRenderer(s, opts).Render(data, 14)
	if err != nil {
		log.Fatal(err)
	}

	for _, l := range res.Labels() {
		fmt.Printf("%-24q %s %.0fpx", l.Text, l.Font.Family, l.Font.Size)
		if l.IconName != "" {
			fmt.Printf(" icon=%s", l.IconName)
		}
		fmt.Println()
	}

	if err := sprites.Err(); err != nil {
		log.Printf("Icons unavailable: %v", err)
	}
	stats := sprites.CacheStats()
	fmt.Printf("Icon cache: %d icons, %d bytes\n", stats.IconCount, stats.UsedMemory)
}
