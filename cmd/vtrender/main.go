// Command vtrender renders vector tiles with a style and prints the
// resulting draw intents as JSON.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/beetlebugorg/vtrender/pkg/vtile"
	jsoniter "github.com/json-iterator/go"
	"github.com/paulmach/orb/maptile"
	pb "gopkg.in/cheggaaa/pb.v1"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	InitFlag()
	InitConf(configPath)
	InitLog()

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if conf.Style.Path == "" {
		flags.Usage()
		return errors.New("no style given")
	}
	s, err := vtile.LoadStyleFile(conf.Style.Path)
	if err != nil {
		return err
	}
	r := vtile.NewRenderer(s, renderOptions())

	if conf.Source.Tile != "" {
		data, err := os.ReadFile(conf.Source.Tile)
		if err != nil {
			return err
		}
		return renderOne(r, data, conf.Source.Zoom, conf.Output.Path)
	}
	if conf.Source.MBTiles == "" {
		flags.Usage()
		return errors.New("no tile source given")
	}

	db, err := OpenMBTiles(conf.Source.MBTiles)
	if err != nil {
		return err
	}
	defer db.Close()

	if meta, err := db.Metadata(); err == nil {
		log.Debugf("%s: name=%q format=%q", conf.Source.MBTiles, meta["name"], meta["format"])
	}

	z := maptile.Zoom(conf.Source.Zoom)
	if conf.Source.All {
		return renderZoom(r, db, z, conf.Output.Path)
	}
	data, err := db.Tile(maptile.New(uint32(conf.Source.X), uint32(conf.Source.Y), z))
	if err != nil {
		return err
	}
	return renderOne(r, data, int(z), conf.Output.Path)
}

func renderOptions() vtile.Options {
	opts := vtile.DefaultOptions()
	opts.Width = conf.Render.Size
	opts.Height = conf.Render.Size
	opts.ScaleX = conf.Render.Scale
	opts.ScaleY = conf.Render.Scale
	opts.MaxTileSize = conf.Render.MaxTileSize
	opts.MaxLayers = conf.Render.MaxLayers
	opts.MaxFeatures = conf.Render.MaxFeatures
	opts.Logger = log

	if conf.Fonts.Dir != "" {
		opts.Fonts = vtile.NewFontDir(conf.Fonts.Dir, log)
	}
	if conf.Sprite.Prefix != "" {
		if sprites, err := loadSprites(conf.Sprite.Prefix, conf.Render.Scale); err != nil {
			log.Warnf("sprites unavailable: %v", err)
		} else {
			opts.Sprites = sprites
		}
	}
	return opts
}

// loadSprites prefers the @2x atlas on high density output.
func loadSprites(prefix string, scale float64) (*vtile.Sprites, error) {
	sopts := vtile.SpriteOptions{CacheSize: conf.Sprite.CacheSize, Logger: log}
	if scale >= 2 {
		if _, err := os.Stat(prefix + "@2x.json"); err == nil {
			return vtile.LoadSpritesFile(prefix+"@2x.json", prefix+"@2x.png", sopts)
		}
	}
	return vtile.LoadSpritesFile(prefix+".json", prefix+".png", sopts)
}

func renderOne(r *vtile.Renderer, data []byte, zoom int, out string) error {
	res, err := r.Render(data, zoom)
	if err != nil {
		return err
	}
	if out == "" {
		return writeResult(os.Stdout, res, conf.Output.Pretty)
	}
	return writeFile(out, res)
}

// renderZoom renders every tile of zoom z, one after another, into
// out/z/x/y.json. Tiles that fail are logged and skipped.
func renderZoom(r *vtile.Renderer, db *MBTiles, z maptile.Zoom, out string) error {
	if out == "" {
		return errors.New("--all needs an output directory")
	}
	tiles, err := db.Tiles(z)
	if err != nil {
		return err
	}

	bar := pb.New(len(tiles)).Prefix(fmt.Sprintf("Zoom %d : ", z))
	bar.Start()
	failed := 0
	for _, t := range tiles {
		bar.Increment()
		if err := renderTile(r, db, t, out); err != nil {
			failed++
			log.Warnf("tile %d/%d/%d: %v", t.Z, t.X, t.Y, err)
		}
	}
	bar.FinishPrint(fmt.Sprintf("zoom %d: %d tiles, %d failed", z, len(tiles), failed))
	return nil
}

func renderTile(r *vtile.Renderer, db *MBTiles, t maptile.Tile, out string) error {
	data, err := db.Tile(t)
	if err != nil {
		return err
	}
	res, err := r.Render(data, int(t.Z))
	if err != nil {
		return err
	}
	return writeFile(tilePath(out, t), res)
}

func tilePath(dir string, t maptile.Tile) string {
	return filepath.Join(dir, fmt.Sprint(t.Z), fmt.Sprint(t.X), fmt.Sprintf("%d.json", t.Y))
}

func writeFile(path string, res *vtile.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeResult(f, res, conf.Output.Pretty); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeResult(w io.Writer, res *vtile.Result, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(res)
}
