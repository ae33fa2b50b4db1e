package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	hf         bool
	configPath string
	logLevel   string
)

var flags = pflag.NewFlagSet("vtrender", pflag.ExitOnError)

// InitFlag parses the command line. Flags other than -h, -c and -l
// override the matching config keys.
func InitFlag() {
	flags.BoolVarP(&hf, "help", "h", false, "this help")
	flags.StringVarP(&configPath, "config", "c", "", "set config `file`")
	flags.StringVarP(&logLevel, "level", "l", "info", "set log level")

	flags.String("style", "", "style `file`")
	flags.String("tile", "", "tile `file` (.pbf/.mvt, gzipped or not)")
	flags.String("mbtiles", "", "MBTiles `file` to read tiles from")
	flags.IntP("zoom", "z", 0, "zoom level")
	flags.IntP("col", "x", 0, "tile column (MBTiles)")
	flags.IntP("row", "y", 0, "tile row, XYZ scheme (MBTiles)")
	flags.Bool("all", false, "render every tile of the zoom level (MBTiles)")
	flags.Int("size", 0, "output size in pixels")
	flags.Float64("scale", 0, "device pixel ratio")
	flags.String("sprite", "", "sprite `prefix`, reads prefix.json and prefix.png")
	flags.String("fonts", "", "font `directory`")
	flags.StringP("out", "o", "", "output file, or directory with --all (default stdout)")
	flags.Bool("pretty", false, "indent JSON output")

	flags.Usage = usage
	flags.Parse(os.Args[1:])

	if hf {
		flags.Usage()
		os.Exit(0)
	}

	bind := map[string]string{
		"style.path":     "style",
		"source.tile":    "tile",
		"source.mbtiles": "mbtiles",
		"source.zoom":    "zoom",
		"source.x":       "col",
		"source.y":       "row",
		"source.all":     "all",
		"render.size":    "size",
		"render.scale":   "scale",
		"sprite.prefix":  "sprite",
		"fonts.dir":      "fonts",
		"output.path":    "out",
		"output.pretty":  "pretty",
	}
	for key, name := range bind {
		viper.BindPFlag(key, flags.Lookup(name))
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `vtrender version: vtrender/v0.1.0
Usage: vtrender [-h] [-c filename] [-l logLevel] --style file (--tile file -z zoom | --mbtiles file -z zoom [-x col -y row | --all])
`)
	flags.PrintDefaults()
}
