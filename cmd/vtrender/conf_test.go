package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestInitConfDefaults(t *testing.T) {
	viper.Reset()
	conf = nil
	InitConf("")

	if conf.Render.Size != 512 {
		t.Errorf("Expected size 512, got %d", conf.Render.Size)
	}
	if conf.Render.Scale != 1 {
		t.Errorf("Expected scale 1, got %g", conf.Render.Scale)
	}
	if conf.Render.MaxTileSize != 64<<20 {
		t.Errorf("Expected max tile size 64MB, got %d", conf.Render.MaxTileSize)
	}
	if !conf.Output.OutputTerminal {
		t.Error("Expected terminal output by default")
	}
}

func TestInitConfFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vtrender.toml")
	data := `[style]
path = "style.json"

[source]
mbtiles = "osm.mbtiles"
zoom = 14
x = 8529
y = 5975

[render]
size = 256
scale = 2.0
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	viper.Reset()
	conf = nil
	InitConf(path)

	if conf.Style.Path != "style.json" {
		t.Errorf("Expected style.json, got %q", conf.Style.Path)
	}
	if conf.Source.MBTiles != "osm.mbtiles" || conf.Source.Zoom != 14 || conf.Source.X != 8529 || conf.Source.Y != 5975 {
		t.Errorf("Unexpected source %+v", conf.Source)
	}
	if conf.Render.Size != 256 || conf.Render.Scale != 2 {
		t.Errorf("Expected size 256 scale 2, got %d %g", conf.Render.Size, conf.Render.Scale)
	}
	if conf.Render.MaxTileSize != 64<<20 {
		t.Errorf("Expected default max tile size, got %d", conf.Render.MaxTileSize)
	}
}
