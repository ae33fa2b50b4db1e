package vtile

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/beetlebugorg/vtrender/internal/style"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

const testStyle = `{
	"layers": [
		{"id": "bg", "type": "background", "paint": {"background-color": "#ffffff"}},
		{"id": "water", "type": "fill", "source-layer": "water", "paint": {"fill-color": "#0000ff"}},
		{"id": "labels", "type": "symbol", "source-layer": "water",
		 "filter": ["has", "name"],
		 "layout": {"text-field": "{name}"}}
	]
}`

func testTile(t *testing.T, gzipped bool) []byte {
	t.Helper()
	fc := geojson.NewFeatureCollection()
	lake := geojson.NewFeature(orb.Polygon{{{1024, 1024}, {3072, 1024}, {3072, 3072}, {1024, 3072}, {1024, 1024}}})
	lake.Properties["name"] = "Lake"
	fc.Append(lake)

	layers := mvt.NewLayers(map[string]*geojson.FeatureCollection{"water": fc})
	var data []byte
	var err error
	if gzipped {
		data, err = mvt.MarshalGzipped(layers)
	} else {
		data, err = mvt.Marshal(layers)
	}
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestDecode(t *testing.T) {
	for _, gzipped := range []bool{false, true} {
		tile, err := Decode(testTile(t, gzipped))
		if err != nil {
			t.Fatalf("Decode(gzipped=%v): %v", gzipped, err)
		}
		if l := tile.Layer("water"); l == nil || len(l.Features) != 1 {
			t.Errorf("Expected water layer with one feature, got %+v", l)
		}
	}

	_, err := Decode([]byte{0x1a, 0x09, 0x0a})
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Errorf("Expected *DecodeError, got %v", err)
	}

	opts := DefaultOptions()
	opts.MaxLayers = 1
	if _, err := DecodeWithOptions(testTile(t, false), opts); err != nil {
		t.Errorf("Expected tile within limits, got %v", err)
	}
}

func TestRender(t *testing.T) {
	s, err := LoadStyle([]byte(testStyle))
	if err != nil {
		t.Fatalf("LoadStyle: %v", err)
	}

	opts := DefaultOptions()
	opts.Width, opts.Height = 256, 256
	opts.Logger = quietLogger()
	res, err := Render(testTile(t, true), 12, s, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if len(res.Intents) != 2 {
		t.Fatalf("Expected fill and label, got %d intents", len(res.Intents))
	}
	if res.Intents[0].Kind != KindFill || res.Intents[1].Kind != KindLabel {
		t.Errorf("Unexpected intent kinds %s, %s", res.Intents[0].Kind, res.Intents[1].Kind)
	}
	if got := res.Intents[0].Path.Geometry[0][0]; got != (orb.Point{64, 64}) {
		t.Errorf("Expected first vertex scaled to (64,64), got %v", got)
	}
	if l := res.Intents[1].Label; l.Text != "Lake" || l.Anchor != (orb.Point{64, 64}) {
		t.Errorf("Unexpected label %+v", l)
	}
	if res.Size.X != 256 || res.ScaleX != 1 {
		t.Errorf("Unexpected result size %v scale %v", res.Size, res.ScaleX)
	}
}

func TestLoadStyleErrors(t *testing.T) {
	if _, err := LoadStyle([]byte(`{"layers": 3}`)); err == nil {
		t.Error("Expected error without a layers array")
	}
	var se *StyleError
	if _, err := LoadStyle([]byte(`{`)); !errors.As(err, &se) {
		t.Errorf("Expected *StyleError, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "style.json")
	if err := os.WriteFile(path, []byte(testStyle), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadStyleFile(path)
	if err != nil {
		t.Fatalf("LoadStyleFile: %v", err)
	}
	if len(s.Layers()) != 3 {
		t.Errorf("Expected 3 layers, got %d", len(s.Layers()))
	}
}

func TestFontDirFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.ttf"), []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	fonts := NewFontDir(dir, quietLogger())
	faces, err := fonts.Faces()
	if err != nil || len(faces) != 0 {
		t.Errorf("Expected no usable faces, got %v %v", faces, err)
	}

	f := fonts.Resolve([]string{"Noto Sans Italic", "Open Sans Regular"})
	if f.Family != "Noto Sans" || !f.Italic || f.Handle != nil {
		t.Errorf("Expected fallback to the first hint, got %+v", f)
	}

	missing := NewFontDir(filepath.Join(dir, "missing"), quietLogger())
	if _, err := missing.Faces(); err == nil {
		t.Error("Expected error for a missing directory")
	}
	if f := missing.Resolve(nil); f.Family != "Open Sans" {
		t.Errorf("Expected default font, got %+v", f)
	}
}

func TestFontMatch(t *testing.T) {
	faces := []FontFace{
		{Family: "Noto Sans", Subfamily: "Regular", Path: "regular.ttf"},
		{Family: "Noto Sans", Subfamily: "Bold", Path: "bold.ttf"},
		{Family: "Open Sans", Subfamily: "Regular", Path: "open.ttf"},
	}
	tests := []struct {
		name string
		path string
		ok   bool
	}{
		{"Noto Sans Bold", "bold.ttf", true},
		{"Noto Sans Regular", "regular.ttf", true},
		{"Noto Sans Italic", "regular.ttf", true},
		{"Open Sans Semibold", "open.ttf", true},
		{"Roboto Regular", "", false},
	}
	for _, tt := range tests {
		face, ok := match(faces, style.ParseFontName(tt.name))
		if ok != tt.ok || face.Path != tt.path {
			t.Errorf("match(%q): expected %q %v, got %q %v", tt.name, tt.path, tt.ok, face.Path, ok)
		}
	}
}
