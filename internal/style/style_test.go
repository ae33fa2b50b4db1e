package style

import (
	"bytes"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/beetlebugorg/vtrender/internal/parser"
	"github.com/sirupsen/logrus"
)

// testFeature is a map backed Feature.
type testFeature struct {
	id   uint64
	typ  parser.GeomType
	tags map[string]parser.Value
}

func (f testFeature) Tag(key string) (parser.Value, bool) {
	v, ok := f.tags[key]
	return v, ok
}

func (f testFeature) GeomType() parser.GeomType { return f.typ }
func (f testFeature) ID() uint64 { return f.id }

func tags(kv ...any) testFeature {
	f := testFeature{typ: parser.GeomPolygon, tags: map[string]parser.Value{}}
	for i := 0; i < len(kv); i += 2 {
		key := kv[i].(string)
		switch v := kv[i+1].(type) {
		case string:
			f.tags[key] = parser.StringValue(v)
		case int:
			f.tags[key] = parser.IntValue(int64(v))
		case float64:
			f.tags[key] = parser.DoubleValue(v)
		case bool:
			f.tags[key] = parser.BoolValue(v)
		}
	}
	return f
}

// captureLogger returns a logger writing to buf.
func captureLogger(buf *bytes.Buffer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(buf)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log
}

const testStyle = `{
	"version": 8,
	"name": "test",
	"layers": [
		{"id": "bg", "type": "background", "paint": {"background-color": "#f8f4f0"}},
		{"id": "water", "type": "fill", "source-layer": "water",
			"paint": {"fill-color": "rgb(160, 200, 240)", "fill-opacity": {"stops": [[0, 0.5], [10, 1]]}}},
		{"id": "roads", "type": "line", "source-layer": "transportation", "minzoom": 5, "maxzoom": 14,
			"filter": ["in", "class", "primary", "secondary"],
			"layout": {"line-cap": "round", "line-join": "bevel"},
			"paint": {"line-color": "#fff", "line-width": {"base": 1.2, "stops": [[5, 1], [14, 6]]}, "line-dasharray": [2, 1]}},
		{"id": "labels", "type": "symbol", "source-layer": "place",
			"layout": {"text-field": "{name}", "text-font": ["Noto Sans Bold"], "text-size": 12,
				"text-transform": "uppercase", "symbol-placement": "line", "visibility": "none"},
			"paint": {"text-color": "hsl(0, 0%, 20%)", "text-halo-color": "white", "text-halo-width": 1}},
		{"id": "park", "type": "fill", "source-layer": "landuse", "paint": {"fill-pattern": "park", "fill-color": "green"}},
		{"id": "3d", "type": "fill-extrusion", "source-layer": "building"}
	]
}`

func TestLoad(t *testing.T) {
	var buf bytes.Buffer
	doc, err := Load([]byte(testStyle), Options{Logger: captureLogger(&buf)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	layers := doc.Layers()
	if len(layers) != 6 {
		t.Fatalf("Expected 6 layers, got %d", len(layers))
	}
	if doc.Name() != "test" {
		t.Errorf("Expected name test, got %q", doc.Name())
	}

	want := []LayerType{LayerBackground, LayerFill, LayerLine, LayerSymbol, LayerFill, LayerUnknown}
	for i, l := range layers {
		if l.Type != want[i] {
			t.Errorf("layer %d: expected %s, got %s", i, want[i], l.Type)
		}
	}

	if bg := doc.Background(); bg == nil || bg.ID != "bg" {
		t.Errorf("Expected background layer bg, got %v", bg)
	}

	sources := doc.SourceLayers()
	if len(sources) != 5 || sources[0] != "water" || sources[4] != "building" {
		t.Errorf("Unexpected source layers %v", sources)
	}

	if !strings.Contains(buf.String(), "fill-extrusion") {
		t.Errorf("Expected warning about unsupported type, got %q", buf.String())
	}
}

func TestLoadErrors(t *testing.T) {
	for _, data := range []string{`{`, `{"layers": {}}`, `[]`} {
		if _, err := Load([]byte(data), DefaultOptions()); err == nil {
			t.Errorf("Expected error loading %s", data)
		}
	}

	doc, err := Load([]byte(`{"layers": []}`), DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc.Layers()) != 0 || doc.Background() != nil {
		t.Error("Expected empty style")
	}
}

func TestBackgroundMustBeFirst(t *testing.T) {
	const js = `{"layers": [
		{"id": "water", "type": "fill", "source-layer": "water"},
		{"id": "bg", "type": "background", "paint": {"background-color": "#000000"}}
	]}`
	doc, err := Load([]byte(js), DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if bg := doc.Background(); bg != nil {
		t.Errorf("Expected no background when it is not the first layer, got %s", bg.ID)
	}
}

func TestLayerProperties(t *testing.T) {
	doc, err := Load([]byte(testStyle), Options{Logger: captureLogger(&bytes.Buffer{})})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	layers := doc.Layers()

	bg := layers[0].Paint.BackgroundColor.Value(0)
	if bg != (color.NRGBA{0xf8, 0xf4, 0xf0, 0xff}) {
		t.Errorf("Unexpected background %v", bg)
	}

	water := layers[1]
	if water.Paint.FillOutlineColor.Value(3) != water.Paint.FillColor.Value(3) {
		t.Error("Expected fill-outline-color to default to fill-color")
	}
	if got := water.Paint.FillOpacity.Value(5); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("Expected fill-opacity 0.75 at z5, got %f", got)
	}

	roads := layers[2]
	if roads.InZoom(4) || !roads.InZoom(5) || !roads.InZoom(14) || roads.InZoom(14.5) {
		t.Error("Zoom range must be inclusive [5, 14]")
	}
	if roads.Layout.LineCap.Value(10) != "round" || roads.Layout.LineJoin.Value(10) != "bevel" {
		t.Error("Unexpected line cap/join")
	}
	if d := roads.Paint.LineDasharray.Value(10); len(d) != 2 || d[0] != 2 || d[1] != 1 {
		t.Errorf("Expected dash array [2 1], got %v", d)
	}
	if w := roads.Paint.LineWidth.Value(14); w != 6 {
		t.Errorf("Expected line-width 6 at z14, got %f", w)
	}

	labels := layers[3]
	if labels.Visible() {
		t.Error("Expected labels layer hidden")
	}
	if labels.Layout.TextSize.Value(0) != 12 || labels.Layout.TextMaxWidth.Value(0) != 10 || labels.Layout.TextMaxAngle.Value(0) != 45 {
		t.Error("Unexpected text size defaults")
	}
	if labels.Layout.SymbolPlacement.Value(0) != "line" {
		t.Error("Expected line placement")
	}
	if labels.Layout.TextFont[0] != "Noto Sans Bold" {
		t.Errorf("Unexpected font %v", labels.Layout.TextFont)
	}
	if labels.Paint.TextHaloColor.Value(0) != (color.NRGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("Unexpected halo color %v", labels.Paint.TextHaloColor.Value(0))
	}
	if labels.Paint.TextColor.Value(0) != (color.NRGBA{0x33, 0x33, 0x33, 0xff}) {
		t.Errorf("Unexpected text color %v", labels.Paint.TextColor.Value(0))
	}

	park := layers[4]
	if !IsTransparent(park.Paint.FillColor.Value(0)) || !IsTransparent(park.Paint.FillOutlineColor.Value(0)) {
		t.Error("fill-pattern must disable fill colors")
	}
	if park.Paint.FillPattern.Value(0) != "park" {
		t.Error("Expected fill pattern park")
	}

	if _, ok := layers[5].Filter.(None); !ok {
		t.Errorf("Expected None filter, got %T", layers[5].Filter)
	}
}

func TestLayoutDefaults(t *testing.T) {
	l := defaultLayout()
	if l.TextSize.Value(0) != 16 || l.TextMaxWidth.Value(0) != 10 || l.TextMaxAngle.Value(0) != 45 {
		t.Error("Unexpected text defaults")
	}
	if l.TextFont[0] != DefaultFont {
		t.Errorf("Expected default font %q, got %v", DefaultFont, l.TextFont)
	}
	p := defaultPaint()
	if p.FillOpacity.Value(0) != 1 || p.LineWidth.Value(0) != 1 || p.LineOpacity.Value(0) != 1 {
		t.Error("Unexpected paint defaults")
	}
	if !IsTransparent(p.TextHaloColor.Value(0)) {
		t.Error("Expected no halo by default")
	}
}

func TestMalformedPropertyKeepsDefault(t *testing.T) {
	var buf bytes.Buffer
	style := `{"layers": [{"id": "x", "type": "line", "source-layer": "a",
		"paint": {"line-width": "wide", "line-color": {"stops": []}, "line-opacity": {"stops": [[1, "a"]]}},
		"layout": {"line-cap": "pointy", "visibility": "maybe"}}]}`
	doc, err := Load([]byte(style), Options{Logger: captureLogger(&buf)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	l := doc.Layers()[0]
	if l.Paint.LineWidth.Value(0) != 1 || l.Paint.LineOpacity.Value(0) != 1 {
		t.Error("Expected defaults for malformed numbers")
	}
	if l.Paint.LineColor.Value(0) != black {
		t.Error("Expected default line color")
	}
	if l.Layout.LineCap.Value(0) != "butt" || !l.Visible() {
		t.Error("Expected default layout")
	}
	if n := strings.Count(buf.String(), "level=warning"); n != 5 {
		t.Errorf("Expected 5 warnings, got %d: %s", n, buf.String())
	}
}

func TestLineDasharrayStops(t *testing.T) {
	var buf bytes.Buffer
	const js = `{"layers": [
		{"id": "path", "type": "line", "source-layer": "roads",
		 "paint": {"line-dasharray": {"stops": [[10, [2, 2]], [14, [4, 1]]]}}},
		{"id": "bad", "type": "line", "source-layer": "roads",
		 "paint": {"line-dasharray": {"stops": [[10, [2, -1]]]}}}
	]}`
	doc, err := Load([]byte(js), Options{Logger: captureLogger(&buf)})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	dash := doc.Layers()[0].Paint.LineDasharray

	tests := []struct {
		zoom float64
		want []float64
	}{
		{5, []float64{2, 2}},
		{12, []float64{2, 2}},
		{14, []float64{4, 1}},
		{18, []float64{4, 1}},
	}
	for _, tt := range tests {
		got := dash.Value(tt.zoom)
		if len(got) != len(tt.want) || got[0] != tt.want[0] || got[1] != tt.want[1] {
			t.Errorf("zoom %v: expected %v, got %v", tt.zoom, tt.want, got)
		}
	}

	if d := doc.Layers()[1].Paint.LineDasharray.Value(10); d != nil {
		t.Errorf("Expected invalid dash array to be ignored, got %v", d)
	}
	if !strings.Contains(buf.String(), "line-dasharray") {
		t.Errorf("Expected warning about line-dasharray, got %q", buf.String())
	}
}
