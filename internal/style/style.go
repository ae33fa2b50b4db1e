// Package style loads map style documents and evaluates their filters and
// zoom functions.
package style

import (
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// LayerType is the kind of a style layer.
type LayerType int

const (
	LayerUnknown LayerType = iota
	LayerFill
	LayerLine
	LayerBackground
	LayerSymbol
)

func (t LayerType) String() string {
	switch t {
	case LayerFill:
		return "fill"
	case LayerLine:
		return "line"
	case LayerBackground:
		return "background"
	case LayerSymbol:
		return "symbol"
	}
	return "unknown"
}

// IsPath reports whether features of this layer are drawn as paths.
func (t LayerType) IsPath() bool {
	return t == LayerFill || t == LayerLine
}

// Layer is one entry of the style's layers array.
type Layer struct {
	ID          string
	Type        LayerType
	SourceLayer string
	MinZoom     float64
	MaxZoom     float64
	Filter      Filter
	Paint       Paint
	Layout      Layout
}

// Visible reports whether layout.visibility is not "none".
func (l *Layer) Visible() bool {
	return l.Layout.Visibility != "none"
}

// InZoom reports whether zoom lies within [MinZoom, MaxZoom].
func (l *Layer) InZoom(zoom float64) bool {
	return zoom >= l.MinZoom && zoom <= l.MaxZoom
}

// Match reports whether the layer applies to f at zoom.
func (l *Layer) Match(zoom float64, f Feature) bool {
	return l.InZoom(zoom) && l.Filter.Match(f)
}

// Options configures style loading.
type Options struct {
	// Logger receives warnings about constructs that were ignored.
	// Default: logrus.StandardLogger()
	Logger logrus.FieldLogger
}

// DefaultOptions returns style options with defaults
func DefaultOptions() Options {
	return Options{Logger: logrus.StandardLogger()}
}

// Document is a loaded style. It is immutable and may be shared by
// concurrent renders.
type Document struct {
	name         string
	layers       []*Layer
	sourceLayers []string
}

// Load parses a style document. Only unreadable JSON or a missing layers
// array is an error; problems inside a layer are logged and degrade to
// defaults.
func Load(data []byte, opts Options) (*Document, error) {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	if !gjson.ValidBytes(data) {
		return nil, &StyleError{Reason: "invalid JSON"}
	}
	root := gjson.ParseBytes(data)
	layers := root.Get("layers")
	if !layers.IsArray() {
		return nil, &StyleError{Reason: "missing layers array"}
	}

	doc := &Document{name: root.Get("name").String()}
	seen := make(map[string]bool)
	layers.ForEach(func(key, value gjson.Result) bool {
		index := int(key.Int())
		if !value.IsObject() {
			log.WithField("layer", index).Warn("style layer is not an object")
			return true
		}
		l := parseLayer(value, log.WithField("layer", layerLabel(value, index)))
		doc.layers = append(doc.layers, l)
		if l.SourceLayer != "" && !seen[l.SourceLayer] {
			seen[l.SourceLayer] = true
			doc.sourceLayers = append(doc.sourceLayers, l.SourceLayer)
		}
		return true
	})

	return doc, nil
}

// LoadFile reads and parses a style file.
func LoadFile(path string, opts Options) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read style: %w", err)
	}
	doc, err := Load(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func layerLabel(json gjson.Result, index int) string {
	if id := json.Get("id"); id.Type == gjson.String {
		return id.Str
	}
	return fmt.Sprintf("#%d", index)
}

func parseLayer(json gjson.Result, log logrus.FieldLogger) *Layer {
	l := &Layer{
		ID:          json.Get("id").String(),
		SourceLayer: json.Get("source-layer").String(),
		MinZoom:     0,
		MaxZoom:     math.Inf(1),
		Filter:      None{},
	}

	switch t := json.Get("type").String(); t {
	case "fill":
		l.Type = LayerFill
	case "line":
		l.Type = LayerLine
	case "background":
		l.Type = LayerBackground
	case "symbol":
		l.Type = LayerSymbol
	default:
		log.Warnf("unsupported layer type %q", t)
	}

	if z := json.Get("minzoom"); z.Exists() {
		if z.Type == gjson.Number {
			l.MinZoom = z.Num
		} else {
			log.Warnf("invalid minzoom %s", z.Raw)
		}
	}
	if z := json.Get("maxzoom"); z.Exists() {
		if z.Type == gjson.Number {
			l.MaxZoom = z.Num
		} else {
			log.Warnf("invalid maxzoom %s", z.Raw)
		}
	}

	if f := json.Get("filter"); f.Exists() {
		l.Filter = ParseFilter(f, log)
	}

	l.Layout = parseLayout(json.Get("layout"), log)
	l.Paint = parsePaint(json.Get("paint"), log)

	return l
}

// Name returns the style's name, if any.
func (d *Document) Name() string { return d.name }

// Layers returns the style layers in render order.
func (d *Document) Layers() []*Layer { return d.layers }

// SourceLayers returns the distinct source-layer names referenced by the
// style, in first-use order.
func (d *Document) SourceLayers() []string { return d.sourceLayers }

// Background returns the first style layer if it is a background layer,
// or nil. A background layer further down the list never paints the
// canvas.
func (d *Document) Background() *Layer {
	if len(d.layers) == 0 || d.layers[0].Type != LayerBackground {
		return nil
	}
	return d.layers[0]
}

// StyleError indicates a style document that could not be loaded at all.
type StyleError struct {
	Reason string
}

func (e *StyleError) Error() string {
	return fmt.Sprintf("invalid style: %s", e.Reason)
}
