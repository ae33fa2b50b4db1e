package render

import (
	"image"
	"image/color"

	"github.com/beetlebugorg/vtrender/internal/label"
	"github.com/paulmach/orb"
)

// Kind identifies the type of an Intent.
type Kind string

const (
	KindFill  Kind = "fill"
	KindLine  Kind = "line"
	KindLabel Kind = "label"
)

// Intent is one drawing instruction. Exactly one of Path and Label is set.
type Intent struct {
	Kind  Kind          `json:"kind"`
	Layer string        `json:"layer"`
	Path  *PathIntent   `json:"path,omitempty"`
	Label *label.Intent `json:"label,omitempty"`
}

// PathIntent is a filled or stroked path in output pixels. Colours carry
// the layer opacity in their alpha.
type PathIntent struct {
	Geometry []orb.LineString `json:"geometry"`
	Closed   bool             `json:"closed"`

	Fill      color.NRGBA `json:"fill"`
	Outline   color.NRGBA `json:"outline"`
	Antialias bool        `json:"antialias"`

	Stroke    color.NRGBA `json:"stroke"`
	Width     float64     `json:"width,omitempty"`
	Dasharray []float64   `json:"dasharray,omitempty"`
	Cap       string      `json:"cap,omitempty"`
	Join      string      `json:"join,omitempty"`
}

// Result is the output of one render.
type Result struct {
	Size       image.Point `json:"size"`
	ScaleX     float64     `json:"scaleX"`
	ScaleY     float64     `json:"scaleY"`
	Background color.NRGBA `json:"background"`
	Intents    []Intent    `json:"intents"`
}

// Paths returns the path intents in draw order.
func (r *Result) Paths() []*PathIntent {
	var out []*PathIntent
	for _, in := range r.Intents {
		if in.Path != nil {
			out = append(out, in.Path)
		}
	}
	return out
}

// Labels returns the label intents in draw order.
func (r *Result) Labels() []*label.Intent {
	var out []*label.Intent
	for _, in := range r.Intents {
		if in.Label != nil {
			out = append(out, in.Label)
		}
	}
	return out
}
