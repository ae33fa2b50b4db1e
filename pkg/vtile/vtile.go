package vtile

import (
	"github.com/beetlebugorg/vtrender/internal/label"
	"github.com/beetlebugorg/vtrender/internal/parser"
	"github.com/beetlebugorg/vtrender/internal/render"
	"github.com/beetlebugorg/vtrender/internal/style"
)

type (
	// Tile is a decoded vector tile.
	Tile = parser.Tile
	// Layer is a named layer of a tile.
	Layer = parser.Layer
	// Feature is one feature of a layer.
	Feature = parser.Feature
	// Value is a typed tag value.
	Value = parser.Value
	// Path is a feature geometry in tile coordinates.
	Path = parser.Path

	// Style is a loaded style document.
	Style = style.Document
	// StyleLayer is one layer of a style.
	StyleLayer = style.Layer

	// Result is the output of a render.
	Result = render.Result
	// Intent is one drawing instruction.
	Intent = render.Intent
	// PathIntent is a filled or stroked path.
	PathIntent = render.PathIntent
	// LabelIntent is a placed label.
	LabelIntent = label.Intent
	// Glyph is a character placed along a path.
	Glyph = label.Glyph
	// Font is a resolved label font.
	Font = label.Font
	// Icon is a sprite image.
	Icon = label.Icon

	// FontResolver maps text-font lists to fonts.
	FontResolver = render.FontResolver
	// SpriteAtlas looks up icons.
	SpriteAtlas = render.SpriteAtlas

	// DecodeError reports malformed tile data.
	DecodeError = parser.DecodeError
	// FeatureError reports a malformed feature.
	FeatureError = parser.FeatureError
	// StyleError reports an unusable style document.
	StyleError = style.StyleError
)

// Intent kinds.
const (
	KindFill  = render.KindFill
	KindLine  = render.KindLine
	KindLabel = render.KindLabel
)

// Decode decodes a tile, decompressing it first if it is gzipped.
func Decode(data []byte) (*Tile, error) {
	return DecodeWithOptions(data, DefaultOptions())
}

// DecodeWithOptions decodes a tile with the limits in opts.
func DecodeWithOptions(data []byte, opts Options) (*Tile, error) {
	opts = opts.withDefaults()
	data, err := Uncompress(data, opts.MaxTileSize)
	if err != nil {
		return nil, err
	}
	return parser.NewParser().ParseWithOptions(data, parseOptions(opts))
}

func parseOptions(opts Options) parser.ParseOptions {
	return parser.ParseOptions{MaxLayers: opts.MaxLayers, MaxFeatures: opts.MaxFeatures}
}

// LoadStyle parses a style document.
func LoadStyle(data []byte) (*Style, error) {
	return style.Load(data, style.DefaultOptions())
}

// LoadStyleFile reads and parses a style document.
func LoadStyleFile(path string) (*Style, error) {
	return style.LoadFile(path, style.DefaultOptions())
}

// Renderer renders tiles with one style. It may be shared between
// goroutines.
type Renderer struct {
	r    *render.Renderer
	opts Options
}

// NewRenderer returns a renderer for s.
func NewRenderer(s *Style, opts Options) *Renderer {
	opts = opts.withDefaults()
	return &Renderer{
		r: render.New(s, render.Config{
			Fonts:   opts.Fonts,
			Sprites: opts.Sprites,
			Parse:   parseOptions(opts),
			Logger:  opts.Logger,
		}),
		opts: opts,
	}
}

// Render decodes data, gzipped or not, and renders it at zoom.
func (r *Renderer) Render(data []byte, zoom int) (*Result, error) {
	data, err := Uncompress(data, r.opts.MaxTileSize)
	if err != nil {
		return nil, err
	}
	return r.r.Render(data, zoom, r.renderOptions())
}

// RenderTile renders a decoded tile at zoom.
func (r *Renderer) RenderTile(t *Tile, zoom int) (*Result, error) {
	return r.r.RenderTile(t, zoom, r.renderOptions())
}

func (r *Renderer) renderOptions() render.Options {
	return render.Options{
		Size:   r.opts.size(),
		ScaleX: r.opts.ScaleX,
		ScaleY: r.opts.ScaleY,
	}
}

// Render is a shortcut for NewRenderer(s, opts).Render(data, zoom).
func Render(data []byte, zoom int, s *Style, opts Options) (*Result, error) {
	return NewRenderer(s, opts).Render(data, zoom)
}
