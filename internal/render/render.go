// Package render turns a decoded tile and a style into draw intents.
package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/beetlebugorg/vtrender/internal/label"
	"github.com/beetlebugorg/vtrender/internal/parser"
	"github.com/beetlebugorg/vtrender/internal/style"
	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
)

// FontResolver maps a text-font list to a concrete font. The returned
// font's Size is overwritten with the layer's text-size.
type FontResolver interface {
	Resolve(hints []string) label.Font
}

// SpriteAtlas looks up icons by name. Tint is non-nil for layers with an
// icon-color. It returns nil when the icon does not exist.
type SpriteAtlas interface {
	Icon(name string, tint *color.NRGBA, scale float64) *label.Icon
}

// lightGray fills tiles rendered with an empty style.
var lightGray = color.NRGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff}

// Config holds the collaborators of a Renderer.
type Config struct {
	Fonts   FontResolver
	Sprites SpriteAtlas
	Parse   parser.ParseOptions
	// Logger receives debug output about skipped features and layers.
	// Default: logrus.StandardLogger()
	Logger logrus.FieldLogger
}

// Options describes the output of one render.
type Options struct {
	// Size is the output extent in pixels.
	Size image.Point
	// ScaleX and ScaleY are the device pixel ratio.
	ScaleX, ScaleY float64
}

// DefaultOptions returns options for a 512px tile at scale 1.
func DefaultOptions() Options {
	return Options{Size: image.Pt(512, 512), ScaleX: 1, ScaleY: 1}
}

// Renderer renders tiles with one style. It is safe for concurrent use if
// its collaborators are.
type Renderer struct {
	style  *style.Document
	fonts  FontResolver
	sprite SpriteAtlas
	parse  parser.ParseOptions
	log    logrus.FieldLogger
}

// New returns a renderer for doc.
func New(doc *style.Document, cfg Config) *Renderer {
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Fonts == nil {
		cfg.Fonts = HintFonts{}
	}
	return &Renderer{
		style:  doc,
		fonts:  cfg.Fonts,
		sprite: cfg.Sprites,
		parse:  cfg.Parse,
		log:    cfg.Logger,
	}
}

// Render decodes data and renders it at zoom. A decode error fails the
// whole render.
func (r *Renderer) Render(data []byte, zoom int, opts Options) (*Result, error) {
	t, err := parser.NewParser().ParseWithOptions(data, r.parse)
	if err != nil {
		return nil, fmt.Errorf("decode tile: %w", err)
	}
	return r.RenderTile(t, zoom, opts)
}

// RenderTile renders an already decoded tile.
func (r *Renderer) RenderTile(t *parser.Tile, zoom int, opts Options) (*Result, error) {
	if opts.Size.X <= 0 || opts.Size.Y <= 0 {
		return nil, fmt.Errorf("invalid output size %v", opts.Size)
	}
	if opts.ScaleX <= 0 {
		opts.ScaleX = 1
	}
	if opts.ScaleY <= 0 {
		opts.ScaleY = 1
	}

	z := float64(zoom)
	rect := orb.Bound{Max: orb.Point{float64(opts.Size.X), float64(opts.Size.Y)}}
	res := &Result{
		Size:       opts.Size,
		ScaleX:     opts.ScaleX,
		ScaleY:     opts.ScaleY,
		Background: r.background(z),
	}

	pass := &pass{
		Renderer: r,
		zoom:     z,
		size:     rect.Max,
		layers:   r.wrapTile(t),
		placer: label.NewPlacer(rect, label.Options{
			ScaleX: opts.ScaleX,
			ScaleY: opts.ScaleY,
			Logger: r.log,
		}),
		res: res,
	}
	for _, sl := range r.style.Layers() {
		pass.layer(sl)
	}

	labels := pass.placer.Render()
	for i := range labels {
		res.Intents = append(res.Intents, Intent{Kind: KindLabel, Layer: labels[i].Layer, Label: &labels[i]})
	}
	return res, nil
}

func (r *Renderer) background(zoom float64) color.NRGBA {
	if len(r.style.Layers()) == 0 {
		return lightGray
	}
	bg := r.style.Background()
	if bg == nil || !bg.Visible() || !bg.InZoom(zoom) {
		return style.Transparent
	}
	return style.WithOpacity(bg.Paint.BackgroundColor.Value(zoom), bg.Paint.BackgroundOpacity.Value(zoom))
}

// pass is the state of one render.
type pass struct {
	*Renderer
	zoom   float64
	size   orb.Point
	layers map[string]*sourceLayer
	placer *label.Placer
	res    *Result
}

func (p *pass) layer(sl *style.Layer) {
	if !sl.Visible() || !sl.InZoom(p.zoom) {
		return
	}
	if sl.Type != style.LayerFill && sl.Type != style.LayerLine && sl.Type != style.LayerSymbol {
		return
	}
	src, ok := p.layers[sl.SourceLayer]
	if !ok {
		return
	}
	log := p.log.WithFields(logrus.Fields{"layer": sl.ID, "source": src.Name})

	if sl.Type == style.LayerSymbol {
		p.placer.SetSymbolPlacement(label.ParsePlacement(sl.Layout.SymbolPlacement.Value(p.zoom)))
	}

	extent := float64(src.Extent)
	if extent == 0 {
		extent = 4096
	}
	sx, sy := p.size[0]/extent, p.size[1]/extent

	for i, f := range src.features {
		if err := parser.ValidateTags(src.Layer, f); err != nil {
			log.WithField("feature", i).Debugf("skipping feature: %v", err)
			continue
		}
		ft := feature{layer: src, i: i, f: f}
		if !sl.Filter.Match(ft) {
			continue
		}
		path, err := f.Path()
		if err != nil {
			log.WithField("feature", i).Debugf("skipping feature: %v", err)
			continue
		}
		if len(path) == 0 {
			continue
		}
		path = path.Scale(sx, sy)

		switch sl.Type {
		case style.LayerFill:
			p.fill(sl, path)
		case style.LayerLine:
			p.line(sl, path)
		case style.LayerSymbol:
			p.symbol(sl, ft, path)
		}
	}
}

func (p *pass) fill(sl *style.Layer, path parser.Path) {
	opacity := sl.Paint.FillOpacity.Value(p.zoom)
	fill := style.WithOpacity(sl.Paint.FillColor.Value(p.zoom), opacity)
	outline := style.WithOpacity(sl.Paint.FillOutlineColor.Value(p.zoom), opacity)
	if style.IsTransparent(fill) && style.IsTransparent(outline) {
		return
	}
	p.res.Intents = append(p.res.Intents, Intent{
		Kind:  KindFill,
		Layer: sl.ID,
		Path: &PathIntent{
			Geometry:  path.SubPaths(),
			Closed:    true,
			Fill:      fill,
			Outline:   outline,
			Antialias: sl.Paint.FillAntialias.Value(p.zoom),
		},
	})
}

func (p *pass) line(sl *style.Layer, path parser.Path) {
	stroke := style.WithOpacity(sl.Paint.LineColor.Value(p.zoom), sl.Paint.LineOpacity.Value(p.zoom))
	width := sl.Paint.LineWidth.Value(p.zoom)
	if style.IsTransparent(stroke) || width <= 0 {
		return
	}
	p.res.Intents = append(p.res.Intents, Intent{
		Kind:  KindLine,
		Layer: sl.ID,
		Path: &PathIntent{
			Geometry:  path.SubPaths(),
			Antialias: true,
			Stroke:    stroke,
			Width:     width,
			Dasharray: sl.Paint.LineDasharray.Value(p.zoom),
			Cap:       sl.Layout.LineCap.Value(p.zoom),
			Join:      sl.Layout.LineJoin.Value(p.zoom),
		},
	})
}

func (p *pass) symbol(sl *style.Layer, f feature, path parser.Path) {
	lay, paint := &sl.Layout, &sl.Paint
	text := lay.TextField.Expand(p.zoom, f)
	text = strings.TrimSpace(style.Transform(text, lay.TextTransform.Value(p.zoom)))

	props := label.Properties{
		Font:        p.font(sl),
		Color:       paint.TextColor.Value(p.zoom),
		MaxWidth:    lay.TextMaxWidth.Value(p.zoom),
		MaxAngle:    lay.TextMaxAngle.Value(p.zoom),
		Anchor:      label.ParseAnchor(lay.TextAnchor.Value(p.zoom)),
		Alignment:   label.ParseAlignment(lay.TextRotationAlignment.Value(p.zoom)),
		IconOpacity: paint.IconOpacity.Value(p.zoom),
		Layer:       sl.ID,
		Halo: label.Halo{
			Color: paint.TextHaloColor.Value(p.zoom),
			Width: paint.TextHaloWidth.Value(p.zoom),
			Blur:  paint.TextHaloBlur.Value(p.zoom),
		},
	}
	if p.sprite != nil {
		if name := lay.IconImage.Expand(p.zoom, f); name != "" {
			var tint *color.NRGBA
			if c := paint.IconColor.Value(p.zoom); !style.IsTransparent(c) {
				tint = &c
			}
			props.Icon = p.sprite.Icon(name, tint, lay.IconSize.Value(p.zoom))
		}
	}
	if text == "" && props.Icon == nil {
		return
	}
	p.placer.Add(text, path, props)
}

func (p *pass) font(sl *style.Layer) label.Font {
	f := p.fonts.Resolve(sl.Layout.TextFont)
	f.Size = sl.Layout.TextSize.Value(p.zoom)
	return f
}

// HintFonts resolves fonts from the text-font names alone.
type HintFonts struct{}

// Resolve uses the first hint's family and style.
func (HintFonts) Resolve(hints []string) label.Font {
	if len(hints) == 0 {
		hints = []string{style.DefaultFont}
	}
	h := style.ParseFontName(hints[0])
	return label.Font{Family: h.Family, Bold: h.Bold, Italic: h.Italic, Medium: h.Medium}
}
