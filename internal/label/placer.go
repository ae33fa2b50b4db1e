package label

import (
	"image/color"
	"sort"

	"github.com/beetlebugorg/vtrender/internal/parser"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/sirupsen/logrus"
)

// Options configures a Placer.
type Options struct {
	// ScaleX and ScaleY are the device pixel ratio. Halo offsets are one
	// device pixel.
	ScaleX, ScaleY float64
	Logger         logrus.FieldLogger
}

// DefaultOptions returns options for a 1:1 device.
func DefaultOptions() Options {
	return Options{ScaleX: 1, ScaleY: 1, Logger: logrus.StandardLogger()}
}

// Placer collects the labels of one tile render. It is not safe for
// concurrent use.
type Placer struct {
	rect      orb.Bound
	placement Placement
	items     []*item
	index     *index
	opts      Options
	log       logrus.FieldLogger
}

// NewPlacer returns a placer for the visible rectangle rect.
func NewPlacer(rect orb.Bound, opts Options) *Placer {
	if opts.ScaleX <= 0 {
		opts.ScaleX = 1
	}
	if opts.ScaleY <= 0 {
		opts.ScaleY = 1
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Placer{
		rect:  rect,
		index: newIndex(),
		opts:  opts,
		log:   opts.Logger,
	}
}

// Viewport returns the visible rectangle.
func (p *Placer) Viewport() orb.Bound { return p.rect }

// SymbolPlacement returns the placement used for new labels.
func (p *Placer) SymbolPlacement() Placement { return p.placement }

// SetViewport changes the visible rectangle and hides committed line
// labels that no longer fit it.
func (p *Placer) SetViewport(rect orb.Bound) {
	p.rect = rect
	p.recheck()
}

// SetSymbolPlacement sets the placement used for new labels and hides
// committed line labels that no longer fit the visible rectangle.
func (p *Placer) SetSymbolPlacement(pl Placement) {
	p.placement = pl
	p.recheck()
}

func (p *Placer) recheck() {
	for _, it := range p.items {
		if !it.visible {
			continue
		}
		if _, ok := it.c.(*PathLabel); !ok {
			continue
		}
		if !contains(p.rect, it.c.Bound()) {
			it.visible = false
			p.index.remove(it)
		}
	}
}

// Add offers a label for a feature with the given path in pixel
// coordinates. It reports whether the label was committed.
func (p *Placer) Add(text string, path parser.Path, props Properties) bool {
	if len(path) == 0 {
		return false
	}

	var c Candidate
	exempt := false
	switch p.placement {
	case PlaceLine:
		if text == "" {
			return false
		}
		pl := newPathLabel(text, path.SubPaths(), path.Length(), p.rect, props)
		if pl == nil {
			return false
		}
		c = pl
	case PlaceLineCenter:
		subs := path.SubPaths()
		pos, ok := midpoint(subs)
		if !ok {
			return false
		}
		pl := newPointLabel(text, pos, props)
		if pl == nil {
			return false
		}
		c = pl
	default:
		verts := path.Vertices()
		if len(verts) == 0 {
			return false
		}
		if props.Alignment == AlignViewport {
			pl := p.nearestFit(text, verts, props)
			if pl == nil {
				return false
			}
			c = pl
		} else {
			pl := newPointLabel(text, verts[0], props)
			if pl == nil {
				return false
			}
			c = pl
			exempt = len(verts) == 1
		}
	}

	if !exempt && !contains(p.rect, c.Bound()) {
		return false
	}
	if p.index.collides(c) {
		p.log.WithField("text", text).Debug("label collides")
		return false
	}

	it := &item{c: c, visible: true, exempt: exempt}
	p.items = append(p.items, it)
	p.index.insert(it)
	return true
}

// nearestFit tries the vertices closest to the viewport centre first and
// returns the first label that fits the viewport.
func (p *Placer) nearestFit(text string, verts []orb.Point, props Properties) *PointLabel {
	centre := p.rect.Center()
	order := make([]orb.Point, len(verts))
	copy(order, verts)
	sort.SliceStable(order, func(i, j int) bool {
		return planar.DistanceSquared(order[i], centre) < planar.DistanceSquared(order[j], centre)
	})
	for _, v := range order {
		pl := newPointLabel(text, v, props)
		if pl == nil {
			return nil
		}
		if contains(p.rect, pl.Bound()) {
			return pl
		}
	}
	return nil
}

// midpoint returns the point at half the total length of subs.
func midpoint(subs []orb.LineString) (orb.Point, bool) {
	var total float64
	for _, ls := range subs {
		total += planar.Length(ls)
	}
	if len(subs) == 0 {
		return orb.Point{}, false
	}
	if total == 0 {
		return subs[0][0], true
	}
	half := total / 2
	for _, ls := range subs {
		l := planar.Length(ls)
		if half <= l {
			pt, _ := pointAt(ls, half)
			return pt, true
		}
		half -= l
	}
	last := subs[len(subs)-1]
	return last[len(last)-1], true
}

// Candidates returns the committed labels that are still visible, in
// commit order.
func (p *Placer) Candidates() []Candidate {
	var out []Candidate
	for _, it := range p.items {
		if it.visible {
			out = append(out, it.c)
		}
	}
	return out
}

// Kind of a label intent.
const (
	KindPoint = "point"
	KindPath  = "path"
)

// Intent is a label ready to draw.
type Intent struct {
	Kind  string      `json:"kind"`
	Layer string      `json:"-"`
	Text  string      `json:"text,omitempty"`
	Font  Font        `json:"font"`
	Color color.NRGBA `json:"color"`
	Halo  *HaloIntent `json:"halo,omitempty"`
	Clip  orb.Bound   `json:"clip"`

	// Point labels.
	Anchor      orb.Point `json:"anchor"`
	Lines       []string  `json:"lines,omitempty"`
	LineHeight  float64   `json:"lineHeight,omitempty"`
	TextRect    orb.Bound `json:"textRect"`
	Icon        *Icon     `json:"-"`
	IconName    string    `json:"icon,omitempty"`
	IconRect    orb.Bound `json:"iconRect"`
	IconOpacity float64   `json:"iconOpacity,omitempty"`

	// Path labels.
	Path   orb.LineString `json:"path,omitempty"`
	Glyphs []Glyph        `json:"glyphs,omitempty"`
}

// HaloIntent draws the text once per offset in the halo colour, beneath
// the main pass.
type HaloIntent struct {
	Color   color.NRGBA `json:"color"`
	Width   float64     `json:"width"`
	Blur    float64     `json:"blur,omitempty"`
	Offsets []orb.Point `json:"offsets"`
}

// Render returns draw intents for the visible labels in commit order.
// Labels outside the viewport and repeats of text already drawn are
// skipped.
func (p *Placer) Render() []Intent {
	var out []Intent
	drawn := make(map[string]struct{})
	for _, it := range p.items {
		if !it.visible || !p.rect.Intersects(it.c.Bound()) {
			continue
		}
		text := it.c.Text()
		if text != "" {
			if _, ok := drawn[text]; ok {
				continue
			}
			drawn[text] = struct{}{}
		}
		out = append(out, p.intent(it.c))
	}
	return out
}

func (p *Placer) intent(c Candidate) Intent {
	switch l := c.(type) {
	case *PointLabel:
		in := p.base(l.text, l.Props)
		in.Kind = KindPoint
		in.Anchor = l.Pos
		in.Lines = l.Lines
		in.TextRect = l.TextRect
		if len(l.Lines) > 0 {
			in.LineHeight = l.Props.Font.Size * lineHeight
		}
		if l.Props.Icon != nil && l.IconRect != (orb.Bound{}) {
			in.Icon = l.Props.Icon
			in.IconName = l.Props.Icon.Name
			in.IconRect = l.IconRect
			in.IconOpacity = l.Props.IconOpacity
		}
		return in
	case *PathLabel:
		in := p.base(l.text, l.Props)
		in.Kind = KindPath
		in.Path = l.Path
		in.Glyphs = layoutGlyphs(l.text, l.Path, l.Props.Font)
		return in
	}
	panic("label: unknown candidate")
}

func (p *Placer) base(text string, props Properties) Intent {
	in := Intent{
		Layer: props.Layer,
		Text:  text,
		Font:  props.Font,
		Color: props.Color,
		Clip:  p.rect,
	}
	if text != "" && props.Halo.Enabled() {
		in.Halo = &HaloIntent{
			Color:   props.Halo.Color,
			Width:   props.Halo.Width,
			Blur:    props.Halo.Blur,
			Offsets: haloOffsets(1/p.opts.ScaleX, 1/p.opts.ScaleY),
		}
	}
	return in
}

// haloOffsets returns the eight compass offsets of dx, dy and the centre.
func haloOffsets(dx, dy float64) []orb.Point {
	return []orb.Point{
		{-dx, -dy}, {0, -dy}, {dx, -dy},
		{-dx, 0}, {0, 0}, {dx, 0},
		{-dx, dy}, {0, dy}, {dx, dy},
	}
}
