package label

import (
	"unicode/utf8"

	"github.com/paulmach/orb"
)

// Candidate is a generated label: either a *PointLabel or a *PathLabel.
type Candidate interface {
	Text() string
	// Shape is the area the label covers, used for collision tests.
	Shape() Shape
	// Bound is the bounding box of Shape.
	Bound() orb.Bound
	candidate()
}

// PointLabel is horizontal text, optionally with an icon, at a point.
type PointLabel struct {
	text     string
	Pos      orb.Point
	Lines    []string
	TextRect orb.Bound
	IconRect orb.Bound
	Props    Properties
	bound    orb.Bound
}

// PathLabel is text following a line.
type PathLabel struct {
	text  string
	Path  orb.LineString
	Props Properties
	shape Shape
}

func (*PointLabel) candidate() {}
func (*PathLabel) candidate()  {}

func (l *PointLabel) Text() string     { return l.text }
func (l *PointLabel) Shape() Shape     { return rectShape(l.bound) }
func (l *PointLabel) Bound() orb.Bound { return l.bound }

func (l *PathLabel) Text() string     { return l.text }
func (l *PathLabel) Shape() Shape     { return l.shape }
func (l *PathLabel) Bound() orb.Bound { return l.shape.Bound() }

// newPointLabel lays out text at pos. It returns nil when there is
// neither text nor icon.
func newPointLabel(text string, pos orb.Point, props Properties) *PointLabel {
	iw, ih := props.Icon.Size()
	if text == "" && (iw <= 0 || ih <= 0) {
		return nil
	}

	l := &PointLabel{text: text, Pos: pos, Props: props}
	var icon orb.Bound
	if iw > 0 && ih > 0 {
		icon = orb.Bound{
			Min: orb.Point{pos[0] - iw/2, pos[1] - ih/2},
			Max: orb.Point{pos[0] + iw/2, pos[1] + ih/2},
		}
		l.IconRect = icon
	}
	if text == "" {
		l.bound = icon
		return l
	}

	size := props.Font.Size
	cw := avgCharWidth(text, props.Font)
	lines, w := wrap(text, cw, props.MaxWidth*size)
	h := float64(len(lines)) * size * lineHeight
	l.Lines = lines
	l.TextRect = anchorRect(pos, w, h, iw, ih, props.Anchor)

	l.bound = l.TextRect
	if l.IconRect != (orb.Bound{}) {
		l.bound = l.bound.Union(l.IconRect)
	}
	return l
}

// anchorRect places a w x h text box so that its anchor side sits next to
// an iw x ih icon centred at pos.
func anchorRect(pos orb.Point, w, h, iw, ih float64, a Anchor) orb.Bound {
	x := pos[0] - w/2
	y := pos[1] - h/2
	switch a {
	case AnchorLeft, AnchorTopLeft, AnchorBottomLeft:
		x = pos[0] + iw/2
	case AnchorRight, AnchorTopRight, AnchorBottomRight:
		x = pos[0] - iw/2 - w
	}
	switch a {
	case AnchorTop, AnchorTopLeft, AnchorTopRight:
		y = pos[1] + ih/2
	case AnchorBottom, AnchorBottomLeft, AnchorBottomRight:
		y = pos[1] - ih/2 - h
	}
	return orb.Bound{Min: orb.Point{x, y}, Max: orb.Point{x + w, y + h}}
}

// newPathLabel finds room for text along the sub-paths of a line, trying
// each in turn. It returns nil when no run is long enough.
func newPathLabel(text string, subs []orb.LineString, length float64, rect orb.Bound, props Properties) *PathLabel {
	cw := avgCharWidth(text, props.Font)
	width := float64(utf8.RuneCountInString(text)) * cw
	if width <= 0 || width > length {
		return nil
	}
	for _, ls := range subs {
		tp := textPath(ls, width, props.MaxAngle, cw, rect)
		if len(tp) < 2 {
			continue
		}
		if upsideDown(tp) {
			tp = reversed(tp)
		}
		return &PathLabel{
			text:  text,
			Path:  tp,
			Props: props,
			shape: strokeShape(tp, props.Font.Size),
		}
	}
	return nil
}
