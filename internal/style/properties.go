package style

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// Paint holds the resolved paint properties of a style layer.
type Paint struct {
	FillColor         Function[color.NRGBA]
	FillOpacity       Function[float64]
	FillOutlineColor  Function[color.NRGBA]
	FillAntialias     Function[bool]
	FillPattern       Function[string]
	LineColor         Function[color.NRGBA]
	LineWidth         Function[float64]
	LineOpacity       Function[float64]
	LineDasharray     Function[[]float64]
	BackgroundColor   Function[color.NRGBA]
	BackgroundOpacity Function[float64]
	TextColor         Function[color.NRGBA]
	TextHaloColor     Function[color.NRGBA]
	TextHaloWidth     Function[float64]
	TextHaloBlur      Function[float64]
	IconColor         Function[color.NRGBA]
	IconOpacity       Function[float64]
}

// Layout holds the resolved layout properties of a style layer.
type Layout struct {
	LineCap               Function[string]
	LineJoin              Function[string]
	TextField             Template
	TextSize              Function[float64]
	TextMaxWidth          Function[float64]
	TextMaxAngle          Function[float64]
	TextFont              []string
	TextTransform         Function[string]
	TextAnchor            Function[string]
	TextRotationAlignment Function[string]
	SymbolPlacement       Function[string]
	IconImage             Template
	IconSize              Function[float64]
	Visibility            string
}

var black = color.NRGBA{A: 0xff}

// DefaultFont is used when a layer names no text-font.
const DefaultFont = "Open Sans Regular"

func defaultPaint() Paint {
	return Paint{
		FillColor:         Constant(black),
		FillOpacity:       Constant(1.0),
		FillOutlineColor:  Constant(black),
		FillAntialias:     Constant(true),
		FillPattern:       Constant(""),
		LineColor:         Constant(black),
		LineWidth:         Constant(1.0),
		LineOpacity:       Constant(1.0),
		BackgroundColor:   Constant(black),
		BackgroundOpacity: Constant(1.0),
		TextColor:         Constant(black),
		TextHaloColor:     Constant(Transparent),
		TextHaloWidth:     Constant(0.0),
		TextHaloBlur:      Constant(0.0),
		IconColor:         Constant(Transparent),
		IconOpacity:       Constant(1.0),
	}
}

func defaultLayout() Layout {
	return Layout{
		LineCap:               Constant("butt"),
		LineJoin:              Constant("miter"),
		TextSize:              Constant(16.0),
		TextMaxWidth:          Constant(10.0),
		TextMaxAngle:          Constant(45.0),
		TextFont:              []string{DefaultFont},
		TextTransform:         Constant("none"),
		TextAnchor:            Constant("center"),
		TextRotationAlignment: Constant("auto"),
		SymbolPlacement:       Constant("point"),
		IconSize:              Constant(1.0),
		Visibility:            "visible",
	}
}

// props reads typed properties out of a paint or layout object. A property
// that fails to parse is logged and leaves the destination untouched.
type props struct {
	json gjson.Result
	log  logrus.FieldLogger
}

func (p props) get(name string) (gjson.Result, bool) {
	v := p.json.Get(name)
	return v, v.Exists()
}

func (p props) warn(name string, v gjson.Result, err error) {
	p.log.WithFields(logrus.Fields{"property": name, "value": v.Raw}).Warnf("invalid property: %v", err)
}

func (p props) number(name string, dst *Function[float64]) {
	if v, ok := p.get(name); ok {
		f, err := parseFunction(v, numberScalar, LerpFloat)
		if err != nil {
			p.warn(name, v, err)
			return
		}
		*dst = f
	}
}

func (p props) color(name string, dst *Function[color.NRGBA]) {
	if v, ok := p.get(name); ok {
		f, err := parseFunction(v, colorScalar, LerpColor)
		if err != nil {
			p.warn(name, v, err)
			return
		}
		*dst = f
	}
}

func (p props) boolean(name string, dst *Function[bool]) {
	if v, ok := p.get(name); ok {
		f, err := parseFunction[bool](v, boolScalar, nil)
		if err != nil {
			p.warn(name, v, err)
			return
		}
		*dst = f
	}
}

// enum reads a string property. When allowed is non-empty, every value
// must be one of them. It reports whether dst was replaced.
func (p props) enum(name string, dst *Function[string], allowed ...string) bool {
	if v, ok := p.get(name); ok {
		scalar := func(r gjson.Result) (string, error) {
			if r.Type != gjson.String {
				return "", fmt.Errorf("not a string")
			}
			if len(allowed) > 0 && !slices.Contains(allowed, r.Str) {
				return "", fmt.Errorf("%q is not one of %v", r.Str, allowed)
			}
			return r.Str, nil
		}
		f, err := parseFunction[string](v, scalar, nil)
		if err != nil {
			p.warn(name, v, err)
			return false
		}
		*dst = f
		return true
	}
	return false
}

func (p props) template(name string, dst *Template) {
	var f Function[string]
	if p.enum(name, &f) {
		*dst = Template{field: f}
	}
}

// numbers reads an array of non-negative numbers. Stops are stepped, never
// interpolated.
func (p props) numbers(name string, dst *Function[[]float64]) {
	if v, ok := p.get(name); ok {
		f, err := parseFunction[[]float64](v, numbersScalar, nil)
		if err != nil {
			p.warn(name, v, err)
			return
		}
		*dst = f
	}
}

func (p props) strings(name string, dst *[]string) {
	v, ok := p.get(name)
	if !ok {
		return
	}
	if !v.IsArray() || len(v.Array()) == 0 {
		p.warn(name, v, fmt.Errorf("not a non-empty array"))
		return
	}
	var out []string
	for _, s := range v.Array() {
		if s.Type != gjson.String {
			p.warn(name, v, fmt.Errorf("element %s is not a string", s.Raw))
			return
		}
		out = append(out, s.Str)
	}
	*dst = out
}

func parsePaint(json gjson.Result, log logrus.FieldLogger) Paint {
	paint := defaultPaint()
	p := props{json: json, log: log}

	p.number("fill-opacity", &paint.FillOpacity)
	p.color("fill-color", &paint.FillColor)
	paint.FillOutlineColor = paint.FillColor
	p.color("fill-outline-color", &paint.FillOutlineColor)
	p.boolean("fill-antialias", &paint.FillAntialias)
	p.enum("fill-pattern", &paint.FillPattern)
	if _, ok := p.get("fill-pattern"); ok {
		paint.FillColor = Constant(Transparent)
		paint.FillOutlineColor = Constant(Transparent)
	}

	p.color("line-color", &paint.LineColor)
	p.number("line-width", &paint.LineWidth)
	p.number("line-opacity", &paint.LineOpacity)
	p.numbers("line-dasharray", &paint.LineDasharray)

	p.color("background-color", &paint.BackgroundColor)
	p.number("background-opacity", &paint.BackgroundOpacity)

	p.color("text-color", &paint.TextColor)
	p.color("text-halo-color", &paint.TextHaloColor)
	p.number("text-halo-width", &paint.TextHaloWidth)
	p.number("text-halo-blur", &paint.TextHaloBlur)

	p.color("icon-color", &paint.IconColor)
	p.number("icon-opacity", &paint.IconOpacity)

	return paint
}

func parseLayout(json gjson.Result, log logrus.FieldLogger) Layout {
	layout := defaultLayout()
	p := props{json: json, log: log}

	p.enum("line-cap", &layout.LineCap, "butt", "round", "square")
	p.enum("line-join", &layout.LineJoin, "bevel", "round", "miter")

	p.template("text-field", &layout.TextField)
	p.number("text-size", &layout.TextSize)
	p.number("text-max-width", &layout.TextMaxWidth)
	p.number("text-max-angle", &layout.TextMaxAngle)
	p.strings("text-font", &layout.TextFont)
	p.enum("text-transform", &layout.TextTransform, "none", "uppercase", "lowercase")
	p.enum("text-anchor", &layout.TextAnchor, "center", "left", "right", "top", "bottom",
		"top-left", "top-right", "bottom-left", "bottom-right")
	p.enum("text-rotation-alignment", &layout.TextRotationAlignment, "map", "viewport", "auto")
	p.enum("symbol-placement", &layout.SymbolPlacement, "point", "line", "line-center")

	p.template("icon-image", &layout.IconImage)
	p.number("icon-size", &layout.IconSize)

	if v, ok := p.get("visibility"); ok {
		switch v.String() {
		case "visible", "none":
			layout.Visibility = v.String()
		default:
			p.warn("visibility", v, fmt.Errorf("must be visible or none"))
		}
	}

	return layout
}

// parseFunction reads either a scalar (constant function) or an object
// with "stops" and an optional "base".
func parseFunction[T any](v gjson.Result, scalar func(gjson.Result) (T, error), lerp Lerp[T]) (Function[T], error) {
	if !v.IsObject() {
		c, err := scalar(v)
		if err != nil {
			return Function[T]{}, err
		}
		return Constant(c), nil
	}

	base := 1.0
	if b := v.Get("base"); b.Exists() {
		if b.Type != gjson.Number || b.Num <= 0 {
			return Function[T]{}, fmt.Errorf("invalid base %s", b.Raw)
		}
		base = b.Num
	}

	stops := v.Get("stops")
	if !stops.IsArray() || len(stops.Array()) == 0 {
		return Function[T]{}, fmt.Errorf("missing stops")
	}
	var out []Stop[T]
	for _, s := range stops.Array() {
		pair := s.Array()
		if !s.IsArray() || len(pair) != 2 || pair[0].Type != gjson.Number {
			return Function[T]{}, fmt.Errorf("invalid stop %s", s.Raw)
		}
		val, err := scalar(pair[1])
		if err != nil {
			return Function[T]{}, fmt.Errorf("stop %s: %w", s.Raw, err)
		}
		out = append(out, Stop[T]{Zoom: pair[0].Num, Value: val})
	}

	return NewFunction(out, base, lerp), nil
}

func numberScalar(r gjson.Result) (float64, error) {
	if r.Type != gjson.Number {
		return 0, fmt.Errorf("not a number")
	}
	return r.Num, nil
}

func numbersScalar(r gjson.Result) ([]float64, error) {
	if !r.IsArray() {
		return nil, fmt.Errorf("not an array")
	}
	var out []float64
	for _, n := range r.Array() {
		if n.Type != gjson.Number || n.Num < 0 {
			return nil, fmt.Errorf("element %s is not a non-negative number", n.Raw)
		}
		out = append(out, n.Num)
	}
	return out, nil
}

func colorScalar(r gjson.Result) (color.NRGBA, error) {
	if r.Type != gjson.String {
		return Transparent, fmt.Errorf("not a color string")
	}
	return ParseColor(r.Str)
}

func boolScalar(r gjson.Result) (bool, error) {
	if r.Type != gjson.True && r.Type != gjson.False {
		return false, fmt.Errorf("not a boolean")
	}
	return r.Bool(), nil
}
