package style

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Transparent is the absence of paint. Any color with zero alpha paints
// nothing.
var Transparent = color.NRGBA{}

// IsTransparent reports whether c paints nothing.
func IsTransparent(c color.NRGBA) bool {
	return c.A == 0
}

// ParseColor parses a CSS color: #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(),
// rgba(), hsl(), hsla() or a named color.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb("):
		args, err := colorArgs(s)
		if err != nil {
			return Transparent, err
		}
		return parseRGB(args)
	case strings.HasPrefix(s, "hsla(") || strings.HasPrefix(s, "hsl("):
		args, err := colorArgs(s)
		if err != nil {
			return Transparent, err
		}
		return parseHSL(args)
	case s == "transparent":
		return Transparent, nil
	}

	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return Transparent, fmt.Errorf("unknown color %q", s)
}

func parseHex(h string) (color.NRGBA, error) {
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Transparent, fmt.Errorf("invalid hex color #%s", h)
	}
	switch len(h) {
	case 3:
		return color.NRGBA{R: uint8(v>>8&0xf) * 0x11, G: uint8(v>>4&0xf) * 0x11, B: uint8(v&0xf) * 0x11, A: 0xff}, nil
	case 4:
		return color.NRGBA{R: uint8(v>>12&0xf) * 0x11, G: uint8(v>>8&0xf) * 0x11, B: uint8(v>>4&0xf) * 0x11, A: uint8(v&0xf) * 0x11}, nil
	case 6:
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	case 8:
		return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
	}
	return Transparent, fmt.Errorf("invalid hex color #%s", h)
}

func colorArgs(s string) ([]string, error) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	args := strings.Split(s[open+1:end], ",")
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	if len(args) != 3 && len(args) != 4 {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	return args, nil
}

// channel parses an rgb() component: 0-255 or a percentage.
func channel(s string) (uint8, error) {
	if p, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, err
		}
		return clamp8(f / 100 * 255), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return clamp8(f), nil
}

func alpha(args []string) (uint8, error) {
	if len(args) < 4 {
		return 0xff, nil
	}
	f, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return 0, err
	}
	return clamp8(f * 255), nil
}

func parseRGB(args []string) (color.NRGBA, error) {
	var c color.NRGBA
	var err error
	if c.R, err = channel(args[0]); err != nil {
		return Transparent, err
	}
	if c.G, err = channel(args[1]); err != nil {
		return Transparent, err
	}
	if c.B, err = channel(args[2]); err != nil {
		return Transparent, err
	}
	if c.A, err = alpha(args); err != nil {
		return Transparent, err
	}
	return c, nil
}

func percent(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	return f / 100, err
}

func parseHSL(args []string) (color.NRGBA, error) {
	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return Transparent, err
	}
	s, err := percent(args[1])
	if err != nil {
		return Transparent, err
	}
	l, err := percent(args[2])
	if err != nil {
		return Transparent, err
	}
	a, err := alpha(args)
	if err != nil {
		return Transparent, err
	}

	h = math.Mod(math.Mod(h, 360)+360, 360) / 360
	s, l = clamp01(s), clamp01(l)
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return color.NRGBA{
		R: clamp8(hue(p, q, h+1.0/3) * 255),
		G: clamp8(hue(p, q, h) * 255),
		B: clamp8(hue(p, q, h-1.0/3) * 255),
		A: a,
	}, nil
}

func hue(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}

func clamp8(f float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, f))))
}

// LerpColor interpolates each straight-alpha channel independently.
func LerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	ch := func(x, y uint8) uint8 {
		return clamp8(float64(x) + t*(float64(y)-float64(x)))
	}
	return color.NRGBA{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: ch(a.A, b.A)}
}

// WithOpacity scales the alpha channel by o.
func WithOpacity(c color.NRGBA, o float64) color.NRGBA {
	c.A = clamp8(float64(c.A) * clamp01(o))
	return c
}
