package label

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

type segment struct {
	p, q orb.Point
}

func (s segment) length() float64 {
	return planar.Distance(s.p, s.q)
}

// angle is the direction of the segment in degrees, counter clockwise in
// screen space (y down), in [0,360).
func (s segment) angle() float64 {
	a := math.Atan2(-(s.q[1] - s.p[1]), s.q[0]-s.p[0]) * 180 / math.Pi
	if a < 0 {
		a += 360
	}
	return a
}

// turn returns the smallest angle between two directions, in [0,180].
func turn(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// clip returns the part of segment p-q inside b as parameters along the
// segment (Liang-Barsky).
func clip(p, q orb.Point, b orb.Bound) (t0, t1 float64, ok bool) {
	t0, t1 = 0, 1
	dx, dy := q[0]-p[0], q[1]-p[1]
	edges := [4][2]float64{
		{-dx, p[0] - b.Min[0]},
		{dx, b.Max[0] - p[0]},
		{-dy, p[1] - b.Min[1]},
		{dy, b.Max[1] - p[1]},
	}
	for _, e := range edges {
		pe, qe := e[0], e[1]
		if pe == 0 {
			if qe < 0 {
				return 0, 0, false
			}
			continue
		}
		t := qe / pe
		if pe < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		if t0 > t1 {
			return 0, 0, false
		}
	}
	return t0, t1, true
}

func at(p, q orb.Point, t float64) orb.Point {
	return orb.Point{p[0] + (q[0]-p[0])*t, p[1] + (q[1]-p[1])*t}
}

// lineSegments turns a polyline into segments covering its visible part:
// from the entry into b before the first inside vertex to the exit after
// the last one. Vertices in between may still lie outside b. A line with
// no vertex inside yields the first segment crossing b, clipped.
func lineSegments(ls orb.LineString, b orb.Bound) []segment {
	start, end := -1, -1
	for i, p := range ls {
		if containsPoint(b, p) {
			start = i
			break
		}
	}
	for i := len(ls) - 1; i >= 0; i-- {
		if containsPoint(b, ls[i]) {
			end = i
			break
		}
	}

	var segs []segment
	if start < 0 {
		for i := 1; i < len(ls); i++ {
			t0, t1, ok := clip(ls[i-1], ls[i], b)
			if ok && t1 > t0 {
				return append(segs, segment{at(ls[i-1], ls[i], t0), at(ls[i-1], ls[i], t1)})
			}
		}
		return nil
	}
	if start > 0 {
		if t0, _, ok := clip(ls[start-1], ls[start], b); ok && t0 < 1 {
			segs = append(segs, segment{at(ls[start-1], ls[start], t0), ls[start]})
		}
	}
	for i := start + 1; i <= end; i++ {
		segs = append(segs, segment{ls[i-1], ls[i]})
	}
	if end < len(ls)-1 {
		if _, t1, ok := clip(ls[end], ls[end+1], b); ok && t1 > 0 {
			segs = append(segs, segment{ls[end], at(ls[end], ls[end+1], t1)})
		}
	}
	return segs
}

// textPath finds the first straight enough run of ls that can hold a text
// of width textWidth and returns it trimmed to that width, centred on the
// run. Runs are cut at segments outside b, segments shorter than cw and
// turns sharper than maxAngle degrees.
func textPath(ls orb.LineString, textWidth, maxAngle, cw float64, b orb.Bound) orb.LineString {
	if textWidth <= 0 {
		return nil
	}
	segs := lineSegments(ls, b)
	if len(segs) == 0 {
		return nil
	}

	var length float64
	last := 0
	angle := segs[0].angle()
	for i, s := range segs {
		sl, a := s.length(), s.angle()
		valid := containsPoint(b, s.p) && containsPoint(b, s.q) && sl >= cw
		if valid && (length == 0 || turn(angle, a) <= maxAngle) {
			if length == 0 {
				last = i
			}
			length += sl
		} else {
			if length >= textWidth {
				return trim(segs[last:i], length-textWidth)
			}
			length = 0
			if valid {
				last = i
				length = sl
			}
		}
		angle = a
	}
	if length >= textWidth {
		return trim(segs[last:], length-textWidth)
	}
	return nil
}

// trim removes cut/2 from both ends of a run of connected segments.
func trim(segs []segment, cut float64) orb.LineString {
	ls := make(orb.LineString, 0, len(segs)+1)
	ls = append(ls, segs[0].p)
	for _, s := range segs {
		ls = append(ls, s.q)
	}
	total := planar.Length(ls)
	return subLine(ls, cut/2, total-cut/2)
}

// subLine returns the part of ls between arc lengths from and to.
func subLine(ls orb.LineString, from, to float64) orb.LineString {
	var out orb.LineString
	var pos float64
	for i := 1; i < len(ls); i++ {
		p, q := ls[i-1], ls[i]
		l := planar.Distance(p, q)
		next := pos + l
		if next >= from && pos <= to && l > 0 {
			if len(out) == 0 {
				out = append(out, at(p, q, math.Max(0, (from-pos)/l)))
			}
			if next >= to {
				return append(out, at(p, q, (to-pos)/l))
			}
			out = append(out, q)
		}
		pos = next
	}
	return out
}

// upsideDown reports whether text drawn along ls would be upside down.
func upsideDown(ls orb.LineString) bool {
	if len(ls) < 2 {
		return false
	}
	a := segment{ls[0], ls[1]}.angle()
	return a > 90 && a < 270
}

func reversed(ls orb.LineString) orb.LineString {
	out := make(orb.LineString, len(ls))
	for i, p := range ls {
		out[len(ls)-1-i] = p
	}
	return out
}

// pointAt returns the point at arc length d along ls and the direction of
// the segment it falls on, in radians clockwise in screen space.
func pointAt(ls orb.LineString, d float64) (orb.Point, float64) {
	var pos float64
	for i := 1; i < len(ls); i++ {
		p, q := ls[i-1], ls[i]
		l := planar.Distance(p, q)
		if l == 0 {
			continue
		}
		if pos+l >= d || i == len(ls)-1 {
			t := math.Min(math.Max((d-pos)/l, 0), 1)
			return at(p, q, t), math.Atan2(q[1]-p[1], q[0]-p[0])
		}
		pos += l
	}
	if len(ls) > 0 {
		return ls[0], 0
	}
	return orb.Point{}, 0
}

// Glyph is one character positioned along a path. Angle is the rotation in
// degrees, clockwise in screen space, about Pos which is the glyph's
// baseline origin.
type Glyph struct {
	Text  string    `json:"text"`
	Pos   orb.Point `json:"pos"`
	Angle float64   `json:"angle"`
}

// layoutGlyphs spreads the characters of text along ls, centred.
func layoutGlyphs(text string, ls orb.LineString, f Font) []Glyph {
	var width float64
	for _, r := range text {
		width += runeWidth(r, f)
	}
	if width <= 0 {
		return nil
	}
	length := planar.Length(ls)
	factor := width / math.Max(length, width)
	percent := (1 - factor) / 2

	var glyphs []Glyph
	for _, r := range text {
		pt, a := pointAt(ls, percent*length)
		glyphs = append(glyphs, Glyph{
			Text:  string(r),
			Pos:   pt,
			Angle: a * 180 / math.Pi,
		})
		percent += runeWidth(r, f) / width * factor
	}
	return glyphs
}
