package parser

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Command is a geometry command id.
type Command uint8

const (
	MoveTo    Command = 1
	LineTo    Command = 2
	ClosePath Command = 7
)

func (c Command) String() string {
	switch c {
	case MoveTo:
		return "MoveTo"
	case LineTo:
		return "LineTo"
	case ClosePath:
		return "ClosePath"
	}
	return fmt.Sprintf("Command(%d)", uint8(c))
}

// PathOp is one absolute path operation. For ClosePath, Pt holds the start
// of the sub-path being closed.
type PathOp struct {
	Cmd Command
	Pt  orb.Point
}

// Path is a sequence of absolute path operations in tile coordinates.
type Path []PathOp

// Path expands the feature's command stream into absolute coordinates.
//
// Parameters are zigzag deltas against a cursor that persists across the
// whole feature; ClosePath returns the pen to the sub-path start but does
// not move the cursor.
func (f *Feature) Path() (Path, error) {
	g := f.Geometry
	path := make(Path, 0, len(g)/2)
	var x, y int64
	var start orb.Point
	open := false

	for i := 0; i < len(g); {
		cmd, count := Command(g[i]&0x7), int(g[i]>>3)
		at := i
		i++

		switch cmd {
		case MoveTo, LineTo:
			if cmd == LineTo && !open {
				return nil, &FeatureError{ID: f.ID, Index: at, Reason: "LineTo before MoveTo"}
			}
			if count > (len(g)-i)/2 {
				return nil, &FeatureError{ID: f.ID, Index: at,
					Reason: fmt.Sprintf("%s needs %d parameters, %d left", cmd, 2*count, len(g)-i)}
			}
			for j := 0; j < count; j++ {
				x += int64(Zigzag32(g[i]))
				y += int64(Zigzag32(g[i+1]))
				i += 2
				pt := orb.Point{float64(x), float64(y)}
				if cmd == MoveTo {
					start, open = pt, true
				}
				path = append(path, PathOp{Cmd: cmd, Pt: pt})
			}
		case ClosePath:
			if !open {
				return nil, &FeatureError{ID: f.ID, Index: at, Reason: "ClosePath before MoveTo"}
			}
			path = append(path, PathOp{Cmd: ClosePath, Pt: start})
		default:
			return nil, &FeatureError{ID: f.ID, Index: at, Reason: fmt.Sprintf("unknown command %d", uint8(cmd))}
		}
	}

	return path, nil
}

// Scale returns a copy of the path with every coordinate multiplied by
// (sx, sy).
func (p Path) Scale(sx, sy float64) Path {
	out := make(Path, len(p))
	for i, op := range p {
		out[i] = PathOp{Cmd: op.Cmd, Pt: orb.Point{op.Pt[0] * sx, op.Pt[1] * sy}}
	}
	return out
}

// SubPaths splits the path at each MoveTo. A closed sub-path ends with its
// start point repeated.
func (p Path) SubPaths() []orb.LineString {
	var out []orb.LineString
	var cur orb.LineString
	for _, op := range p {
		switch op.Cmd {
		case MoveTo:
			if len(cur) > 0 {
				out = append(out, cur)
			}
			cur = orb.LineString{op.Pt}
		default:
			cur = append(cur, op.Pt)
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// Vertices returns the MoveTo and LineTo points in order.
func (p Path) Vertices() []orb.Point {
	pts := make([]orb.Point, 0, len(p))
	for _, op := range p {
		if op.Cmd != ClosePath {
			pts = append(pts, op.Pt)
		}
	}
	return pts
}

// Bound returns the bounding box of all vertices.
func (p Path) Bound() orb.Bound {
	return orb.MultiPoint(p.Vertices()).Bound()
}

// Length returns the summed planar length of all sub-paths.
func (p Path) Length() float64 {
	var l float64
	for _, ls := range p.SubPaths() {
		l += planar.Length(ls)
	}
	return l
}
