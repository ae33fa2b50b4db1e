package label

import (
	"math"

	"github.com/paulmach/orb"
)

const eps = 1e-9

// Shape is a union of convex polygons, each given by its vertices in order.
type Shape []orb.Ring

// rectShape returns the shape of an axis aligned rectangle.
func rectShape(b orb.Bound) Shape {
	return Shape{{
		b.Min,
		{b.Max[0], b.Min[1]},
		b.Max,
		{b.Min[0], b.Max[1]},
	}}
}

// strokeShape outlines a polyline stroked with the given width and flat
// caps, one quad per segment.
func strokeShape(ls orb.LineString, width float64) Shape {
	h := width / 2
	var s Shape
	for i := 1; i < len(ls); i++ {
		p, q := ls[i-1], ls[i]
		dx, dy := q[0]-p[0], q[1]-p[1]
		l := math.Hypot(dx, dy)
		if l < eps {
			continue
		}
		nx, ny := -dy/l*h, dx/l*h
		s = append(s, orb.Ring{
			{p[0] + nx, p[1] + ny},
			{q[0] + nx, q[1] + ny},
			{q[0] - nx, q[1] - ny},
			{p[0] - nx, p[1] - ny},
		})
	}
	return s
}

// Bound returns the bounding box of the shape.
func (s Shape) Bound() orb.Bound {
	if len(s) == 0 {
		return orb.Bound{}
	}
	b := s[0].Bound()
	for _, r := range s[1:] {
		b = b.Union(r.Bound())
	}
	return b
}

// Intersects reports whether the interiors of s and o overlap. Shapes that
// only touch do not intersect.
func (s Shape) Intersects(o Shape) bool {
	for _, a := range s {
		ab := a.Bound()
		for _, b := range o {
			if !overlaps(ab, b.Bound()) {
				continue
			}
			if convexIntersect(a, b) {
				return true
			}
		}
	}
	return false
}

// overlaps is a strict bounding box overlap test.
func overlaps(a, b orb.Bound) bool {
	return a.Min[0] < b.Max[0]-eps && b.Min[0] < a.Max[0]-eps &&
		a.Min[1] < b.Max[1]-eps && b.Min[1] < a.Max[1]-eps
}

// contains reports whether inner lies entirely within outer.
func contains(outer, inner orb.Bound) bool {
	return inner.Min[0] >= outer.Min[0]-eps && inner.Min[1] >= outer.Min[1]-eps &&
		inner.Max[0] <= outer.Max[0]+eps && inner.Max[1] <= outer.Max[1]+eps
}

// containsPoint is Bound.Contains with a small tolerance for points
// computed on the boundary.
func containsPoint(b orb.Bound, p orb.Point) bool {
	return p[0] >= b.Min[0]-eps && p[0] <= b.Max[0]+eps &&
		p[1] >= b.Min[1]-eps && p[1] <= b.Max[1]+eps
}

// convexIntersect is a separating axis test for two convex polygons.
func convexIntersect(a, b orb.Ring) bool {
	return !separated(a, b) && !separated(b, a)
}

// separated reports whether some edge normal of a separates a from b.
func separated(a, b orb.Ring) bool {
	n := len(a)
	for i := 0; i < n; i++ {
		p, q := a[i], a[(i+1)%n]
		ax, ay := -(q[1] - p[1]), q[0]-p[0]
		if math.Abs(ax) < eps && math.Abs(ay) < eps {
			continue
		}
		minA, maxA := project(a, ax, ay)
		minB, maxB := project(b, ax, ay)
		scale := math.Hypot(ax, ay)
		if maxA <= minB+eps*scale || maxB <= minA+eps*scale {
			return true
		}
	}
	return false
}

func project(r orb.Ring, ax, ay float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range r {
		d := p[0]*ax + p[1]*ay
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}
