package label

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// minExtent keeps R-tree rectangles non degenerate.
const minExtent = 1e-6

// item is a committed candidate.
type item struct {
	c       Candidate
	visible bool
	// exempt skips the containment check (single point features).
	exempt bool
}

// Bounds implements rtreego.Spatial.
func (it *item) Bounds() rtreego.Rect {
	return toRect(it.c.Bound())
}

func toRect(b orb.Bound) rtreego.Rect {
	w := b.Max[0] - b.Min[0]
	h := b.Max[1] - b.Min[1]
	if w < minExtent {
		w = minExtent
	}
	if h < minExtent {
		h = minExtent
	}
	r, _ := rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, []float64{w, h})
	return r
}

// index holds the visible committed labels for collision queries.
type index struct {
	tree *rtreego.Rtree
}

func newIndex() *index {
	return &index{tree: rtreego.NewTree(2, 25, 50)}
}

func (x *index) insert(it *item) {
	x.tree.Insert(it)
}

func (x *index) remove(it *item) {
	x.tree.Delete(it)
}

// collides reports whether shape overlaps any indexed label.
func (x *index) collides(c Candidate) bool {
	shape := c.Shape()
	for _, s := range x.tree.SearchIntersect(toRect(c.Bound())) {
		if shape.Intersects(s.(*item).c.Shape()) {
			return true
		}
	}
	return false
}

func (x *index) size() int {
	return x.tree.Size()
}
