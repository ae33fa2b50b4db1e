package label

import (
	"testing"

	"github.com/paulmach/orb"
)

func box(x0, y0, x1, y1 float64) Shape {
	return rectShape(orb.Bound{Min: orb.Point{x0, y0}, Max: orb.Point{x1, y1}})
}

func TestShapeIntersects(t *testing.T) {
	diagonal := strokeShape(orb.LineString{{0, 0}, {100, 100}}, 4)

	tests := []struct {
		name string
		a, b Shape
		want bool
	}{
		{"overlapping boxes", box(0, 0, 10, 10), box(5, 5, 15, 15), true},
		{"contained box", box(0, 0, 10, 10), box(2, 2, 4, 4), true},
		{"touching boxes", box(0, 0, 10, 10), box(10, 0, 20, 10), false},
		{"disjoint boxes", box(0, 0, 10, 10), box(20, 20, 30, 30), false},
		{"stroke crosses box", diagonal, box(45, 45, 55, 55), true},
		{"box in stroke bound only", diagonal, box(70, 5, 90, 20), false},
		{"empty", Shape{}, box(0, 0, 10, 10), false},
	}
	for _, tt := range tests {
		if got := tt.a.Intersects(tt.b); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
		if got := tt.b.Intersects(tt.a); got != tt.want {
			t.Errorf("%s (swapped): expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestStrokeShape(t *testing.T) {
	s := strokeShape(orb.LineString{{10, 50}, {90, 50}, {90, 50}}, 10)
	if len(s) != 1 {
		t.Fatalf("Expected zero length segments to be dropped, got %d quads", len(s))
	}
	b := s.Bound()
	want := orb.Bound{Min: orb.Point{10, 45}, Max: orb.Point{90, 55}}
	if b != want {
		t.Errorf("Expected flat caps bound %v, got %v", want, b)
	}
}

func BenchmarkShapeIntersects(b *testing.B) {
	a := strokeShape(orb.LineString{{0, 0}, {30, 10}, {60, 0}, {90, 10}}, 12)
	c := strokeShape(orb.LineString{{0, 10}, {30, 0}, {60, 10}, {90, 0}}, 12)
	for i := 0; i < b.N; i++ {
		a.Intersects(c)
	}
}
