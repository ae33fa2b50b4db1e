package style

import (
	"math"
	"sort"
)

// Stop is one (zoom, value) breakpoint of a Function.
type Stop[T any] struct {
	Zoom  float64
	Value T
}

// Lerp blends a toward b by t in [0, 1].
type Lerp[T any] func(a, b T, t float64) T

// Function is a zoom dependent property value: either a constant or an
// ascending list of stops with an interpolation base. Types without a Lerp
// step at the lower-or-equal stop.
type Function[T any] struct {
	constant T
	stops    []Stop[T]
	base     float64
	lerp     Lerp[T]
}

// Constant returns a function that evaluates to v at every zoom.
func Constant[T any](v T) Function[T] {
	return Function[T]{constant: v, base: 1}
}

// NewFunction builds a stops function. Stops are sorted by zoom; ties keep
// their input order. A base <= 0 is treated as 1 (linear). lerp may be nil
// for step functions.
func NewFunction[T any](stops []Stop[T], base float64, lerp Lerp[T]) Function[T] {
	s := make([]Stop[T], len(stops))
	copy(s, stops)
	sort.SliceStable(s, func(i, j int) bool { return s[i].Zoom < s[j].Zoom })
	if base <= 0 {
		base = 1
	}
	f := Function[T]{stops: s, base: base, lerp: lerp}
	if len(s) > 0 {
		f.constant = s[0].Value
	}
	return f
}

// IsConstant reports whether the function has no stops.
func (f Function[T]) IsConstant() bool {
	return len(f.stops) == 0
}

// Stops returns the function's breakpoints.
func (f Function[T]) Stops() []Stop[T] {
	return f.stops
}

// Value evaluates the function at zoom.
func (f Function[T]) Value(zoom float64) T {
	n := len(f.stops)
	if n == 0 {
		return f.constant
	}
	if zoom <= f.stops[0].Zoom {
		return f.stops[0].Value
	}
	if zoom >= f.stops[n-1].Zoom {
		return f.stops[n-1].Value
	}

	// first stop strictly above zoom
	i := sort.Search(n, func(i int) bool { return f.stops[i].Zoom > zoom })
	lo, hi := f.stops[i-1], f.stops[i]
	if f.lerp == nil {
		return lo.Value
	}
	return f.lerp(lo.Value, hi.Value, Factor(zoom, lo.Zoom, hi.Zoom, f.base))
}

// Factor is the interpolation progress of zoom between z0 and z1. A base
// of 1 is linear; larger bases ease exponentially.
func Factor(zoom, z0, z1, base float64) float64 {
	diff := z1 - z0
	if diff < 1e-6 {
		return 0
	}
	progress := zoom - z0
	if base == 1 {
		return progress / diff
	}
	return (math.Pow(base, progress) - 1) / (math.Pow(base, diff) - 1)
}

// LerpFloat interpolates linearly between two numbers.
func LerpFloat(a, b, t float64) float64 {
	return a + t*(b-a)
}
