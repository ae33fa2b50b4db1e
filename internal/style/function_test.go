package style

import (
	"image/color"
	"math"
	"testing"
)

func TestFunctionLinearMidpoint(t *testing.T) {
	f := NewFunction([]Stop[float64]{{0, 1.0}, {10, 5.0}}, 1.0, LerpFloat)
	if got := f.Value(5); math.Abs(got-3.0) > 1e-9 {
		t.Errorf("Expected 3.0, got %f", got)
	}
}

func TestFunctionClamp(t *testing.T) {
	f := NewFunction([]Stop[float64]{{4, 2}, {8, 10}}, 1, LerpFloat)
	tests := []struct {
		zoom, want float64
	}{
		{0, 2}, {4, 2}, {6, 6}, {8, 10}, {20, 10},
	}
	for _, tt := range tests {
		if got := f.Value(tt.zoom); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("zoom %g: expected %g, got %g", tt.zoom, tt.want, got)
		}
	}
}

func TestFunctionExponential(t *testing.T) {
	f := NewFunction([]Stop[float64]{{0, 0}, {2, 3}}, 2, LerpFloat)
	// (2^1 - 1) / (2^2 - 1) = 1/3
	if got := f.Value(1); math.Abs(got-1) > 1e-9 {
		t.Errorf("Expected 1, got %f", got)
	}
}

func TestFunctionSortsStops(t *testing.T) {
	f := NewFunction([]Stop[float64]{{10, 5}, {0, 1}}, 1, LerpFloat)
	if got := f.Value(5); math.Abs(got-3) > 1e-9 {
		t.Errorf("Expected 3, got %f", got)
	}
}

func TestFunctionZeroWidthInterval(t *testing.T) {
	if got := Factor(5, 5, 5, 1); got != 0 {
		t.Errorf("Expected 0, got %f", got)
	}
}

func TestFunctionStep(t *testing.T) {
	f := NewFunction[string]([]Stop[string]{{0, "a"}, {5, "b"}, {10, "c"}}, 1, nil)
	tests := []struct {
		zoom float64
		want string
	}{
		{-1, "a"}, {4.99, "a"}, {5, "b"}, {9, "b"}, {10, "c"}, {12, "c"},
	}
	for _, tt := range tests {
		if got := f.Value(tt.zoom); got != tt.want {
			t.Errorf("zoom %g: expected %s, got %s", tt.zoom, tt.want, got)
		}
	}

	b := NewFunction[bool]([]Stop[bool]{{0, false}, {10, true}}, 1, nil)
	if b.Value(9.9) || !b.Value(10) {
		t.Error("bool functions must step")
	}
}

func TestFunctionColor(t *testing.T) {
	black := color.NRGBA{0, 0, 0, 255}
	white := color.NRGBA{255, 255, 255, 0}
	f := NewFunction([]Stop[color.NRGBA]{{0, black}, {10, white}}, 1, LerpColor)
	got := f.Value(5)
	want := color.NRGBA{128, 128, 128, 128}
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestFunctionConstant(t *testing.T) {
	f := Constant(7.0)
	if !f.IsConstant() || f.Value(0) != 7 || f.Value(22) != 7 {
		t.Error("Constant function mismatch")
	}
}
