package style

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{"#FF000080", color.NRGBA{255, 0, 0, 128}},
		{"#1a2b3c", color.NRGBA{0x1a, 0x2b, 0x3c, 255}},
		{"#f008", color.NRGBA{255, 0, 0, 0x88}},
		{"rgb(10, 20, 30)", color.NRGBA{10, 20, 30, 255}},
		{"rgba(10,20,30,0.5)", color.NRGBA{10, 20, 30, 128}},
		{"rgb(100%, 0%, 50%)", color.NRGBA{255, 0, 128, 255}},
		{"hsl(0, 100%, 50%)", color.NRGBA{255, 0, 0, 255}},
		{"hsl(120, 100%, 25%)", color.NRGBA{0, 128, 0, 255}},
		{"hsla(240, 100%, 50%, 0.25)", color.NRGBA{0, 0, 255, 64}},
		{"white", color.NRGBA{255, 255, 255, 255}},
		{" SteelBlue ", color.NRGBA{70, 130, 180, 255}},
		{"transparent", Transparent},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "#12", "#ggg", "rgb(1,2)", "rgb(a,b,c)", "hsl(1,2%)", "notacolor", "rgb(1,2,3"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("Expected error for %q", in)
		}
	}
}

func TestWithOpacity(t *testing.T) {
	c := WithOpacity(color.NRGBA{10, 20, 30, 200}, 0.5)
	if c.A != 100 || c.R != 10 {
		t.Errorf("Unexpected %v", c)
	}
	if !IsTransparent(WithOpacity(c, 0)) {
		t.Error("Expected zero opacity to be transparent")
	}
}
