// Package label places text and icon labels without overlap.
//
// Labels are offered in draw order. Each offer runs Generate, BoundsCheck
// and CollideCheck; a candidate that passes is committed and later labels
// may not overlap it. The committed set is turned into draw instructions
// by Placer.Render.
package label

import (
	"image"
	"image/color"
)

// Font describes the face a label is drawn with. Size is in pixels.
type Font struct {
	Family string  `json:"family"`
	Size   float64 `json:"size"`
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
	Medium bool    `json:"medium,omitempty"`
	// Handle is an opaque reference from the font resolver.
	Handle any `json:"-"`
}

// Icon is a sprite image. Its logical size is the image size divided by
// PixelRatio.
type Icon struct {
	Name       string
	Image      image.Image
	PixelRatio float64
}

// Size returns the logical width and height of the icon.
func (i *Icon) Size() (w, h float64) {
	if i == nil || i.Image == nil {
		return 0, 0
	}
	r := i.PixelRatio
	if r <= 0 {
		r = 1
	}
	b := i.Image.Bounds()
	return float64(b.Dx()) / r, float64(b.Dy()) / r
}

// Anchor is the part of the label placed at the anchor point.
type Anchor int

const (
	AnchorCenter Anchor = iota
	AnchorLeft
	AnchorRight
	AnchorTop
	AnchorBottom
	AnchorTopLeft
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// ParseAnchor maps a text-anchor value; unknown values are centered.
func ParseAnchor(s string) Anchor {
	switch s {
	case "left":
		return AnchorLeft
	case "right":
		return AnchorRight
	case "top":
		return AnchorTop
	case "bottom":
		return AnchorBottom
	case "top-left":
		return AnchorTopLeft
	case "top-right":
		return AnchorTopRight
	case "bottom-left":
		return AnchorBottomLeft
	case "bottom-right":
		return AnchorBottomRight
	}
	return AnchorCenter
}

// Placement selects how a label follows its geometry.
type Placement int

const (
	PlacePoint Placement = iota
	PlaceLine
	PlaceLineCenter
)

// ParsePlacement maps a symbol-placement value.
func ParsePlacement(s string) Placement {
	switch s {
	case "line":
		return PlaceLine
	case "line-center":
		return PlaceLineCenter
	}
	return PlacePoint
}

// Alignment is the text rotation alignment.
type Alignment int

const (
	AlignAuto Alignment = iota
	AlignMap
	AlignViewport
)

// ParseAlignment maps a text-rotation-alignment value.
func ParseAlignment(s string) Alignment {
	switch s {
	case "map":
		return AlignMap
	case "viewport":
		return AlignViewport
	}
	return AlignAuto
}

// Halo is the outline drawn behind glyphs.
type Halo struct {
	Color color.NRGBA
	Width float64
	Blur  float64
}

// Enabled reports whether the halo paints anything.
func (h Halo) Enabled() bool {
	return h.Color.A > 0 && h.Width > 0
}

// Properties are the resolved layout and paint values for one label.
type Properties struct {
	Font        Font
	Color       color.NRGBA
	Halo        Halo
	MaxWidth    float64 // in ems
	MaxAngle    float64 // in degrees
	Anchor      Anchor
	Alignment   Alignment
	Icon        *Icon
	IconOpacity float64
	Layer       string // style layer id
}
