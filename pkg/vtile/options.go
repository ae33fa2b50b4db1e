package vtile

import (
	"image"

	"github.com/sirupsen/logrus"
)

// Options configures decoding and rendering.
type Options struct {
	// Width and Height of the output in pixels.
	// Default: 512x512
	Width, Height int

	// ScaleX and ScaleY are the device pixel ratio.
	// Default: 1
	ScaleX, ScaleY float64

	// Fonts resolves text-font lists. Default: names only.
	Fonts FontResolver

	// Sprites supplies icons. Default: none, icon-image is ignored.
	Sprites SpriteAtlas

	// MaxLayers and MaxFeatures limit what a tile may contain; 0 means
	// no limit.
	MaxLayers   int
	MaxFeatures int

	// MaxTileSize caps the size of a decompressed tile in bytes.
	// Default: 64MB
	MaxTileSize int64

	// Logger receives warnings and debug output.
	// Default: logrus.StandardLogger()
	Logger logrus.FieldLogger
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{
		Width:       512,
		Height:      512,
		ScaleX:      1,
		ScaleY:      1,
		MaxTileSize: 64 << 20,
		Logger:      logrus.StandardLogger(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.ScaleX <= 0 {
		o.ScaleX = d.ScaleX
	}
	if o.ScaleY <= 0 {
		o.ScaleY = d.ScaleY
	}
	if o.MaxTileSize <= 0 {
		o.MaxTileSize = d.MaxTileSize
	}
	if o.Logger == nil {
		o.Logger = d.Logger
	}
	return o
}

func (o Options) size() image.Point {
	return image.Pt(o.Width, o.Height)
}
