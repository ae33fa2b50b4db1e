package vtile

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"sort"
	"sync"

	"github.com/beetlebugorg/vtrender/internal/label"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	xdraw "golang.org/x/image/draw"
)

// ErrAtlasUnavailable is returned by Sprites.Err after the atlas image
// failed to load.
var ErrAtlasUnavailable = errors.New("sprite atlas unavailable")

// Sprite is one entry of a sprite index.
type Sprite struct {
	Rect       image.Rectangle
	PixelRatio float64
	SDF        bool
}

// SpriteOptions configures a sprite atlas.
type SpriteOptions struct {
	// CacheSize bounds the memory of derived icons in bytes.
	// Default: 16MB
	CacheSize int64
	Logger    logrus.FieldLogger
}

// DefaultSpriteOptions returns sprite options with defaults.
func DefaultSpriteOptions() SpriteOptions {
	return SpriteOptions{CacheSize: 16 << 20, Logger: logrus.StandardLogger()}
}

// Sprites is a sprite atlas: a JSON index of named rectangles over one
// PNG image. The image is decoded on first use. If that fails the atlas
// stays unavailable and later lookups return nil without retrying.
type Sprites struct {
	index map[string]Sprite
	open  func() (io.ReadCloser, error)

	once  sync.Once
	atlas image.Image
	err   error

	cache *IconCache
	log   logrus.FieldLogger
}

// LoadSprites parses a sprite index. open is called at most once, on the
// first icon lookup, to read the atlas PNG. Entries without a valid
// rectangle are skipped with a warning.
func LoadSprites(index []byte, open func() (io.ReadCloser, error), opts SpriteOptions) (*Sprites, error) {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if !gjson.ValidBytes(index) {
		return nil, fmt.Errorf("sprite index: invalid JSON")
	}
	root := gjson.ParseBytes(index)
	if !root.IsObject() {
		return nil, fmt.Errorf("sprite index: not an object")
	}

	s := &Sprites{
		index: make(map[string]Sprite),
		open:  open,
		cache: NewIconCache(opts.CacheSize),
		log:   opts.Logger,
	}
	root.ForEach(func(key, v gjson.Result) bool {
		sp, ok := parseSprite(v)
		if !ok {
			s.log.WithField("sprite", key.String()).Warn("invalid sprite definition")
			return true
		}
		s.index[key.String()] = sp
		return true
	})
	return s, nil
}

// LoadSpritesFile reads a sprite index file; imagePath is opened lazily.
func LoadSpritesFile(indexPath, imagePath string, opts SpriteOptions) (*Sprites, error) {
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, fmt.Errorf("read sprite index: %w", err)
	}
	return LoadSprites(data, func() (io.ReadCloser, error) {
		return os.Open(imagePath)
	}, opts)
}

func parseSprite(v gjson.Result) (Sprite, bool) {
	if !v.IsObject() {
		return Sprite{}, false
	}
	var dims [4]int
	for i, k := range []string{"x", "y", "width", "height"} {
		f := v.Get(k)
		if f.Type != gjson.Number {
			return Sprite{}, false
		}
		dims[i] = int(f.Int())
	}
	if dims[2] <= 0 || dims[3] <= 0 || dims[0] < 0 || dims[1] < 0 {
		return Sprite{}, false
	}
	sp := Sprite{
		Rect:       image.Rect(dims[0], dims[1], dims[0]+dims[2], dims[1]+dims[3]),
		PixelRatio: 1,
		SDF:        v.Get("sdf").Bool(),
	}
	if pr := v.Get("pixelRatio"); pr.Type == gjson.Number && pr.Float() > 0 {
		sp.PixelRatio = pr.Float()
	}
	return sp, true
}

// Names returns the sprite names in sorted order.
func (s *Sprites) Names() []string {
	names := make([]string, 0, len(s.index))
	for n := range s.index {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Sprite returns the index entry for name.
func (s *Sprites) Sprite(name string) (Sprite, bool) {
	sp, ok := s.index[name]
	return sp, ok
}

// Err loads the atlas if that has not been tried yet and returns the
// load error.
func (s *Sprites) Err() error {
	s.once.Do(s.load)
	return s.err
}

func (s *Sprites) load() {
	if s.open == nil {
		s.err = ErrAtlasUnavailable
		return
	}
	rc, err := s.open()
	if err != nil {
		s.err = fmt.Errorf("%w: %v", ErrAtlasUnavailable, err)
		s.log.WithError(err).Error("cannot open sprite atlas")
		return
	}
	defer rc.Close()

	img, err := png.Decode(rc)
	if err != nil {
		s.err = fmt.Errorf("%w: %v", ErrAtlasUnavailable, err)
		s.log.WithError(err).Error("cannot decode sprite atlas")
		return
	}
	s.atlas = img
}

// Icon returns the named sprite. SDF sprites are recoloured with tint;
// scale resamples the image. It returns nil for unknown names, sprites
// outside the atlas and when the atlas is unavailable.
func (s *Sprites) Icon(name string, tint *color.NRGBA, scale float64) *label.Icon {
	sp, ok := s.index[name]
	if !ok {
		return nil
	}
	if s.Err() != nil {
		return nil
	}
	if !sp.Rect.In(s.atlas.Bounds()) {
		s.log.WithField("sprite", name).Debug("sprite outside atlas")
		return nil
	}
	if scale <= 0 {
		scale = 1
	}
	if !sp.SDF {
		tint = nil
	}

	key := fmt.Sprintf("%s|%v|%g", name, tint, scale)
	icon, err := s.cache.Get(key, func() (*label.Icon, error) {
		return s.derive(name, sp, tint, scale), nil
	})
	if err != nil {
		return nil
	}
	return icon
}

func (s *Sprites) derive(name string, sp Sprite, tint *color.NRGBA, scale float64) *label.Icon {
	w, h := sp.Rect.Dx(), sp.Rect.Dy()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(img, img.Bounds(), s.atlas, sp.Rect.Min, xdraw.Src)

	if tint != nil {
		tintSDF(img, *tint)
	}
	if scale != 1 {
		sw := int(math.Max(1, math.Round(float64(w)*scale)))
		sh := int(math.Max(1, math.Round(float64(h)*scale)))
		dst := image.NewNRGBA(image.Rect(0, 0, sw, sh))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = dst
	}
	return &label.Icon{Name: name, Image: img, PixelRatio: sp.PixelRatio}
}

// tintSDF replaces the colour of every pixel with c, keeping the sprite's
// alpha as coverage.
func tintSDF(img *image.NRGBA, c color.NRGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := uint32(img.Pix[i+3]) * uint32(c.A) / 0xff
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = uint8(a)
	}
}

// CacheStats returns statistics of the derived icon cache.
func (s *Sprites) CacheStats() CacheStats {
	return s.cache.Stats()
}
