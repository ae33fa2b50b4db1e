package vtile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/beetlebugorg/vtrender/internal/label"
	"github.com/beetlebugorg/vtrender/internal/style"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontFace is one font file found by FontDir.
type FontFace struct {
	Family    string
	Subfamily string
	Path      string
}

// FontDir resolves text-font names against the fonts in a directory. The
// directory is scanned once, on first use; a failed scan is not retried
// and every lookup falls back to the font name alone.
type FontDir struct {
	dir string
	log logrus.FieldLogger

	once  sync.Once
	faces []FontFace
	err   error
}

// NewFontDir returns a resolver for the .ttf and .otf files below dir.
func NewFontDir(dir string, log logrus.FieldLogger) *FontDir {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FontDir{dir: dir, log: log}
}

// Faces returns the fonts found, sorted by family.
func (d *FontDir) Faces() ([]FontFace, error) {
	d.once.Do(d.scan)
	return d.faces, d.err
}

func (d *FontDir) scan() {
	err := filepath.WalkDir(d.dir, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if e.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".ttf", ".otf":
		default:
			return nil
		}
		face, err := readFace(path)
		if err != nil {
			d.log.WithField("font", path).Warnf("skipping font: %v", err)
			return nil
		}
		d.faces = append(d.faces, face)
		return nil
	})
	if err != nil {
		d.err = fmt.Errorf("scan fonts: %w", err)
		d.log.WithError(err).Error("cannot scan font directory")
		return
	}
	sort.SliceStable(d.faces, func(i, j int) bool { return d.faces[i].Family < d.faces[j].Family })
	d.log.WithField("count", len(d.faces)).Debug("fonts loaded")
}

func readFace(path string) (FontFace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FontFace{}, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return FontFace{}, err
	}
	var buf sfnt.Buffer
	family, err := f.Name(&buf, sfnt.NameIDFamily)
	if err != nil {
		return FontFace{}, err
	}
	sub, _ := f.Name(&buf, sfnt.NameIDSubfamily)
	return FontFace{Family: family, Subfamily: sub, Path: path}, nil
}

// Resolve picks the first hint whose family prefixes an installed family.
// Without a match the first hint is used as is. The returned font's
// Handle is the matching file path, if any.
func (d *FontDir) Resolve(hints []string) label.Font {
	if len(hints) == 0 {
		hints = []string{style.DefaultFont}
	}
	faces, _ := d.Faces()
	for _, name := range hints {
		h := style.ParseFontName(name)
		if face, ok := match(faces, h); ok {
			return label.Font{
				Family: h.Family,
				Bold:   h.Bold,
				Italic: h.Italic,
				Medium: h.Medium,
				Handle: face.Path,
			}
		}
	}
	h := style.ParseFontName(hints[0])
	return label.Font{Family: h.Family, Bold: h.Bold, Italic: h.Italic, Medium: h.Medium}
}

// match prefers a face whose subfamily names the hint's style.
func match(faces []FontFace, h style.FontHint) (FontFace, bool) {
	var found *FontFace
	want := "Regular"
	switch {
	case h.Bold:
		want = "Bold"
	case h.Italic:
		want = "Italic"
	case h.Medium:
		want = "Medium"
	}
	for i := range faces {
		if !strings.HasPrefix(faces[i].Family, h.Family) {
			continue
		}
		if faces[i].Subfamily == want {
			return faces[i], true
		}
		if found == nil {
			found = &faces[i]
		}
	}
	if found == nil {
		return FontFace{}, false
	}
	return *found, true
}
