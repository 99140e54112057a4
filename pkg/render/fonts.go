package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type faceKey struct {
	size float64
	bold bool
}

// faceCache hands out Go font faces by size. Faces are not safe for
// concurrent use, so each PNG render gets its own cache.
type faceCache struct {
	faces map[faceKey]font.Face
}

var (
	parseOnce          sync.Once
	regularFont        *opentype.Font
	boldFont           *opentype.Font
	errFontUnavailable error
)

func loadFonts() error {
	parseOnce.Do(func() {
		var err error
		if regularFont, err = opentype.Parse(goregular.TTF); err != nil {
			errFontUnavailable = fmt.Errorf("parse go regular: %w", err)
			return
		}
		if boldFont, err = opentype.Parse(gobold.TTF); err != nil {
			errFontUnavailable = fmt.Errorf("parse go bold: %w", err)
		}
	})
	return errFontUnavailable
}

func newFaceCache() (*faceCache, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}
	return &faceCache{faces: make(map[faceKey]font.Face)}, nil
}

func (c *faceCache) face(size float64, bold bool) (font.Face, error) {
	key := faceKey{size: size, bold: bold}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}
	src := regularFont
	if bold {
		src = boldFont
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %gpx: %w", size, err)
	}
	c.faces[key] = f
	return f, nil
}

func (c *faceCache) close() {
	for _, f := range c.faces {
		f.Close()
	}
}
