package chart

import (
	"fmt"
	"image"
	"sync"

	"codeberg.org/go-fonts/dejavu/dejavusans"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Embedded faces. DejaVu Sans covers the IPA Extensions block; Go Regular
// fills in anything a caller-supplied face lacks.
var (
	labelFont    = sync.OnceValues(func() (*opentype.Font, error) { return ParseFont(dejavusans.TTF) })
	fallbackFont = sync.OnceValues(func() (*opentype.Font, error) { return ParseFont(goregular.TTF) })
)

// ParseFont parses TrueType or OpenType font data.
func ParseFont(data []byte) (*opentype.Font, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("chart: parse font: %w", err)
	}
	return f, nil
}

// DefaultFont returns the embedded label font, DejaVu Sans.
func DefaultFont() (*opentype.Font, error) {
	return labelFont()
}

// HasGlyph reports whether f maps r to a real glyph rather than .notdef.
func HasGlyph(f *opentype.Font, r rune) bool {
	var buf sfnt.Buffer
	x, err := f.GlyphIndex(&buf, r)
	return err == nil && x != 0
}

// MissingGlyphs returns the runes of text that f cannot draw, in order of
// first appearance.
func MissingGlyphs(f *opentype.Font, text string) []rune {
	var missing []rune
	seen := make(map[rune]bool)
	for _, r := range text {
		if seen[r] {
			continue
		}
		seen[r] = true
		if !HasGlyph(f, r) {
			missing = append(missing, r)
		}
	}
	return missing
}

// fallbackFace draws each rune with the primary face when its font has a
// glyph for it and with the fallback face otherwise.
type fallbackFace struct {
	primaryFont *opentype.Font
	primary     font.Face
	fallback    font.Face
	covered     map[rune]bool
}

func newLabelFace(primary *opentype.Font, size float64) (font.Face, error) {
	if primary == nil {
		var err error
		if primary, err = labelFont(); err != nil {
			return nil, err
		}
	}
	fallback, err := fallbackFont()
	if err != nil {
		return nil, err
	}
	opts := &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone, // supersampled instead
	}
	pf, err := opentype.NewFace(primary, opts)
	if err != nil {
		return nil, fmt.Errorf("chart: font face: %w", err)
	}
	ff, err := opentype.NewFace(fallback, opts)
	if err != nil {
		return nil, fmt.Errorf("chart: font face: %w", err)
	}
	return &fallbackFace{primaryFont: primary, primary: pf, fallback: ff, covered: make(map[rune]bool)}, nil
}

func (f *fallbackFace) face(r rune) font.Face {
	ok, seen := f.covered[r]
	if !seen {
		ok = HasGlyph(f.primaryFont, r)
		f.covered[r] = ok
	}
	if ok {
		return f.primary
	}
	return f.fallback
}

func (f *fallbackFace) Close() error {
	f.primary.Close()
	return f.fallback.Close()
}

func (f *fallbackFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	return f.face(r).Glyph(dot, r)
}

func (f *fallbackFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	return f.face(r).GlyphBounds(r)
}

func (f *fallbackFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	return f.face(r).GlyphAdvance(r)
}

func (f *fallbackFace) Kern(r0, r1 rune) fixed.Int26_6 {
	a, b := f.face(r0), f.face(r1)
	if a != b {
		return 0
	}
	return a.Kern(r0, r1)
}

func (f *fallbackFace) Metrics() font.Metrics {
	return f.primary.Metrics()
}
