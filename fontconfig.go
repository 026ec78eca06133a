package gui

import (
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// GlyphRanges lists inclusive [first, last] code point pairs to rasterize.
type GlyphRanges []rune

// DefaultGlyphRanges covers Basic Latin and Latin-1 Supplement.
var DefaultGlyphRanges = GlyphRanges{
	0x0020, 0x00FF,
}

// CyrillicGlyphRanges adds Cyrillic, Cyrillic Supplement and Extended-A/B.
var CyrillicGlyphRanges = GlyphRanges{
	0x0020, 0x00FF,
	0x0400, 0x052F,
	0x2DE0, 0x2DFF,
	0xA640, 0xA69F,
}

// ChineseGlyphRanges adds CJK punctuation, kana, fullwidth forms and unified ideographs.
var ChineseGlyphRanges = GlyphRanges{
	0x0020, 0x00FF,
	0x3000, 0x30FF,
	0x31F0, 0x31FF,
	0xFF00, 0xFFEF,
	0x4E00, 0x9FAF,
}

// KoreanGlyphRanges adds Hangul compatibility jamo and syllables.
var KoreanGlyphRanges = GlyphRanges{
	0x0020, 0x00FF,
	0x3131, 0x3163,
	0xAC00, 0xD79D,
}

// Validate checks that the ranges come in ordered pairs.
func (g GlyphRanges) Validate() error {
	if len(g) == 0 || len(g)%2 != 0 {
		return fmt.Errorf("gui: glyph ranges need first/last pairs, got %d values", len(g))
	}
	for i := 0; i < len(g); i += 2 {
		if g[i] > g[i+1] || g[i] < 0 || g[i+1] > unicode.MaxRune {
			return fmt.Errorf("gui: invalid glyph range %U-%U", g[i], g[i+1])
		}
	}
	return nil
}

// Table merges the ranges into a single unicode.RangeTable.
func (g GlyphRanges) Table() *unicode.RangeTable {
	tables := make([]*unicode.RangeTable, 0, len(g)/2)
	for i := 0; i+1 < len(g); i += 2 {
		tables = append(tables, rangeTable(g[i], g[i+1]))
	}
	return rangetable.Merge(tables...)
}

func rangeTable(lo, hi rune) *unicode.RangeTable {
	t := &unicode.RangeTable{}
	if lo <= 0xFFFF {
		hi16 := min(hi, 0xFFFF)
		t.R16 = []unicode.Range16{{Lo: uint16(lo), Hi: uint16(hi16), Stride: 1}}
		if hi16 <= unicode.MaxLatin1 {
			t.LatinOffset = 1
		}
	}
	if hi > 0xFFFF {
		t.R32 = []unicode.Range32{{Lo: uint32(max(lo, 0x10000)), Hi: uint32(hi), Stride: 1}}
	}
	return t
}

// FontConfig describes one font to add to a FontAtlas.
type FontConfig struct {
	// Size is the pixel height of a line (ascent plus descent).
	Size float32

	// OversampleH and OversampleV rasterize glyphs at this many times the
	// target resolution before box-filtering, for smoother subpixel placement.
	OversampleH int
	OversampleV int

	// PixelSnap rounds glyph advances to whole pixels.
	PixelSnap bool

	Ranges GlyphRanges

	// TTF holds the raw TrueType/OpenType file.
	TTF []byte

	// TTFOwnedByAtlas lets the atlas drop its reference to TTF once baked.
	TTFOwnedByAtlas bool

	// FallbackGlyph is drawn for runes outside Ranges.
	FallbackGlyph rune
}

// NewFontConfig returns a configuration with 3x1 oversampling and the
// default glyph ranges.
func NewFontConfig(size float32) FontConfig {
	return FontConfig{
		Size:          size,
		OversampleH:   3,
		OversampleV:   1,
		Ranges:        DefaultGlyphRanges,
		FallbackGlyph: '?',
	}
}

func (c *FontConfig) validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidFontSize, c.Size)
	}
	if c.OversampleH < 1 || c.OversampleH > 8 || c.OversampleV < 1 || c.OversampleV > 8 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidOversample, c.OversampleH, c.OversampleV)
	}
	if len(c.TTF) == 0 {
		return fmt.Errorf("gui: font config has no TTF data")
	}
	return c.Ranges.Validate()
}
