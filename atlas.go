package gui

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"golang.org/x/text/unicode/rangetable"
)

// AtlasFormat selects the pixel layout returned by FontAtlas.Bake.
type AtlasFormat uint8

const (
	AtlasAlpha8 AtlasFormat = iota // One coverage byte per texel
	AtlasRGBA32                    // White texels with coverage in alpha
)

const (
	atlasPadding = 1
	atlasMaxSize = 8192
	whiteSize    = 2
)

// Font is a baked font from a FontAtlas. It implements UserFont.
type Font struct {
	size     float32
	ascent   float32
	glyphs   map[rune]Glyph
	fallback rune
	texture  Handle
}

// Height returns the line height in pixels.
func (f *Font) Height() float32 { return f.size }

// Ascent returns the distance from the top of the line to the baseline.
func (f *Font) Ascent() float32 { return f.ascent }

// Texture returns the atlas texture, valid after FontAtlas.End.
func (f *Font) Texture() Handle { return f.texture }

// GlyphCount returns the number of baked glyphs.
func (f *Font) GlyphCount() int { return len(f.glyphs) }

// Glyph returns the glyph for r, or the fallback glyph.
func (f *Font) Glyph(r rune) (Glyph, bool) {
	if g, ok := f.glyphs[r]; ok {
		return g, true
	}
	g, ok := f.glyphs[f.fallback]
	return g, ok
}

// Width returns the advance width of text in pixels.
func (f *Font) Width(text string) float32 {
	var w float32
	for _, r := range text {
		if g, ok := f.Glyph(r); ok {
			w += g.Advance
		}
	}
	return w
}

// FontAtlas rasterizes every registered font into one texture image.
//
// Usage follows three steps: AddFont for each font, Bake once to get the
// pixels for upload, then End with the uploaded texture handle to obtain the
// DrawNullTexture. The atlas is immutable after End.
type FontAtlas struct {
	configs  []FontConfig
	parsed   []*sfnt.Font
	fonts    []*Font
	pixels   []byte
	width    int
	height   int
	whiteUV  Vec2
	baked    bool
	finished bool
}

// NewFontAtlas creates an empty atlas.
func NewFontAtlas() *FontAtlas {
	return &FontAtlas{}
}

// AddFont parses cfg.TTF and registers the font. It returns the font index.
func (a *FontAtlas) AddFont(cfg FontConfig) (int, error) {
	if a.finished {
		return -1, ErrAtlasFinished
	}
	if err := cfg.validate(); err != nil {
		return -1, err
	}
	sf, err := sfnt.Parse(cfg.TTF)
	if err != nil {
		return -1, fmt.Errorf("gui: parse font: %w", err)
	}

	a.configs = append(a.configs, cfg)
	a.parsed = append(a.parsed, sf)
	a.fonts = append(a.fonts, &Font{
		size:     cfg.Size,
		fallback: cfg.FallbackGlyph,
		glyphs:   make(map[rune]Glyph),
	})
	a.baked = false
	return len(a.fonts) - 1, nil
}

// Font returns the font registered at index.
func (a *FontAtlas) Font(index int) (*Font, error) {
	if index < 0 || index >= len(a.fonts) {
		return nil, fmt.Errorf("%w: index %d", ErrFontNotFound, index)
	}
	return a.fonts[index], nil
}

// Len returns the number of registered fonts.
func (a *FontAtlas) Len() int {
	return len(a.fonts)
}

// packedGlyph is a glyph on its way into the atlas.
type packedGlyph struct {
	font    int
	r       rune
	index   sfnt.GlyphIndex
	advance float32

	bx0, by0 int // Oversampled bitmap origin relative to the pen on the baseline
	rw, rh   int // Rasterized size
	w, h     int // Size including the box-filter margin
	x, y     int // Position in the atlas
}

type faceMetrics struct {
	ppem   fixed.Int26_6
	ascent float32
}

// Bake rasterizes all fonts and returns the atlas pixels in the requested
// format together with the atlas size.
func (a *FontAtlas) Bake(format AtlasFormat) ([]byte, int, int, error) {
	if a.finished {
		return nil, 0, 0, ErrAtlasFinished
	}
	if len(a.fonts) == 0 {
		return nil, 0, 0, ErrNoFonts
	}

	var buf sfnt.Buffer
	faces := make([]faceMetrics, len(a.fonts))
	var glyphs []packedGlyph
	for i := range a.configs {
		m, err := measureFace(&buf, a.parsed[i], a.configs[i].Size)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("gui: font %d metrics: %w", i, err)
		}
		faces[i] = m
		glyphs = collectGlyphs(&buf, a.parsed[i], &a.configs[i], m, i, glyphs)
	}

	width := 512
	if len(glyphs) > 1000 {
		width = 1024
	}
	height, white, err := packGlyphs(glyphs, width)
	if err != nil {
		return nil, 0, 0, err
	}

	pixels := make([]byte, width*height)
	for y := white.Y; y < white.Y+whiteSize; y++ {
		for x := white.X; x < white.X+whiteSize; x++ {
			pixels[y*width+x] = 0xFF
		}
	}

	for _, f := range a.fonts {
		clear(f.glyphs)
	}

	z := vector.NewRasterizer(1, 1)
	var scratch []byte
	for i := range glyphs {
		g := &glyphs[i]
		cfg := &a.configs[g.font]
		oh, ov := cfg.OversampleH, cfg.OversampleV

		if g.w > 0 {
			segs, err := a.parsed[g.font].LoadGlyph(&buf, g.index, faces[g.font].ppem, nil)
			if err != nil {
				return nil, 0, 0, fmt.Errorf("gui: load glyph %U: %w", g.r, err)
			}
			scratch = rasterizeGlyph(z, scratch, segs, g, float32(oh), float32(ov))
			blit(pixels, width, scratch, g)
			boxFilterH(pixels, width, g.x, g.y, g.w, g.h, oh)
			boxFilterV(pixels, width, g.x, g.y, g.w, g.h, ov)
		}

		a.fonts[g.font].glyphs[g.r] = makeGlyph(g, cfg, faces[g.font].ascent, width, height)
	}
	for i, f := range a.fonts {
		f.ascent = faces[i].ascent
	}

	a.pixels = pixels
	a.width = width
	a.height = height
	a.whiteUV = Vec2{
		X: (float32(white.X) + 0.5) / float32(width),
		Y: (float32(white.Y) + 0.5) / float32(height),
	}
	a.baked = true

	guiLogger.Debug("font atlas baked", "fonts", len(a.fonts), "glyphs", len(glyphs), "width", width, "height", height)

	switch format {
	case AtlasAlpha8:
		out := make([]byte, len(pixels))
		copy(out, pixels)
		return out, width, height, nil
	case AtlasRGBA32:
		out := make([]byte, len(pixels)*4)
		for i, c := range pixels {
			out[i*4] = 0xFF
			out[i*4+1] = 0xFF
			out[i*4+2] = 0xFF
			out[i*4+3] = c
		}
		return out, width, height, nil
	default:
		return nil, 0, 0, fmt.Errorf("gui: unknown atlas format %d", format)
	}
}

// End finishes the atlas: every font now samples tex, and the returned
// DrawNullTexture points at the white texels reserved in the atlas.
func (a *FontAtlas) End(tex Handle) (DrawNullTexture, error) {
	if !a.baked {
		return DrawNullTexture{}, ErrAtlasNotBaked
	}
	if !tex.Valid() {
		return DrawNullTexture{}, fmt.Errorf("gui: invalid atlas texture handle")
	}
	for _, f := range a.fonts {
		f.texture = tex
	}
	for i := range a.configs {
		if a.configs[i].TTFOwnedByAtlas {
			a.configs[i].TTF = nil
		}
	}
	a.parsed = nil
	a.pixels = nil
	a.finished = true
	return DrawNullTexture{Texture: tex, UV: a.whiteUV}, nil
}

// measureFace derives the ppem that makes ascent plus descent equal size.
func measureFace(buf *sfnt.Buffer, sf *sfnt.Font, size float32) (faceMetrics, error) {
	upem := sf.UnitsPerEm()
	m, err := sf.Metrics(buf, fixed.I(int(upem)), font.HintingNone)
	if err != nil {
		return faceMetrics{}, err
	}
	line := float32(m.Ascent+m.Descent) / 64
	if line <= 0 {
		return faceMetrics{}, fmt.Errorf("degenerate line height")
	}
	scale := size / line
	ppem := float32(upem) * scale
	return faceMetrics{
		ppem:   fixed.Int26_6(ppem*64 + 0.5),
		ascent: float32(m.Ascent) / 64 * scale,
	}, nil
}

// collectGlyphs appends every glyph of cfg.Ranges present in the font.
func collectGlyphs(buf *sfnt.Buffer, sf *sfnt.Font, cfg *FontConfig, m faceMetrics, fi int, out []packedGlyph) []packedGlyph {
	table := cfg.Ranges.Table()
	var runes []rune
	rangetable.Visit(table, func(r rune) {
		runes = append(runes, r)
	})
	if cfg.FallbackGlyph != 0 && !unicode.Is(table, cfg.FallbackGlyph) {
		runes = append(runes, cfg.FallbackGlyph)
	}

	oh, ov := float64(cfg.OversampleH), float64(cfg.OversampleV)
	for _, r := range runes {
		idx, err := sf.GlyphIndex(buf, r)
		if err != nil || idx == 0 {
			continue
		}
		bounds, adv, err := sf.GlyphBounds(buf, idx, m.ppem, font.HintingNone)
		if err != nil {
			continue
		}
		g := packedGlyph{font: fi, r: r, index: idx, advance: float32(adv) / 64}

		x0 := int(math.Floor(float64(bounds.Min.X) / 64 * oh))
		y0 := int(math.Floor(float64(bounds.Min.Y) / 64 * ov))
		x1 := int(math.Ceil(float64(bounds.Max.X) / 64 * oh))
		y1 := int(math.Ceil(float64(bounds.Max.Y) / 64 * ov))
		if x1 > x0 && y1 > y0 {
			g.bx0, g.by0 = x0, y0
			g.rw, g.rh = x1-x0, y1-y0
			g.w = g.rw + cfg.OversampleH - 1
			g.h = g.rh + cfg.OversampleV - 1
		}
		out = append(out, g)
	}
	return out
}

// packGlyphs places the white block and every glyph on shelves of a fixed
// width atlas and returns the power-of-two height needed.
func packGlyphs(glyphs []packedGlyph, width int) (int, image.Point, error) {
	x, y, rowH := atlasPadding, atlasPadding, 0
	place := func(w, h int) (image.Point, bool) {
		if w+2*atlasPadding > width {
			return image.Point{}, false
		}
		if x+w+atlasPadding > width {
			x = atlasPadding
			y += rowH + atlasPadding
			rowH = 0
		}
		p := image.Pt(x, y)
		x += w + atlasPadding
		rowH = max(rowH, h)
		return p, true
	}

	white, _ := place(whiteSize, whiteSize)
	for i := range glyphs {
		g := &glyphs[i]
		if g.w == 0 {
			continue
		}
		p, ok := place(g.w, g.h)
		if !ok {
			return 0, white, fmt.Errorf("%w: glyph %U is %dpx wide", ErrAtlasTooLarge, g.r, g.w)
		}
		g.x, g.y = p.X, p.Y
	}

	used := y + rowH + atlasPadding
	height := 1
	for height < used {
		height <<= 1
	}
	if height > atlasMaxSize {
		return 0, white, fmt.Errorf("%w: %d rows needed", ErrAtlasTooLarge, used)
	}
	return height, white, nil
}

// rasterizeGlyph renders the outline scaled by the oversampling factors
// into scratch and returns the (possibly grown) scratch buffer.
func rasterizeGlyph(z *vector.Rasterizer, scratch []byte, segs sfnt.Segments, g *packedGlyph, oh, ov float32) []byte {
	n := g.rw * g.rh
	if cap(scratch) < n {
		scratch = make([]byte, n)
	}
	scratch = scratch[:n]
	dst := &image.Alpha{Pix: scratch, Stride: g.rw, Rect: image.Rect(0, 0, g.rw, g.rh)}

	z.Reset(g.rw, g.rh)
	z.DrawOp = draw.Src
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X)/64*oh - float32(g.bx0), float32(p.Y)/64*ov - float32(g.by0)
	}

	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				z.ClosePath()
			}
			x, y := pt(s.Args[0])
			z.MoveTo(x, y)
			open = true
		case sfnt.SegmentOpLineTo:
			x, y := pt(s.Args[0])
			z.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			z.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			dx, dy := pt(s.Args[2])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		z.ClosePath()
	}
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return scratch
}

// blit copies a rasterized glyph into the atlas at its packed position.
func blit(pixels []byte, stride int, src []byte, g *packedGlyph) {
	for j := 0; j < g.rh; j++ {
		off := (g.y+j)*stride + g.x
		copy(pixels[off:off+g.rw], src[j*g.rw:(j+1)*g.rw])
	}
}

// boxFilterH applies a k-wide horizontal box filter to the w*h block at x,y.
func boxFilterH(pix []byte, stride, x, y, w, h, k int) {
	if k <= 1 {
		return
	}
	row := make([]byte, w)
	for j := 0; j < h; j++ {
		line := pix[(y+j)*stride+x : (y+j)*stride+x+w]
		copy(row, line)
		total := 0
		for i := 0; i < w; i++ {
			total += int(row[i])
			if i >= k {
				total -= int(row[i-k])
			}
			line[i] = byte(total / k)
		}
	}
}

// boxFilterV applies a k-tall vertical box filter to the w*h block at x,y.
func boxFilterV(pix []byte, stride, x, y, w, h, k int) {
	if k <= 1 {
		return
	}
	col := make([]byte, h)
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			col[j] = pix[(y+j)*stride+x+i]
		}
		total := 0
		for j := 0; j < h; j++ {
			total += int(col[j])
			if j >= k {
				total -= int(col[j-k])
			}
			pix[(y+j)*stride+x+i] = byte(total / k)
		}
	}
}

// oversampleShift centers the box filter on the unfiltered sample position.
func oversampleShift(n int) float32 {
	if n <= 1 {
		return 0
	}
	return -float32(n-1) / (2 * float32(n))
}

func makeGlyph(g *packedGlyph, cfg *FontConfig, ascent float32, width, height int) Glyph {
	out := Glyph{Codepoint: g.r, Advance: g.advance}
	if cfg.PixelSnap {
		out.Advance = float32(math.Round(float64(out.Advance)))
	}
	if g.w == 0 {
		return out
	}
	oh, ov := float32(cfg.OversampleH), float32(cfg.OversampleV)
	out.X0 = float32(g.bx0)/oh + oversampleShift(cfg.OversampleH)
	out.Y0 = float32(g.by0)/ov + oversampleShift(cfg.OversampleV) + ascent
	out.X1 = out.X0 + float32(g.w)/oh
	out.Y1 = out.Y0 + float32(g.h)/ov
	out.U0 = float32(g.x) / float32(width)
	out.V0 = float32(g.y) / float32(height)
	out.U1 = float32(g.x+g.w) / float32(width)
	out.V1 = float32(g.y+g.h) / float32(height)
	return out
}
