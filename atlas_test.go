package gui_test

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	gui "github.com/go-theft-auto/gui-demo"
)

func demoFontConfig() gui.FontConfig {
	fc := gui.NewFontConfig(14)
	fc.OversampleH, fc.OversampleV = 3, 2
	fc.Ranges = gui.CyrillicGlyphRanges
	fc.TTF = goregular.TTF
	return fc
}

func TestFontAtlasBake(t *testing.T) {
	atlas := gui.NewFontAtlas()
	idx, err := atlas.AddFont(demoFontConfig())
	if err != nil {
		t.Fatalf("AddFont: %v", err)
	}

	pixels, w, h, err := atlas.Bake(gui.AtlasRGBA32)
	if err != nil {
		t.Fatalf("Bake: %v", err)
	}
	if w != 512 && w != 1024 {
		t.Errorf("atlas width = %d, want 512 or 1024", w)
	}
	if h <= 0 || h&(h-1) != 0 {
		t.Errorf("atlas height = %d, want a power of two", h)
	}
	if len(pixels) != w*h*4 {
		t.Fatalf("pixel buffer = %d bytes, want %d", len(pixels), w*h*4)
	}

	covered := 0
	for i := 0; i < len(pixels); i += 4 {
		if pixels[i] != 0xFF || pixels[i+1] != 0xFF || pixels[i+2] != 0xFF {
			t.Fatalf("texel %d is not white", i/4)
		}
		if pixels[i+3] != 0 {
			covered++
		}
	}
	if covered == 0 {
		t.Fatal("atlas has no coverage")
	}

	null, err := atlas.End(7)
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if null.Texture != 7 {
		t.Errorf("null texture = %d, want 7", null.Texture)
	}
	if null.UV.X <= 0 || null.UV.X >= 1 || null.UV.Y <= 0 || null.UV.Y >= 1 {
		t.Fatalf("null UV %v outside the atlas", null.UV)
	}
	x, y := int(null.UV.X*float32(w)), int(null.UV.Y*float32(h))
	if a := pixels[(y*w+x)*4+3]; a != 0xFF {
		t.Errorf("null UV samples alpha %d, want opaque white", a)
	}

	font, err := atlas.Font(idx)
	if err != nil {
		t.Fatalf("Font: %v", err)
	}
	if font.Height() != 14 {
		t.Errorf("font height = %v, want 14", font.Height())
	}
	if font.Texture() != 7 {
		t.Errorf("font texture = %d, want 7", font.Texture())
	}
	if font.Ascent() <= 0 || font.Ascent() >= font.Height() {
		t.Errorf("ascent = %v, want inside (0, %v)", font.Ascent(), font.Height())
	}
}

func TestFontGlyphs(t *testing.T) {
	atlas := gui.NewFontAtlas()
	idx, err := atlas.AddFont(demoFontConfig())
	if err != nil {
		t.Fatalf("AddFont: %v", err)
	}
	if _, _, _, err := atlas.Bake(gui.AtlasAlpha8); err != nil {
		t.Fatalf("Bake: %v", err)
	}
	if _, err := atlas.End(1); err != nil {
		t.Fatalf("End: %v", err)
	}
	font, _ := atlas.Font(idx)

	// Printable ASCII plus Cyrillic, at least.
	if n := font.GlyphCount(); n < 95+64 {
		t.Errorf("GlyphCount = %d, want at least %d", n, 95+64)
	}

	for _, r := range []rune{'A', 'g', 'Ж', 'я'} {
		g, ok := font.Glyph(r)
		if !ok {
			t.Errorf("glyph %q missing", r)
			continue
		}
		if g.Codepoint != r {
			t.Errorf("glyph %q resolved to %q", r, g.Codepoint)
		}
		if g.Advance <= 0 {
			t.Errorf("glyph %q advance = %v", r, g.Advance)
		}
		if g.X1 <= g.X0 || g.Y1 <= g.Y0 {
			t.Errorf("glyph %q has empty quad %+v", r, g)
		}
		if g.U0 < 0 || g.V0 < 0 || g.U1 > 1 || g.V1 > 1 || g.U1 <= g.U0 || g.V1 <= g.V0 {
			t.Errorf("glyph %q UVs out of range %+v", r, g)
		}
		if g.Y0 < -1 || g.Y1 > font.Height()+1 {
			t.Errorf("glyph %q quad y [%v, %v] outside the line", r, g.Y0, g.Y1)
		}
	}

	// Space has an advance but no quad.
	if sp, ok := font.Glyph(' '); !ok || sp.Advance <= 0 || sp.X1 != sp.X0 {
		t.Errorf("space glyph = %+v, %v", sp, ok)
	}

	// Runes outside the ranges fall back to '?'.
	g, ok := font.Glyph('€')
	if !ok || g.Codepoint != '?' {
		t.Errorf("fallback glyph = %q, %v; want '?'", g.Codepoint, ok)
	}

	if w := font.Width("Free type:"); w <= 0 {
		t.Errorf("text width = %v", w)
	}
	if font.Width("ab") <= font.Width("a") {
		t.Error("width should grow with text length")
	}
}

func TestFontAtlasErrors(t *testing.T) {
	t.Run("no fonts", func(t *testing.T) {
		_, _, _, err := gui.NewFontAtlas().Bake(gui.AtlasRGBA32)
		if !errors.Is(err, gui.ErrNoFonts) {
			t.Errorf("err = %v, want ErrNoFonts", err)
		}
	})

	t.Run("end before bake", func(t *testing.T) {
		atlas := gui.NewFontAtlas()
		if _, err := atlas.AddFont(demoFontConfig()); err != nil {
			t.Fatal(err)
		}
		if _, err := atlas.End(1); !errors.Is(err, gui.ErrAtlasNotBaked) {
			t.Errorf("err = %v, want ErrAtlasNotBaked", err)
		}
	})

	t.Run("oversample out of range", func(t *testing.T) {
		fc := demoFontConfig()
		fc.OversampleH = 9
		if _, err := gui.NewFontAtlas().AddFont(fc); !errors.Is(err, gui.ErrInvalidOversample) {
			t.Errorf("err = %v, want ErrInvalidOversample", err)
		}
	})

	t.Run("zero size", func(t *testing.T) {
		fc := demoFontConfig()
		fc.Size = 0
		if _, err := gui.NewFontAtlas().AddFont(fc); !errors.Is(err, gui.ErrInvalidFontSize) {
			t.Errorf("err = %v, want ErrInvalidFontSize", err)
		}
	})

	t.Run("bad ttf", func(t *testing.T) {
		fc := demoFontConfig()
		fc.TTF = []byte("not a font")
		if _, err := gui.NewFontAtlas().AddFont(fc); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("add after end", func(t *testing.T) {
		atlas := gui.NewFontAtlas()
		if _, err := atlas.AddFont(demoFontConfig()); err != nil {
			t.Fatal(err)
		}
		if _, _, _, err := atlas.Bake(gui.AtlasAlpha8); err != nil {
			t.Fatal(err)
		}
		if _, err := atlas.End(1); err != nil {
			t.Fatal(err)
		}
		if _, err := atlas.AddFont(demoFontConfig()); !errors.Is(err, gui.ErrAtlasFinished) {
			t.Errorf("err = %v, want ErrAtlasFinished", err)
		}
	})

	t.Run("unknown font", func(t *testing.T) {
		if _, err := gui.NewFontAtlas().Font(0); !errors.Is(err, gui.ErrFontNotFound) {
			t.Errorf("err = %v, want ErrFontNotFound", err)
		}
	})
}

func TestFontTTFOwnedByAtlas(t *testing.T) {
	fc := demoFontConfig()
	fc.TTF = append([]byte(nil), goregular.TTF...)
	fc.TTFOwnedByAtlas = true

	atlas := gui.NewFontAtlas()
	idx, err := atlas.AddFont(fc)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := atlas.Bake(gui.AtlasAlpha8); err != nil {
		t.Fatal(err)
	}
	if _, err := atlas.End(1); err != nil {
		t.Fatal(err)
	}
	// Baked glyphs stay usable after the TTF is released.
	font, _ := atlas.Font(idx)
	if _, ok := font.Glyph('A'); !ok {
		t.Error("glyph lost after End")
	}
}
