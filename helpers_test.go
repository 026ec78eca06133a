package gui_test

import (
	"unicode/utf8"

	gui "github.com/go-theft-auto/gui-demo"
)

// monoFont is a fixed-width font that draws every rune with the same quad.
type monoFont struct {
	advance float32
	height  float32
	tex     gui.Handle
}

func newMonoFont() *monoFont {
	return &monoFont{advance: 7, height: 14, tex: 2}
}

func (f *monoFont) Height() float32 { return f.height }

func (f *monoFont) Width(text string) float32 {
	return f.advance * float32(utf8.RuneCountInString(text))
}

func (f *monoFont) Glyph(r rune) (gui.Glyph, bool) {
	if r == ' ' {
		return gui.Glyph{Codepoint: r, Advance: f.advance}, true
	}
	return gui.Glyph{
		Codepoint: r,
		Advance:   f.advance,
		Y0:        2,
		X1:        f.advance - 1,
		Y1:        f.height - 2,
		U1:        1,
		V1:        1,
	}, true
}

func (f *monoFont) Texture() gui.Handle { return f.tex }

func textCommands(ctx *gui.Context) []gui.Command {
	var out []gui.Command
	for _, c := range ctx.Commands() {
		if c.Kind == gui.CommandText {
			out = append(out, c)
		}
	}
	return out
}

func findText(t interface{ Fatalf(string, ...any) }, ctx *gui.Context, text string) gui.Command {
	for _, c := range textCommands(ctx) {
		if c.Text == text {
			return c
		}
	}
	t.Fatalf("no text command %q among %d commands", text, ctx.CommandCount())
	return gui.Command{}
}

func approx(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-3
}

// frame runs one input phase with events applied.
func frame(ctx *gui.Context, events ...gui.Event) {
	ctx.InputBegin()
	for _, e := range events {
		ctx.HandleEvent(e)
	}
	ctx.InputEnd()
}
