package gui

// TextAlign positions text inside its widget rectangle. Combine one
// horizontal and one vertical flag.
type TextAlign uint32

const (
	TextAlignLeft TextAlign = 1 << iota
	TextAlignCentered
	TextAlignRight
	TextAlignTop
	TextAlignMiddle
	TextAlignBottom
)

// Common alignments, vertically centered.
const (
	TextLeft     = TextAlignMiddle | TextAlignLeft
	TextCentered = TextAlignMiddle | TextAlignCentered
	TextRight    = TextAlignMiddle | TextAlignRight
)

// Text draws a single line of text in the next layout column.
func (ctx *Context) Text(text string, align TextAlign) {
	ctx.TextColored(text, align, ctx.style.TextColor)
}

// Label draws left-aligned text in the next layout column.
func (ctx *Context) Label(text string) {
	ctx.Text(text, TextLeft)
}

// TextColored draws text with an explicit color.
func (ctx *Context) TextColored(text string, align TextAlign, color uint32) {
	bounds, ok := ctx.Widget()
	if !ok || ctx.font == nil {
		return
	}
	size := ctx.MeasureText(text)
	label := alignText(bounds, size.X, size.Y, ctx.style.TextPadding, align)
	ctx.commands.DrawText(label, text, ctx.font, ctx.style.PanelColor, color)
}

// alignText computes the rectangle text of the given width occupies inside
// the widget bounds b.
func alignText(b Rect, textWidth, fontHeight float32, pad Vec2, align TextAlign) Rect {
	b.H = maxf(b.H, 2*pad.Y)

	label := Rect{
		Y: b.Y + pad.Y,
		H: minf(fontHeight, b.H-2*pad.Y),
	}
	tw := textWidth + 2*pad.X

	switch {
	case align&TextAlignLeft != 0:
		label.X = b.X + pad.X
		label.W = maxf(0, b.W-2*pad.X)
	case align&TextAlignCentered != 0:
		label.W = maxf(1, 2*pad.X+tw)
		label.X = b.X + pad.X + ((b.W-2*pad.X)-label.W)/2
		label.X = maxf(b.X+pad.X, label.X)
		label.W = minf(b.X+b.W, label.X+label.W)
		if label.W >= label.X {
			label.W -= label.X
		}
	case align&TextAlignRight != 0:
		label.X = maxf(b.X+pad.X, (b.X+b.W)-(2*pad.X+tw))
		label.W = tw + 2*pad.X
	default:
		return label
	}

	switch {
	case align&TextAlignMiddle != 0:
		label.Y = b.Y + b.H/2 - fontHeight/2
		label.H = maxf(b.H/2, b.H-(b.H/2+fontHeight/2))
	case align&TextAlignBottom != 0:
		label.Y = b.Y + b.H - fontHeight
		label.H = fontHeight
	}
	return label
}
