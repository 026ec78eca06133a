package gui

import "strings"

// PanelFlags control how a panel is drawn and whether it reacts to input.
type PanelFlags uint32

const (
	PanelBorder  PanelFlags = 1 << iota // Draw a border around the panel
	PanelMovable                        // Drag the header to move the panel
	PanelTitle                          // Draw a header with the title
	PanelNoInput                        // Ignore mouse input
)

func (f PanelFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, p := range []struct {
		flag PanelFlags
		name string
	}{
		{PanelBorder, "border"},
		{PanelMovable, "movable"},
		{PanelTitle, "title"},
		{PanelNoInput, "no_input"},
	} {
		if f&p.flag != 0 {
			parts = append(parts, p.name)
		}
	}
	return strings.Join(parts, "|")
}

// panelState is the part of a panel that persists across frames.
type panelState struct {
	title  string
	bounds Rect
	flags  PanelFlags
}

// Begin starts a panel. bounds is only used the first time the panel is
// seen; afterwards the stored position is kept so a moved panel stays
// where it was dropped. Begin returns false if the panel cannot be opened,
// in which case End must not be called.
func (ctx *Context) Begin(title string, bounds Rect, flags PanelFlags) bool {
	if ctx.current != nil {
		guiLogger.Warn("nested panel begin", "panel", title, "open", ctx.current.title)
		return false
	}
	st, created := ctx.panels.Get(IDOf(title), panelState{title: title, bounds: bounds})
	st.flags = flags
	if created {
		guiLogger.Debug("panel created", "title", title, "bounds", bounds, "flags", flags)
	}

	style := &ctx.style
	headerH := float32(0)
	if flags&PanelTitle != 0 {
		headerH = ctx.lineHeight() + 2*style.HeaderPadding.Y
	}

	if flags&PanelMovable != 0 && flags&PanelNoInput == 0 {
		ctx.dragPanel(st, headerH)
	}

	b := st.bounds
	cmds := ctx.commands
	cmds.PushScissor(nullRect)

	if headerH > 0 {
		header := Rect{X: b.X, Y: b.Y, W: b.W, H: headerH}
		headerColor := style.PanelHeaderBgColor
		if flags&PanelMovable != 0 && flags&PanelNoInput == 0 && ctx.Input.MouseHovering(header) {
			headerColor = style.PanelHeaderHoverColor
		}
		cmds.FillRect(header, 0, headerColor)
		label := Rect{
			X: header.X + style.HeaderPadding.X,
			Y: header.Y + style.HeaderPadding.Y,
			W: maxf(0, header.W-2*style.HeaderPadding.X),
			H: ctx.lineHeight(),
		}
		cmds.DrawText(label, title, ctx.font, headerColor, style.headerTextColor())
	}

	body := Rect{X: b.X, Y: b.Y + headerH, W: b.W, H: maxf(0, b.H-headerH)}
	cmds.FillRect(body, 0, style.PanelColor)
	cmds.PushScissor(body)

	ctx.current = st
	ctx.row = rowLayout{
		origin: Vec2{X: body.X + style.PanelPadding.X, Y: body.Y + style.PanelPadding.Y},
		width:  maxf(0, body.W-2*style.PanelPadding.X),
	}
	return true
}

// dragPanel moves a panel while the left button is held after a press in
// its header. A panel without a title is dragged by its whole area.
func (ctx *Context) dragPanel(st *panelState, headerH float32) {
	in := ctx.Input
	handle := st.bounds
	if headerH > 0 {
		handle.H = headerH
	}
	// The press frame only records where the drag starts.
	if !in.HasClickDownInRect(MouseButtonLeft, handle) || in.MouseClicked(MouseButtonLeft) {
		return
	}
	d := in.MouseDelta
	if d.X == 0 && d.Y == 0 {
		return
	}
	st.bounds.X += d.X
	st.bounds.Y += d.Y
	in.shiftClickedPos(MouseButtonLeft, d)
}

// End finishes the current panel.
func (ctx *Context) End() {
	st := ctx.current
	if st == nil {
		guiLogger.Warn("panel end without begin")
		return
	}
	ctx.commands.PushScissor(nullRect)
	if st.flags&PanelBorder != 0 {
		ctx.commands.StrokeRect(st.bounds, ctx.style.Rounding, ctx.style.BorderSize, ctx.style.PanelBorderColor)
	}
	ctx.current = nil
	ctx.row = rowLayout{}
}

// Canvas returns the command buffer of the open panel for custom drawing,
// or nil outside Begin/End. Commands pushed here are clipped to the panel
// body and count against the frame's command budget.
//
//	if b, ok := ctx.Widget(); ok {
//		ctx.Canvas().FillCircle(b, gui.ColorRed)
//	}
func (ctx *Context) Canvas() *CommandBuffer {
	if ctx.current == nil {
		return nil
	}
	return ctx.commands
}

// PanelBounds returns the stored bounds of a panel.
func (ctx *Context) PanelBounds(title string) (Rect, bool) {
	st := ctx.panels.Lookup(IDOf(title))
	if st == nil {
		return Rect{}, false
	}
	return st.bounds, true
}
