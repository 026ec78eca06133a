package gui

// Context holds all state for building the UI of one frame.
// This is NOT context.Context - it's a dedicated GUI context type.
//
// A frame goes through InputBegin, HandleEvent for each platform event,
// InputEnd, then any number of Begin/End panels, then Convert, then Clear.
// Clear must run exactly once per frame after rendering.
type Context struct {
	style Style
	font  UserFont

	// Input (filled between InputBegin and InputEnd)
	Input *InputState

	commands *CommandBuffer

	// Panel positions persist while the panel is begun every frame.
	panels  *FrameStore[panelState]
	current *panelState
	row     rowLayout

	frame uint64
}

// NewContext creates a new GUI context drawing text with font.
func NewContext(font UserFont, opts ...ContextOption) *Context {
	o := defaultContextOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Context{
		style:    o.style,
		font:     font,
		Input:    NewInputState(),
		commands: NewCommandBuffer(o.commandMemory),
		panels:   NewFrameStore[panelState](),
	}
}

// Style returns the current style.
func (ctx *Context) Style() Style {
	return ctx.style
}

// SetStyle sets the style used by following widgets.
func (ctx *Context) SetStyle(style Style) {
	ctx.style = style
}

// Font returns the font used for text.
func (ctx *Context) Font() UserFont {
	return ctx.font
}

// SetFont replaces the font used for text.
func (ctx *Context) SetFont(font UserFont) {
	ctx.font = font
}

// FrameCount returns the number of completed frames.
func (ctx *Context) FrameCount() uint64 {
	return ctx.frame
}

// InputBegin starts collecting input for a new frame.
func (ctx *Context) InputBegin() {
	ctx.Input.reset()
}

// HandleEvent applies a platform event to the input state.
// It returns false for events the context does not consume.
func (ctx *Context) HandleEvent(e Event) bool {
	in := ctx.Input
	switch ev := e.(type) {
	case EventMouseMove:
		in.SetMousePos(ev.X, ev.Y)
	case EventMouseButton:
		in.SetMousePos(ev.X, ev.Y)
		in.SetMouseButton(ev.Button, ev.X, ev.Y, ev.Down)
	case EventScroll:
		in.AddScroll(ev.X, ev.Y)
	case EventKey:
		in.SetKey(ev.Key, ev.Down)
	case EventChar:
		in.AddChar(ev.Char)
	default:
		return false
	}
	return true
}

// InputEnd finishes input collection and computes the mouse delta.
func (ctx *Context) InputEnd() {
	ctx.Input.MouseDelta = ctx.Input.MousePos.Sub(ctx.Input.MousePrev)
}

// Clear discards the commands of the frame and drops panels that were not
// begun during it. CommandCount is zero afterwards.
func (ctx *Context) Clear() {
	if ctx.current != nil {
		guiLogger.Warn("clear with open panel", "panel", ctx.current.title)
		ctx.current = nil
	}
	ctx.commands.Reset()
	if dropped := ctx.panels.Sweep(); dropped > 0 {
		guiLogger.Debug("dropped unused panels", "count", dropped, "frame", ctx.frame)
	}
	ctx.row = rowLayout{}
	ctx.frame++
}

// CommandCount returns the number of commands recorded this frame.
func (ctx *Context) CommandCount() int {
	return ctx.commands.Len()
}

// Commands returns the commands recorded this frame.
// The slice is only valid until Clear and must not be modified.
func (ctx *Context) Commands() []Command {
	return ctx.commands.cmds
}

// CommandBytes returns the budget bytes used by this frame's commands.
func (ctx *Context) CommandBytes() int {
	return ctx.commands.Bytes()
}

// Overflowed returns true if commands were dropped this frame because the
// command budget was exhausted.
func (ctx *Context) Overflowed() bool {
	return ctx.commands.Overflowed()
}

// lineHeight returns the height of a single line of text.
func (ctx *Context) lineHeight() float32 {
	if ctx.font == nil {
		return 0
	}
	return ctx.font.Height()
}

// MeasureText returns the size of rendered text.
func (ctx *Context) MeasureText(text string) Vec2 {
	if ctx.font == nil {
		return Vec2{}
	}
	return Vec2{X: ctx.font.Width(text), Y: ctx.font.Height()}
}
