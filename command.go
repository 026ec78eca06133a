package gui

import (
	"fmt"
	"unsafe"
)

// CommandKind identifies the shape recorded by a Command.
type CommandKind uint8

const (
	CommandNop CommandKind = iota
	CommandScissor
	CommandLine
	CommandCurve
	CommandRect
	CommandRectFilled
	CommandCircle
	CommandCircleFilled
	CommandTriangleFilled
	CommandText
)

func (k CommandKind) String() string {
	switch k {
	case CommandNop:
		return "nop"
	case CommandScissor:
		return "scissor"
	case CommandLine:
		return "line"
	case CommandCurve:
		return "curve"
	case CommandRect:
		return "rect"
	case CommandRectFilled:
		return "rect_filled"
	case CommandCircle:
		return "circle"
	case CommandCircleFilled:
		return "circle_filled"
	case CommandTriangleFilled:
		return "triangle_filled"
	case CommandText:
		return "text"
	default:
		return fmt.Sprintf("CommandKind(%d)", uint8(k))
	}
}

// Command is one abstract drawing instruction recorded during a frame.
// Which fields are meaningful depends on Kind.
type Command struct {
	Kind       CommandKind
	Rect       Rect    // Scissor, rect, circle bounds and text box
	Points     [4]Vec2 // Line (0-1), curve (0-3), triangle (0-2)
	Rounding   float32
	Thickness  float32
	Color      uint32
	Background uint32 // Text background
	Text       string
	Font       UserFont
}

// commandHeaderSize is the budget charged for a command, excluding text bytes.
const commandHeaderSize = int(unsafe.Sizeof(Command{}))

// CommandBuffer records the commands of one frame within a fixed byte budget.
// Commands that do not fit are dropped and the buffer is marked overflowed.
type CommandBuffer struct {
	cmds       []Command
	budget     int
	used       int
	clip       Rect
	overflowed bool
}

// NewCommandBuffer creates a buffer that holds at most budget bytes of commands.
func NewCommandBuffer(budget int) *CommandBuffer {
	return &CommandBuffer{
		cmds:   make([]Command, 0, budget/commandHeaderSize),
		budget: budget,
		clip:   nullRect,
	}
}

// Reset discards all recorded commands.
func (b *CommandBuffer) Reset() {
	clear(b.cmds) // drop text and font references
	b.cmds = b.cmds[:0]
	b.used = 0
	b.clip = nullRect
	b.overflowed = false
}

// Len returns the number of recorded commands.
func (b *CommandBuffer) Len() int { return len(b.cmds) }

// Bytes returns the number of budget bytes in use.
func (b *CommandBuffer) Bytes() int { return b.used }

// Budget returns the byte budget.
func (b *CommandBuffer) Budget() int { return b.budget }

// Overflowed returns true if a command was dropped this frame.
func (b *CommandBuffer) Overflowed() bool { return b.overflowed }

// Clip returns the current scissor rectangle.
func (b *CommandBuffer) Clip() Rect { return b.clip }

func (b *CommandBuffer) push(cmd Command) bool {
	size := commandHeaderSize + len(cmd.Text)
	if b.used+size > b.budget {
		if !b.overflowed {
			guiLogger.Warn("command buffer full", "budget", b.budget, "kind", cmd.Kind)
		}
		b.overflowed = true
		return false
	}
	b.used += size
	b.cmds = append(b.cmds, cmd)
	return true
}

// PushScissor sets the clip rectangle for the following commands.
func (b *CommandBuffer) PushScissor(r Rect) {
	b.clip = r
	b.push(Command{Kind: CommandScissor, Rect: r})
}

func (b *CommandBuffer) culled(r Rect) bool {
	return !r.Intersects(b.clip)
}

// StrokeLine records a line from a to c.
func (b *CommandBuffer) StrokeLine(a, c Vec2, thickness float32, color uint32) {
	if thickness <= 0 || color&0xFF000000 == 0 {
		return
	}
	b.push(Command{Kind: CommandLine, Points: [4]Vec2{a, c}, Thickness: thickness, Color: color})
}

// StrokeCurve records a cubic bezier through p0..p3.
func (b *CommandBuffer) StrokeCurve(p0, p1, p2, p3 Vec2, thickness float32, color uint32) {
	if thickness <= 0 || color&0xFF000000 == 0 {
		return
	}
	b.push(Command{Kind: CommandCurve, Points: [4]Vec2{p0, p1, p2, p3}, Thickness: thickness, Color: color})
}

// StrokeRect records a rectangle outline.
func (b *CommandBuffer) StrokeRect(r Rect, rounding, thickness float32, color uint32) {
	if thickness <= 0 || color&0xFF000000 == 0 || b.culled(r) {
		return
	}
	b.push(Command{Kind: CommandRect, Rect: r, Rounding: rounding, Thickness: thickness, Color: color})
}

// FillRect records a filled rectangle.
func (b *CommandBuffer) FillRect(r Rect, rounding float32, color uint32) {
	if color&0xFF000000 == 0 || b.culled(r) {
		return
	}
	b.push(Command{Kind: CommandRectFilled, Rect: r, Rounding: rounding, Color: color})
}

// StrokeCircle records a circle outline inscribed in r.
func (b *CommandBuffer) StrokeCircle(r Rect, thickness float32, color uint32) {
	if r.W == 0 || r.H == 0 || thickness <= 0 || color&0xFF000000 == 0 || b.culled(r) {
		return
	}
	b.push(Command{Kind: CommandCircle, Rect: r, Thickness: thickness, Color: color})
}

// FillCircle records a filled circle inscribed in r.
func (b *CommandBuffer) FillCircle(r Rect, color uint32) {
	if r.W == 0 || r.H == 0 || color&0xFF000000 == 0 || b.culled(r) {
		return
	}
	b.push(Command{Kind: CommandCircleFilled, Rect: r, Color: color})
}

// FillTriangle records a filled triangle.
func (b *CommandBuffer) FillTriangle(p0, p1, p2 Vec2, color uint32) {
	if color&0xFF000000 == 0 {
		return
	}
	if !b.clip.Contains(p0) && !b.clip.Contains(p1) && !b.clip.Contains(p2) {
		return
	}
	b.push(Command{Kind: CommandTriangleFilled, Points: [4]Vec2{p0, p1, p2}, Color: color})
}

// DrawText records a single line of text inside r.
func (b *CommandBuffer) DrawText(r Rect, text string, font UserFont, bg, fg uint32) {
	if len(text) == 0 || font == nil || fg&0xFF000000 == 0 || b.culled(r) {
		return
	}
	b.push(Command{Kind: CommandText, Rect: r, Text: text, Font: font, Background: bg, Color: fg})
}
