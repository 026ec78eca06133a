package gui

import "fmt"

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

// Key represents a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyDelete
	KeyBackspace
	KeyEnter
	KeyEscape
	KeyShift
	KeyCtrl
	KeyCount
)

// Event is a platform input event translated for the UI context.
// Backends produce events; Context.HandleEvent consumes them.
type Event interface {
	event()
}

// EventClose is sent when the user asks to close the window.
type EventClose struct{}

// EventResize reports a new framebuffer size in pixels.
type EventResize struct {
	Width, Height int
}

// EventMouseMove reports the cursor position in window coordinates.
type EventMouseMove struct {
	X, Y float32
}

// EventMouseButton reports a button press or release at a position.
type EventMouseButton struct {
	Button MouseButton
	X, Y   float32
	Down   bool
}

// EventScroll reports a wheel delta.
type EventScroll struct {
	X, Y float32
}

// EventKey reports a key press or release.
type EventKey struct {
	Key  Key
	Down bool
}

// EventChar reports a typed character.
type EventChar struct {
	Char rune
}

func (EventClose) event()       {}
func (EventResize) event()      {}
func (EventMouseMove) event()   {}
func (EventMouseButton) event() {}
func (EventScroll) event()      {}
func (EventKey) event()         {}
func (EventChar) event()        {}

// DescribeEvent formats an event for logging.
func DescribeEvent(e Event) string {
	switch ev := e.(type) {
	case EventClose:
		return "close"
	case EventResize:
		return fmt.Sprintf("resize %dx%d", ev.Width, ev.Height)
	case EventMouseMove:
		return fmt.Sprintf("mouse move %.0f,%.0f", ev.X, ev.Y)
	case EventMouseButton:
		state := "up"
		if ev.Down {
			state = "down"
		}
		return fmt.Sprintf("mouse button %d %s at %.0f,%.0f", ev.Button, state, ev.X, ev.Y)
	case EventScroll:
		return fmt.Sprintf("scroll %.1f,%.1f", ev.X, ev.Y)
	case EventKey:
		state := "up"
		if ev.Down {
			state = "down"
		}
		return fmt.Sprintf("key %s %s", KeyName(ev.Key), state)
	case EventChar:
		return fmt.Sprintf("char %q", ev.Char)
	default:
		return fmt.Sprintf("%T", e)
	}
}

// InputState holds input state for the current frame.
// It is filled between Context.InputBegin and Context.InputEnd.
type InputState struct {
	MousePos   Vec2
	MousePrev  Vec2
	MouseDelta Vec2

	mouseDown       [MouseButtonCount]bool
	mouseClicked    [MouseButtonCount]bool // Pressed or released this frame
	mouseClickedPos [MouseButtonCount]Vec2 // Position of the last press

	ScrollDelta Vec2

	keyDown    [KeyCount]bool
	keyPressed [KeyCount]bool

	Chars []rune
}

// NewInputState creates a new InputState.
func NewInputState() *InputState {
	return &InputState{
		Chars: make([]rune, 0, 16),
	}
}

// reset clears per-frame input state.
func (s *InputState) reset() {
	clear(s.mouseClicked[:])
	clear(s.keyPressed[:])
	s.Chars = s.Chars[:0]
	s.ScrollDelta = Vec2{}
	s.MousePrev = s.MousePos
}

// SetMousePos sets the mouse position.
func (s *InputState) SetMousePos(x, y float32) {
	s.MousePos = Vec2{x, y}
}

// SetMouseButton sets mouse button state at a position.
func (s *InputState) SetMouseButton(button MouseButton, x, y float32, down bool) {
	if button < 0 || button >= MouseButtonCount {
		return
	}
	if s.mouseDown[button] == down {
		return
	}
	s.mouseDown[button] = down
	s.mouseClicked[button] = true
	if down {
		s.mouseClickedPos[button] = Vec2{x, y}
	}
}

// SetKey sets key state.
func (s *InputState) SetKey(key Key, down bool) {
	if key < 0 || key >= KeyCount {
		return
	}
	if down && !s.keyDown[key] {
		s.keyPressed[key] = true
	}
	s.keyDown[key] = down
}

// AddScroll accumulates a wheel delta.
func (s *InputState) AddScroll(x, y float32) {
	s.ScrollDelta = s.ScrollDelta.Add(Vec2{x, y})
}

// AddChar adds a typed character.
func (s *InputState) AddChar(ch rune) {
	s.Chars = append(s.Chars, ch)
}

// MouseDown returns true if a mouse button is currently held.
func (s *InputState) MouseDown(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseDown[button]
}

// MouseClicked returns true if the button changed state this frame.
func (s *InputState) MouseClicked(button MouseButton) bool {
	if button < 0 || button >= MouseButtonCount {
		return false
	}
	return s.mouseClicked[button]
}

// HasClickDownInRect returns true if the button is held and its last press
// happened inside r.
func (s *InputState) HasClickDownInRect(button MouseButton, r Rect) bool {
	if !s.MouseDown(button) {
		return false
	}
	return r.Contains(s.mouseClickedPos[button])
}

// shiftClickedPos moves the recorded press position so that a drag keeps
// hitting a rectangle that moves with the cursor.
func (s *InputState) shiftClickedPos(button MouseButton, d Vec2) {
	if button < 0 || button >= MouseButtonCount {
		return
	}
	s.mouseClickedPos[button] = s.mouseClickedPos[button].Add(d)
}

// MouseHovering returns true if the cursor is inside r.
func (s *InputState) MouseHovering(r Rect) bool {
	return r.Contains(s.MousePos)
}

// KeyDown returns true if a key is currently held.
func (s *InputState) KeyDown(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return s.keyDown[key]
}

// KeyPressed returns true if a key was pressed this frame.
func (s *InputState) KeyPressed(key Key) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return s.keyPressed[key]
}

// KeyName returns a human-readable name for a key.
func KeyName(k Key) string {
	switch k {
	case KeyNone:
		return "--"
	case KeyTab:
		return "Tab"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyDelete:
		return "Del"
	case KeyBackspace:
		return "Backspace"
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Esc"
	case KeyShift:
		return "Shift"
	case KeyCtrl:
		return "Ctrl"
	}
	return "?"
}
