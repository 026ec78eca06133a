package opengl

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	gui "github.com/go-theft-auto/gui-demo"
)

// ContextRequest is one core-profile GL version to try when creating the
// window.
type ContextRequest struct {
	Major, Minor int
}

func (r ContextRequest) String() string {
	return fmt.Sprintf("GL %d.%d core", r.Major, r.Minor)
}

// DefaultContextRequests asks for GL 3.3 core, then GL 3.2 core.
func DefaultContextRequests() []ContextRequest {
	return []ContextRequest{
		{Major: 3, Minor: 3},
		{Major: 3, Minor: 2},
	}
}

// WindowConfig describes the window and its GL context.
type WindowConfig struct {
	Title         string
	Width, Height int
	Requests      []ContextRequest // Tried in order, first success wins
	VSync         bool
	SRGB          bool
	DepthBits     int
	StencilBits   int
}

// DefaultWindowConfig returns a vsynced 1280x800 window with the default
// context requests, a linear (non-sRGB) color buffer and a 24/8
// depth-stencil buffer.
func DefaultWindowConfig(title string) WindowConfig {
	return WindowConfig{
		Title:       title,
		Width:       1280,
		Height:      800,
		Requests:    DefaultContextRequests(),
		VSync:       true,
		SRGB:        false,
		DepthBits:   24,
		StencilBits: 8,
	}
}

// Window is a GLFW window whose callbacks queue gui events.
type Window struct {
	w       *glfw.Window
	events  []gui.Event
	request ContextRequest
	gone    bool
}

// CreateBase creates the window and makes its GL context current. Each
// request in cfg.Requests is tried in order. Must be called on the main
// thread (see runtime.LockOSThread).
func CreateBase(cfg WindowConfig) (*Window, *Device, error) {
	if len(cfg.Requests) == 0 {
		cfg.Requests = DefaultContextRequests()
	}
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("%w: glfw init: %w", ErrNoContext, err)
	}

	var errs []error
	for _, req := range cfg.Requests {
		win, err := createWindow(cfg, req)
		if err != nil {
			glLogger.Debug("context request failed", "request", req, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", req, err))
			continue
		}

		w := &Window{w: win, request: req}
		w.installCallbacks()
		dev := newDevice(req, cfg)
		glLogger.Info("context created", "request", req, "version", dev.Version())
		return w, dev, nil
	}

	glfw.Terminate()
	return nil, nil, fmt.Errorf("%w: %w", ErrNoContext, errors.Join(errs...))
}

func createWindow(cfg WindowConfig, req ContextRequest) (*glfw.Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, req.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, req.Minor)
	glfw.WindowHint(glfw.DepthBits, cfg.DepthBits)
	glfw.WindowHint(glfw.StencilBits, cfg.StencilBits)
	if cfg.SRGB {
		glfw.WindowHint(glfw.SRGBCapable, glfw.True)
	} else {
		glfw.WindowHint(glfw.SRGBCapable, glfw.False)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("load GL functions: %w", err)
	}
	return win, nil
}

func (w *Window) installCallbacks() {
	w.w.SetCloseCallback(func(*glfw.Window) {
		w.push(gui.EventClose{})
	})
	w.w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.push(gui.EventResize{Width: width, Height: height})
	})
	w.w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.push(gui.EventMouseMove{X: float32(x), Y: float32(y)})
	})
	w.w.SetMouseButtonCallback(func(win *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b := glfwMouseButtonToGUI(button)
		if b < 0 || action == glfw.Repeat {
			return
		}
		x, y := win.GetCursorPos()
		w.push(gui.EventMouseButton{Button: b, X: float32(x), Y: float32(y), Down: action == glfw.Press})
	})
	w.w.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		w.push(gui.EventScroll{X: float32(xoff), Y: float32(yoff)})
	})
	w.w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		k := glfwKeyToGUIKey(key)
		if k == gui.KeyNone {
			return
		}
		w.push(gui.EventKey{Key: k, Down: action != glfw.Release})
	})
	w.w.SetCharCallback(func(_ *glfw.Window, char rune) {
		w.push(gui.EventChar{Char: char})
	})
}

func (w *Window) push(e gui.Event) {
	w.events = append(w.events, e)
}

// PollEvents processes pending window events without blocking and returns
// the events queued since the last call.
func (w *Window) PollEvents() []gui.Event {
	if w.gone {
		return nil
	}
	glfw.PollEvents()
	events := w.events
	w.events = nil
	return events
}

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (int, int, error) {
	if w.gone {
		return 0, 0, ErrWindowGone
	}
	width, height := w.w.GetFramebufferSize()
	if width <= 0 || height <= 0 {
		return width, height, ErrZeroSize
	}
	return width, height, nil
}

// Scale returns framebuffer pixels per window coordinate.
func (w *Window) Scale() float32 {
	if w.gone {
		return 1
	}
	fw, _ := w.w.GetFramebufferSize()
	ww, _ := w.w.GetSize()
	if fw <= 0 || ww <= 0 {
		return 1
	}
	return float32(fw) / float32(ww)
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() error {
	if w.gone {
		return ErrWindowGone
	}
	w.w.SwapBuffers()
	return nil
}

// Request returns the context request that succeeded.
func (w *Window) Request() ContextRequest {
	return w.request
}

// Hide hides the window. Used for offscreen rendering.
func (w *Window) Hide() {
	if !w.gone {
		w.w.Hide()
	}
}

// Destroy closes the window and terminates GLFW.
func (w *Window) Destroy() {
	if w.gone {
		return
	}
	w.w.Destroy()
	glfw.Terminate()
	w.gone = true
}

// glfwKeyToGUIKey maps GLFW keys to GUI keys.
func glfwKeyToGUIKey(key glfw.Key) gui.Key {
	switch key {
	case glfw.KeyTab:
		return gui.KeyTab
	case glfw.KeyLeft:
		return gui.KeyLeft
	case glfw.KeyRight:
		return gui.KeyRight
	case glfw.KeyUp:
		return gui.KeyUp
	case glfw.KeyDown:
		return gui.KeyDown
	case glfw.KeyHome:
		return gui.KeyHome
	case glfw.KeyEnd:
		return gui.KeyEnd
	case glfw.KeyDelete:
		return gui.KeyDelete
	case glfw.KeyBackspace:
		return gui.KeyBackspace
	case glfw.KeyEnter:
		return gui.KeyEnter
	case glfw.KeyEscape:
		return gui.KeyEscape
	case glfw.KeyLeftShift, glfw.KeyRightShift:
		return gui.KeyShift
	case glfw.KeyLeftControl, glfw.KeyRightControl:
		return gui.KeyCtrl
	default:
		return gui.KeyNone
	}
}

// glfwMouseButtonToGUI maps GLFW mouse buttons to GUI mouse buttons.
func glfwMouseButtonToGUI(button glfw.MouseButton) gui.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return gui.MouseButtonLeft
	case glfw.MouseButtonRight:
		return gui.MouseButtonRight
	case glfw.MouseButtonMiddle:
		return gui.MouseButtonMiddle
	default:
		return -1
	}
}
