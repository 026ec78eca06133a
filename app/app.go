// Package app runs the frame loop that ties a window, a renderer and a gui
// Context together: input, build, render, present, clear, sleep.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gui "github.com/go-theft-auto/gui-demo"
)

// FrameDelay is the pause after every frame. It bounds the frame rate
// independently of vsync.
const FrameDelay = 20 * time.Millisecond

// LevelTrace is below slog.LevelDebug. Phase transitions are logged at
// this level so a debug logger shows events without per-phase noise.
const LevelTrace = slog.LevelDebug - 4

// DefaultClearColor is the background behind the UI.
var DefaultClearColor = [4]float32{0.1, 0.2, 0.3, 1.0}

// Phase is a step of the frame loop.
type Phase uint8

const (
	PhaseInput Phase = iota
	PhaseBuild
	PhaseRender
	PhasePresent
	PhaseClear
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseBuild:
		return "build"
	case PhaseRender:
		return "render"
	case PhasePresent:
		return "present"
	case PhaseClear:
		return "clear"
	case PhaseClosed:
		return "closed"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// Platform is the window side of the loop.
type Platform interface {
	// PollEvents returns the events received since the last call without blocking.
	PollEvents() []gui.Event
	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (int, int, error)
	// Scale returns framebuffer pixels per UI coordinate.
	Scale() float32
	// SwapBuffers presents the frame.
	SwapBuffers() error
}

// Renderer is the GPU side of the loop.
type Renderer interface {
	Clear(color [4]float32)
	Draw(ctx *gui.Context, cfg *gui.ConvertConfig, width, height int, scale gui.Vec2) error
	Flush() error
	Cleanup()
}

// BuildFunc declares the UI of one frame.
type BuildFunc func(ctx *gui.Context)

// Sleeper pauses the loop between frames.
type Sleeper func(time.Duration)

// App runs the frame loop.
type App struct {
	platform Platform
	renderer Renderer
	ctx      *gui.Context
	convert  gui.ConvertConfig

	build      BuildFunc
	sleep      Sleeper
	log        *slog.Logger
	clearColor [4]float32

	phase         Phase
	closed        bool
	width, height int // Last known framebuffer size
	sizeWarned    bool
	frames        uint64
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger for events and degradations.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithSleeper replaces time.Sleep for the frame delay.
func WithSleeper(s Sleeper) Option {
	return func(a *App) {
		if s != nil {
			a.sleep = s
		}
	}
}

// WithBuild sets the UI declared every frame. The default is DemoPanel.
func WithBuild(b BuildFunc) Option {
	return func(a *App) {
		if b != nil {
			a.build = b
		}
	}
}

// WithClearColor sets the background color.
func WithClearColor(c [4]float32) Option {
	return func(a *App) { a.clearColor = c }
}

// WithInitialSize sets the framebuffer size used until the platform
// reports one.
func WithInitialSize(width, height int) Option {
	return func(a *App) {
		a.width = width
		a.height = height
	}
}

// New creates an App. ctx must not be shared with another loop.
func New(p Platform, r Renderer, ctx *gui.Context, convert gui.ConvertConfig, opts ...Option) *App {
	a := &App{
		platform:   p,
		renderer:   r,
		ctx:        ctx,
		convert:    convert,
		build:      DemoPanel,
		sleep:      time.Sleep,
		log:        slog.Default(),
		clearColor: DefaultClearColor,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With("component", "app")
	return a
}

// Phase returns the phase the loop is in, or the last one it ran.
func (a *App) Phase() Phase { return a.phase }

// Closed returns true once a close event was received.
func (a *App) Closed() bool { return a.closed }

// Frames returns the number of completed frames.
func (a *App) Frames() uint64 { return a.frames }

// Context returns the UI context driven by the loop.
func (a *App) Context() *gui.Context { return a.ctx }

func (a *App) enter(p Phase) {
	a.phase = p
	a.log.Log(context.Background(), LevelTrace, "phase", "phase", p, "frame", a.frames)
}

// Run steps the loop until the window is closed.
func (a *App) Run() error {
	for {
		more, err := a.Step()
		if err != nil {
			return err
		}
		if !more {
			a.log.Info("window closed", "frames", a.frames)
			return nil
		}
	}
}

// Step runs one iteration of the loop. It returns false when a close
// event arrived during input; nothing is rendered in that case. A present
// failure is returned after the frame's commands are cleared.
func (a *App) Step() (bool, error) {
	if a.closed {
		return false, nil
	}

	a.enter(PhaseInput)
	a.input()
	if a.closed {
		a.enter(PhaseClosed)
		return false, nil
	}

	a.enter(PhaseBuild)
	a.build(a.ctx)

	a.enter(PhaseRender)
	a.render()

	a.enter(PhasePresent)
	err := a.present()

	// Commands never outlive their frame, even when present failed.
	a.enter(PhaseClear)
	a.ctx.Clear()
	if err != nil {
		return false, err
	}
	a.frames++
	a.sleep(FrameDelay)
	return true, nil
}

func (a *App) input() {
	a.ctx.InputBegin()
	for _, e := range a.platform.PollEvents() {
		a.log.Debug("event", "event", gui.DescribeEvent(e))
		switch ev := e.(type) {
		case gui.EventClose:
			a.closed = true
		case gui.EventResize:
			if ev.Width > 0 && ev.Height > 0 {
				a.width, a.height = ev.Width, ev.Height
			}
		default:
			a.ctx.HandleEvent(e)
		}
	}
	a.ctx.InputEnd()
}

func (a *App) render() {
	a.renderer.Clear(a.clearColor)

	w, h, err := a.platform.FramebufferSize()
	switch {
	case err == nil:
		a.width, a.height = w, h
		a.sizeWarned = false
	case !a.sizeWarned:
		a.log.Warn("framebuffer size unavailable, using last known size", "err", err, "width", a.width, "height", a.height)
		a.sizeWarned = true
	}
	if a.width <= 0 || a.height <= 0 {
		return
	}

	s := a.platform.Scale()
	if err := a.renderer.Draw(a.ctx, &a.convert, a.width, a.height, gui.Vec2{X: s, Y: s}); err != nil {
		a.log.Warn("ui draw incomplete", "err", err)
	}
}

func (a *App) present() error {
	if err := a.renderer.Flush(); err != nil {
		a.log.Warn("flush failed", "err", err)
	}
	if err := a.platform.SwapBuffers(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	a.renderer.Cleanup()
	return nil
}
