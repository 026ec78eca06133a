package app_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	gui "github.com/go-theft-auto/gui-demo"
	"github.com/go-theft-auto/gui-demo/app"
)

// mockFont measures every rune as 7px wide.
type mockFont struct{}

func (mockFont) Height() float32                { return 14 }
func (mockFont) Width(s string) float32         { return 7 * float32(utf8.RuneCountInString(s)) }
func (mockFont) Glyph(r rune) (gui.Glyph, bool) { return gui.Glyph{Codepoint: r, Advance: 7}, true }
func (mockFont) Texture() gui.Handle            { return 2 }

// mockPlatform replays events per frame and records presents.
type mockPlatform struct {
	calls   *[]string
	events  map[int][]gui.Event
	frame   int
	width   int
	height  int
	sizeErr error
	swapErr error
}

func (p *mockPlatform) PollEvents() []gui.Event {
	*p.calls = append(*p.calls, "poll")
	return p.events[p.frame]
}

func (p *mockPlatform) FramebufferSize() (int, int, error) {
	if p.sizeErr != nil {
		return 0, 0, p.sizeErr
	}
	return p.width, p.height, nil
}

func (p *mockPlatform) Scale() float32 { return 1 }

func (p *mockPlatform) SwapBuffers() error {
	*p.calls = append(*p.calls, "swap")
	p.frame++
	return p.swapErr
}

// mockRenderer records calls and what it was asked to draw.
type mockRenderer struct {
	calls    *[]string
	commands []int
	sizes    [][2]int
	drawErr  error
}

func (r *mockRenderer) Clear(color [4]float32) {
	*r.calls = append(*r.calls, "clear")
}

func (r *mockRenderer) Draw(ctx *gui.Context, cfg *gui.ConvertConfig, width, height int, scale gui.Vec2) error {
	*r.calls = append(*r.calls, "draw")
	r.commands = append(r.commands, ctx.CommandCount())
	r.sizes = append(r.sizes, [2]int{width, height})
	return r.drawErr
}

func (r *mockRenderer) Flush() error {
	*r.calls = append(*r.calls, "flush")
	return nil
}

func (r *mockRenderer) Cleanup() {
	*r.calls = append(*r.calls, "cleanup")
}

type harness struct {
	calls    []string
	platform *mockPlatform
	renderer *mockRenderer
	sleeps   []time.Duration
	app      *app.App
}

func newHarness(events map[int][]gui.Event, opts ...app.Option) *harness {
	h := &harness{}
	h.platform = &mockPlatform{calls: &h.calls, events: events, width: 1280, height: 800}
	h.renderer = &mockRenderer{calls: &h.calls}
	ctx := gui.NewContext(mockFont{})
	null := gui.DrawNullTexture{Texture: 1}
	base := []app.Option{
		app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		app.WithSleeper(func(d time.Duration) {
			h.calls = append(h.calls, "sleep")
			h.sleeps = append(h.sleeps, d)
		}),
	}
	h.app = app.New(h.platform, h.renderer, ctx, gui.DefaultConvertConfig(null), append(base, opts...)...)
	return h
}

func TestStepPhaseOrder(t *testing.T) {
	h := newHarness(nil)

	more, err := h.app.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !more {
		t.Fatal("Step returned false without a close event")
	}

	want := []string{"poll", "clear", "draw", "flush", "swap", "cleanup", "sleep"}
	if len(h.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", h.calls, want)
	}
	for i := range want {
		if h.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", h.calls, want)
		}
	}
	if h.app.Phase() != app.PhaseClear {
		t.Errorf("phase = %v, want clear", h.app.Phase())
	}
}

func TestStepClearsCommandsAfterRender(t *testing.T) {
	h := newHarness(nil)

	if _, err := h.app.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(h.renderer.commands) != 1 || h.renderer.commands[0] == 0 {
		t.Fatalf("renderer saw %v commands, want the demo panel", h.renderer.commands)
	}
	if n := h.app.Context().CommandCount(); n != 0 {
		t.Errorf("commands after the frame = %d, want 0", n)
	}
	if h.app.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", h.app.Frames())
	}
}

func TestFrameDelay(t *testing.T) {
	h := newHarness(nil)
	for i := 0; i < 3; i++ {
		if _, err := h.app.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	if len(h.sleeps) != 3 {
		t.Fatalf("slept %d times, want 3", len(h.sleeps))
	}
	for i, d := range h.sleeps {
		if d < 20*time.Millisecond {
			t.Errorf("sleep %d = %v, want at least 20ms", i, d)
		}
	}
}

func TestCloseSkipsRenderAndPresent(t *testing.T) {
	h := newHarness(map[int][]gui.Event{
		0: {gui.EventMouseMove{X: 5, Y: 5}, gui.EventClose{}},
	})

	more, err := h.app.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if more {
		t.Error("Step should return false after a close event")
	}
	if len(h.calls) != 1 || h.calls[0] != "poll" {
		t.Errorf("calls = %v, want only poll", h.calls)
	}
	if !h.app.Closed() || h.app.Phase() != app.PhaseClosed {
		t.Errorf("closed=%v phase=%v", h.app.Closed(), h.app.Phase())
	}

	// Stepping a closed loop does nothing.
	h.calls = nil
	if more, _ := h.app.Step(); more || len(h.calls) != 0 {
		t.Errorf("closed loop stepped again: more=%v calls=%v", more, h.calls)
	}
}

func TestRunStopsOnClose(t *testing.T) {
	h := newHarness(map[int][]gui.Event{3: {gui.EventClose{}}})

	if err := h.app.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.app.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", h.app.Frames())
	}
	if len(h.renderer.commands) != 3 {
		t.Errorf("rendered %d frames, want 3", len(h.renderer.commands))
	}
}

func TestFramebufferSizeFallback(t *testing.T) {
	h := newHarness(nil, app.WithInitialSize(640, 480))
	h.platform.sizeErr = errors.New("window gone")

	for i := 0; i < 2; i++ {
		if _, err := h.app.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	for i, s := range h.renderer.sizes {
		if s != [2]int{640, 480} {
			t.Errorf("frame %d drew at %v, want last known 640x480", i, s)
		}
	}

	h.platform.sizeErr = nil
	if _, err := h.app.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := h.renderer.sizes[len(h.renderer.sizes)-1]; got != [2]int{1280, 800} {
		t.Errorf("size after recovery = %v, want 1280x800", got)
	}
}

func TestUnknownSizeSkipsDraw(t *testing.T) {
	h := newHarness(nil)
	h.platform.sizeErr = errors.New("minimized")

	if _, err := h.app.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(h.renderer.sizes) != 0 {
		t.Errorf("drew %d times without a known size", len(h.renderer.sizes))
	}
	if h.app.Context().CommandCount() != 0 {
		t.Error("commands should still be cleared")
	}
}

func TestResizeEventUpdatesSize(t *testing.T) {
	h := newHarness(map[int][]gui.Event{0: {gui.EventResize{Width: 300, Height: 200}}})
	h.platform.sizeErr = errors.New("unavailable")

	if _, err := h.app.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(h.renderer.sizes) != 1 || h.renderer.sizes[0] != [2]int{300, 200} {
		t.Errorf("sizes = %v, want [300 200]", h.renderer.sizes)
	}
}

func TestDrawErrorDoesNotStopLoop(t *testing.T) {
	h := newHarness(nil)
	h.renderer.drawErr = gui.ErrVertexBufferFull

	more, err := h.app.Step()
	if err != nil || !more {
		t.Fatalf("Step = %v, %v; want true, nil", more, err)
	}
	if h.app.Context().CommandCount() != 0 {
		t.Error("commands should be cleared after a partial draw")
	}
}

func TestPresentErrorStopsLoop(t *testing.T) {
	h := newHarness(nil)
	boom := errors.New("swap failed")
	h.platform.swapErr = boom

	_, err := h.app.Step()
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	for _, c := range h.calls {
		if c == "cleanup" || c == "sleep" {
			t.Errorf("%s ran after a failed present", c)
		}
	}
	if n := h.app.Context().CommandCount(); n != 0 {
		t.Errorf("commands left after failed present: %d", n)
	}

	// A caller that keeps stepping gets a fresh frame, not the old commands
	// plus new ones.
	h.platform.swapErr = nil
	if _, err := h.app.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	got := h.renderer.commands
	if len(got) != 2 || got[0] != got[1] {
		t.Errorf("per-frame command counts = %v, want two equal counts", got)
	}
}

func TestDebugLoggerShowsEventsNotPhases(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := newHarness(map[int][]gui.Event{0: {gui.EventMouseMove{X: 3, Y: 4}}}, app.WithLogger(logger))

	if _, err := h.app.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "msg=event") || !strings.Contains(out, "mouse move") {
		t.Errorf("debug log has no event line:\n%s", out)
	}
	if strings.Contains(out, "msg=phase") {
		t.Errorf("phase transitions should stay below debug:\n%s", out)
	}
}

func TestMovedPanelSurvivesFrames(t *testing.T) {
	hx, hy := app.DemoBounds.X+30, app.DemoBounds.Y+5
	h := newHarness(map[int][]gui.Event{
		0: {gui.EventMouseButton{Button: gui.MouseButtonLeft, X: hx, Y: hy, Down: true}},
		1: {gui.EventMouseMove{X: hx + 40, Y: hy + 10}},
		2: {gui.EventMouseButton{Button: gui.MouseButtonLeft, X: hx + 40, Y: hy + 10, Down: false}},
	})
	for i := 0; i < 4; i++ {
		if _, err := h.app.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	b, ok := h.app.Context().PanelBounds(app.DemoTitle)
	if !ok {
		t.Fatal("demo panel missing")
	}
	if b.X != app.DemoBounds.X+40 || b.Y != app.DemoBounds.Y+10 {
		t.Errorf("panel at (%v, %v), want moved by (40, 10)", b.X, b.Y)
	}
}

func TestCustomBuild(t *testing.T) {
	built := 0
	h := newHarness(nil, app.WithBuild(func(ctx *gui.Context) { built++ }))
	if _, err := h.app.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if built != 1 {
		t.Errorf("build ran %d times, want 1", built)
	}
	if h.renderer.commands[0] != 0 {
		t.Errorf("empty build recorded %d commands", h.renderer.commands[0])
	}
}

func TestPhaseString(t *testing.T) {
	if app.PhasePresent.String() != "present" {
		t.Errorf("PhasePresent = %q", app.PhasePresent.String())
	}
	if app.Phase(42).String() != "Phase(42)" {
		t.Errorf("unknown phase = %q", app.Phase(42).String())
	}
}
