package opengl

import (
	"errors"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"

	gui "github.com/go-theft-auto/gui-demo"
)

func TestDefaultWindowConfig(t *testing.T) {
	cfg := DefaultWindowConfig("demo")
	if cfg.Width != 1280 || cfg.Height != 800 {
		t.Errorf("size = %dx%d, want 1280x800", cfg.Width, cfg.Height)
	}
	if !cfg.VSync {
		t.Error("vsync should be requested by default")
	}
	if cfg.DepthBits != 24 || cfg.StencilBits != 8 {
		t.Errorf("depth/stencil = %d/%d, want 24/8", cfg.DepthBits, cfg.StencilBits)
	}
	if len(cfg.Requests) != 2 {
		t.Fatalf("requests = %v", cfg.Requests)
	}
	if cfg.Requests[0] != (ContextRequest{Major: 3, Minor: 3}) {
		t.Errorf("first request = %v, want GL 3.3", cfg.Requests[0])
	}
	if cfg.Requests[1] != (ContextRequest{Major: 3, Minor: 2}) {
		t.Errorf("fallback request = %v, want GL 3.2", cfg.Requests[1])
	}
	if cfg.SRGB {
		t.Error("sRGB framebuffer should be off by default")
	}
}

func TestShaderBackendSelection(t *testing.T) {
	tests := []struct {
		req  ContextRequest
		want ShaderBackend
	}{
		{ContextRequest{Major: 3, Minor: 3}, GLSL330},
		{ContextRequest{Major: 4, Minor: 1}, GLSL330},
		{ContextRequest{Major: 3, Minor: 2}, GLSL150},
	}
	for _, tt := range tests {
		d := &Device{request: tt.req}
		if got := d.ShaderBackend(); got != tt.want {
			t.Errorf("%v: backend = %v, want %v", tt.req, got, tt.want)
		}
	}
}

func TestDeviceCleanupRunsPending(t *testing.T) {
	d := &Device{}
	ran := 0
	d.release(func() { ran++ })
	d.release(func() { ran++ })

	d.Cleanup()
	if ran != 2 {
		t.Errorf("ran %d releases, want 2", ran)
	}
	d.Cleanup()
	if ran != 2 {
		t.Error("releases should run once")
	}
}

func TestRemoveTextureQueuesRelease(t *testing.T) {
	d := &Drawer{dev: &Device{}, textures: []uint32{5, 6}, maxTextures: 2}

	d.RemoveTexture(1)
	if _, ok := d.texture(1); ok {
		t.Error("removed handle should no longer resolve")
	}
	if tex, ok := d.texture(2); !ok || tex != 6 {
		t.Errorf("handle 2 = %d, %v; want 6", tex, ok)
	}
	if len(d.dev.pending) != 1 {
		t.Fatalf("pending releases = %d, want 1", len(d.dev.pending))
	}

	// Removing twice or an unknown handle queues nothing.
	d.RemoveTexture(1)
	d.RemoveTexture(0)
	d.RemoveTexture(9)
	if len(d.dev.pending) != 1 {
		t.Errorf("pending releases = %d after bad removals, want 1", len(d.dev.pending))
	}
	if len(d.textures) != 2 {
		t.Error("handle slots should not be reused")
	}
}

func TestEncoderRecords(t *testing.T) {
	enc := (&Device{}).NewEncoder()
	enc.Clear([4]float32{0, 0, 0, 1})
	enc.record(func() {})
	if enc.Len() != 2 {
		t.Errorf("Len() = %d, want 2", enc.Len())
	}
	if err := enc.Flush(nil); err == nil {
		t.Error("Flush without a device should fail")
	}
}

func TestClosedWindow(t *testing.T) {
	w := &Window{gone: true}

	if _, _, err := w.FramebufferSize(); !errors.Is(err, ErrWindowGone) {
		t.Errorf("FramebufferSize err = %v, want ErrWindowGone", err)
	}
	if err := w.SwapBuffers(); !errors.Is(err, ErrWindowGone) {
		t.Errorf("SwapBuffers err = %v, want ErrWindowGone", err)
	}
	if ev := w.PollEvents(); ev != nil {
		t.Errorf("PollEvents = %v, want nil", ev)
	}
	if s := w.Scale(); s != 1 {
		t.Errorf("Scale = %v, want 1", s)
	}
	w.Destroy()
}

func TestKeyMapping(t *testing.T) {
	tests := map[glfw.Key]gui.Key{
		glfw.KeyEnter:        gui.KeyEnter,
		glfw.KeyLeftShift:    gui.KeyShift,
		glfw.KeyRightShift:   gui.KeyShift,
		glfw.KeyRightControl: gui.KeyCtrl,
		glfw.KeyA:            gui.KeyNone,
	}
	for k, want := range tests {
		if got := glfwKeyToGUIKey(k); got != want {
			t.Errorf("key %d = %v, want %v", k, got, want)
		}
	}
	if got := glfwMouseButtonToGUI(glfw.MouseButtonRight); got != gui.MouseButtonRight {
		t.Errorf("right button = %v", got)
	}
}

func TestWindowQueuesEvents(t *testing.T) {
	w := &Window{}
	w.push(gui.EventMouseMove{X: 1, Y: 2})
	w.push(gui.EventClose{})
	if len(w.events) != 2 {
		t.Fatalf("queued %d events, want 2", len(w.events))
	}
	if _, ok := w.events[1].(gui.EventClose); !ok {
		t.Errorf("second event = %T, want EventClose", w.events[1])
	}
}
