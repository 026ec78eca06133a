// Package opengl provides an OpenGL 3.3 backend for the GUI package:
// a GLFW window that queues gui events, a Device and Encoder that defer GL
// work to Flush, and a Drawer that uploads converted geometry.
package opengl

import (
	"log/slog"
	"os"

	gui "github.com/go-theft-auto/gui-demo"
)

// glLogLevel controls the backend log level. Default is LevelInfo.
var glLogLevel = new(slog.LevelVar)

// SetVerbose enables or disables debug logging for the backend.
func SetVerbose(v bool) {
	if v {
		glLogLevel.Set(slog.LevelDebug)
	} else {
		glLogLevel.Set(slog.LevelInfo)
	}
}

var glLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: glLogLevel})).With("component", "opengl")

// Backend bundles the device, a frame encoder and the drawer into the
// renderer used by the frame loop.
type Backend struct {
	Device  *Device
	Encoder *Encoder
	Drawer  *Drawer
}

// NewBackend creates the drawer for dev with the shader dialect matching
// the device's context.
func NewBackend(dev *Device, maxTextures int, budgets gui.Budgets) (*Backend, error) {
	drawer, err := NewDrawer(dev, maxTextures, budgets, dev.ShaderBackend())
	if err != nil {
		return nil, err
	}
	return &Backend{
		Device:  dev,
		Encoder: dev.NewEncoder(),
		Drawer:  drawer,
	}, nil
}

// Clear records a clear of the frame with color.
func (b *Backend) Clear(color [4]float32) {
	b.Encoder.Clear(color)
}

// Draw converts and records the UI of ctx.
func (b *Backend) Draw(ctx *gui.Context, cfg *gui.ConvertConfig, width, height int, scale gui.Vec2) error {
	return b.Drawer.Draw(ctx, cfg, b.Encoder, width, height, scale)
}

// Flush submits the recorded operations.
func (b *Backend) Flush() error {
	return b.Encoder.Flush(b.Device)
}

// Cleanup releases the transient resources of the previous frame.
func (b *Backend) Cleanup() {
	b.Device.Cleanup()
}

// Delete frees all GL objects owned by the backend.
func (b *Backend) Delete() {
	b.Drawer.Delete()
	b.Device.Cleanup()
}
