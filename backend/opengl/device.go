package opengl

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Device owns the GL state of the current context.
type Device struct {
	request     ContextRequest
	version     string
	depthBits   int
	stencilBits int
	srgb        bool

	// GL objects released at the next Cleanup.
	pending []func()
}

func newDevice(req ContextRequest, cfg WindowConfig) *Device {
	return &Device{
		request:     req,
		version:     gl.GoStr(gl.GetString(gl.VERSION)),
		depthBits:   cfg.DepthBits,
		stencilBits: cfg.StencilBits,
		srgb:        cfg.SRGB,
	}
}

// Version returns the GL version string reported by the driver.
func (d *Device) Version() string { return d.version }

// Request returns the context request the device was created for.
func (d *Device) Request() ContextRequest { return d.request }

// DepthStencil returns the depth and stencil bits of the default framebuffer.
func (d *Device) DepthStencil() (depth, stencil int) { return d.depthBits, d.stencilBits }

// SRGB returns true if an sRGB-capable color target was requested.
func (d *Device) SRGB() bool { return d.srgb }

// ShaderBackend picks the shader dialect matching the context.
func (d *Device) ShaderBackend() ShaderBackend {
	if d.request.Major > 3 || d.request.Major == 3 && d.request.Minor >= 3 {
		return GLSL330
	}
	return GLSL150
}

// release queues fn to run at the next Cleanup.
func (d *Device) release(fn func()) {
	d.pending = append(d.pending, fn)
}

// Cleanup releases transient resources queued during the previous frame.
func (d *Device) Cleanup() {
	for _, fn := range d.pending {
		fn()
	}
	clear(d.pending)
	d.pending = d.pending[:0]
}

// ReadPixels reads the back buffer into an image, top row first.
func (d *Device) ReadPixels(width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrZeroSize
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gl.ReadBuffer(gl.BACK)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	if code := gl.GetError(); code != gl.NO_ERROR {
		return nil, fmt.Errorf("opengl: read pixels: error 0x%x", code)
	}

	// GL rows start at the bottom.
	stride := img.Stride
	row := make([]byte, stride)
	for y := 0; y < height/2; y++ {
		top := img.Pix[y*stride : (y+1)*stride]
		bottom := img.Pix[(height-1-y)*stride : (height-y)*stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
	return img, nil
}

// NewEncoder creates an empty command encoder.
func (d *Device) NewEncoder() *Encoder {
	return &Encoder{}
}

// Encoder records clear and draw operations for one frame.
// Nothing touches GL until Flush.
type Encoder struct {
	ops []func()
}

// Len returns the number of recorded operations.
func (e *Encoder) Len() int { return len(e.ops) }

// Clear records a clear of the color, depth and stencil buffers.
func (e *Encoder) Clear(color [4]float32) {
	e.ops = append(e.ops, func() {
		gl.ClearColor(color[0], color[1], color[2], color[3])
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
	})
}

func (e *Encoder) record(op func()) {
	e.ops = append(e.ops, op)
}

// Flush replays the recorded operations on dev and empties the encoder.
func (e *Encoder) Flush(dev *Device) error {
	if dev == nil {
		return fmt.Errorf("opengl: flush without device")
	}
	for _, op := range e.ops {
		op()
	}
	n := len(e.ops)
	clear(e.ops)
	e.ops = e.ops[:0]
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("opengl: flush of %d ops: error 0x%x", n, code)
	}
	return nil
}
