package opengl

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	gui "github.com/go-theft-auto/gui-demo"
)

// ShaderBackend selects the shader dialect compiled by NewDrawer.
type ShaderBackend uint8

const (
	GLSL150 ShaderBackend = iota
	GLSL330
)

func (s ShaderBackend) String() string {
	switch s {
	case GLSL150:
		return "glsl150"
	case GLSL330:
		return "glsl330"
	default:
		return fmt.Sprintf("ShaderBackend(%d)", uint8(s))
	}
}

const vertexShader150 = `
#version 150
uniform mat4 ProjMtx;
in vec2 Position;
in vec2 TexCoord;
in vec4 Color;
out vec2 Frag_UV;
out vec4 Frag_Color;

void main() {
    Frag_UV = TexCoord;
    Frag_Color = Color;
    gl_Position = ProjMtx * vec4(Position.xy, 0.0, 1.0);
}
` + "\x00"

const fragmentShader150 = `
#version 150
uniform sampler2D Texture;
in vec2 Frag_UV;
in vec4 Frag_Color;
out vec4 Out_Color;

void main() {
    Out_Color = Frag_Color * texture(Texture, Frag_UV.st);
}
` + "\x00"

const vertexShader330 = `
#version 330 core
uniform mat4 ProjMtx;
layout (location = 0) in vec2 Position;
layout (location = 1) in vec2 TexCoord;
layout (location = 2) in vec4 Color;
out vec2 Frag_UV;
out vec4 Frag_Color;

void main() {
    Frag_UV = TexCoord;
    Frag_Color = Color;
    gl_Position = ProjMtx * vec4(Position.xy, 0.0, 1.0);
}
` + "\x00"

const fragmentShader330 = `
#version 330 core
uniform sampler2D Texture;
in vec2 Frag_UV;
in vec4 Frag_Color;
layout (location = 0) out vec4 Out_Color;

void main() {
    Out_Color = Frag_Color * texture(Texture, Frag_UV.st);
}
` + "\x00"

// Drawer uploads converted UI geometry and issues the draw calls.
// Its GL buffers are allocated once at the budget sizes.
type Drawer struct {
	dev     *Device
	backend ShaderBackend

	program  uint32
	projLoc  int32
	texLoc   int32
	vao      uint32
	vbo, ebo uint32

	textures    []uint32 // Handle h maps to textures[h-1]
	maxTextures int

	list    *gui.DrawList
	budgets gui.Budgets
}

// NewDrawer compiles the shader program and allocates the vertex and
// element buffers at the sizes given by budgets.
func NewDrawer(dev *Device, maxTextures int, budgets gui.Budgets, backend ShaderBackend) (*Drawer, error) {
	if maxTextures <= 0 {
		return nil, fmt.Errorf("opengl: max textures must be positive, got %d", maxTextures)
	}
	d := &Drawer{
		dev:         dev,
		backend:     backend,
		maxTextures: maxTextures,
		textures:    make([]uint32, 0, maxTextures),
		list:        gui.NewDrawList(budgets.VertexMemory, budgets.ElementMemory),
		budgets:     budgets,
	}

	vs, fs := vertexShader150, fragmentShader150
	if backend == GLSL330 {
		vs, fs = vertexShader330, fragmentShader330
	}
	var err error
	d.program, err = createShaderProgram(vs, fs, backend == GLSL150)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader: %w", err)
	}
	d.projLoc = gl.GetUniformLocation(d.program, gl.Str("ProjMtx\x00"))
	d.texLoc = gl.GetUniformLocation(d.program, gl.Str("Texture\x00"))

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, budgets.VertexMemory, nil, gl.STREAM_DRAW)

	gl.GenBuffers(1, &d.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, budgets.ElementMemory, nil, gl.STREAM_DRAW)

	// Vertex layout: Pos (2 floats) + TexCoord (2 floats) + Color (1 uint32)
	stride := int32(unsafe.Sizeof(gui.Vertex{}))
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, unsafe.Offsetof(gui.Vertex{}.TexCoord))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.UNSIGNED_BYTE, true, stride, unsafe.Offsetof(gui.Vertex{}.Color))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	glLogger.Debug("drawer created", "shader", backend, "vertex_memory", budgets.VertexMemory, "element_memory", budgets.ElementMemory)
	return d, nil
}

// DrawList returns the list filled by the last Draw.
func (d *Drawer) DrawList() *gui.DrawList {
	return d.list
}

// AddTexture uploads RGBA8 pixels and returns their handle.
func (d *Drawer) AddTexture(rgba []byte, width, height int) (gui.Handle, error) {
	if len(d.textures) >= d.maxTextures {
		return 0, fmt.Errorf("%w: limit %d", ErrTooManyTextures, d.maxTextures)
	}
	if width <= 0 || height <= 0 || len(rgba) < width*height*4 {
		return 0, fmt.Errorf("opengl: texture data %d bytes does not cover %dx%d", len(rgba), width, height)
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	d.textures = append(d.textures, tex)
	return gui.Handle(len(d.textures)), nil
}

// RemoveTexture frees a texture at the next Device.Cleanup. The handle
// slot is not reused.
func (d *Drawer) RemoveTexture(h gui.Handle) {
	tex, ok := d.texture(h)
	if !ok {
		return
	}
	d.textures[h-1] = 0
	d.dev.release(func() { gl.DeleteTextures(1, &tex) })
}

func (d *Drawer) texture(h gui.Handle) (uint32, bool) {
	if !h.Valid() || int(h) > len(d.textures) || d.textures[h-1] == 0 {
		return 0, false
	}
	return d.textures[h-1], true
}

// Draw converts the context's commands and records the draw on enc.
// width and height are the framebuffer size in pixels; scale maps UI
// coordinates to framebuffer pixels.
//
// A conversion that ran out of buffer space still records the geometry
// produced so far and returns the overflow error.
func (d *Drawer) Draw(ctx *gui.Context, cfg *gui.ConvertConfig, enc *Encoder, width, height int, scale gui.Vec2) error {
	err := gui.Convert(ctx, cfg, d.list)
	if err != nil && !errors.Is(err, gui.ErrVertexBufferFull) && !errors.Is(err, gui.ErrElementBufferFull) {
		return err
	}
	enc.record(func() { d.render(width, height, scale) })
	return err
}

func (d *Drawer) render(width, height int, scale gui.Vec2) {
	dl := d.list
	if len(dl.VtxBuffer) == 0 || len(dl.IdxBuffer) == 0 {
		return
	}

	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.ActiveTexture(gl.TEXTURE0)

	gl.UseProgram(d.program)
	gl.Uniform1i(d.texLoc, 0)
	proj := mgl32.Ortho2D(0, float32(width)/scale.X, float32(height)/scale.Y, 0)
	gl.UniformMatrix4fv(d.projLoc, 1, false, &proj[0])

	gl.BindVertexArray(d.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(dl.VtxBuffer)*gui.VertexSize, gl.Ptr(dl.VtxBuffer))
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.ebo)
	gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(dl.IdxBuffer)*gui.ElementSize, gl.Ptr(dl.IdxBuffer))

	for _, cmd := range dl.CmdBuffer {
		if cmd.ElemCount == 0 {
			continue
		}
		tex, ok := d.texture(cmd.TextureID)
		if !ok {
			continue
		}

		// Clip rectangle in framebuffer pixels, Y flipped
		clipX := int32(cmd.ClipRect[0] * scale.X)
		clipY := int32(float32(height) - cmd.ClipRect[3]*scale.Y)
		clipW := int32((cmd.ClipRect[2] - cmd.ClipRect[0]) * scale.X)
		clipH := int32((cmd.ClipRect[3] - cmd.ClipRect[1]) * scale.Y)
		if clipX < 0 {
			clipW += clipX
			clipX = 0
		}
		if clipY < 0 {
			clipH += clipY
			clipY = 0
		}
		if clipW <= 0 || clipH <= 0 {
			continue
		}
		gl.Scissor(clipX, clipY, clipW, clipH)

		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.DrawElementsBaseVertexWithOffset(
			gl.TRIANGLES,
			int32(cmd.ElemCount),
			gl.UNSIGNED_SHORT,
			uintptr(cmd.IndexOffset)*gui.ElementSize,
			int32(cmd.VertexOffset),
		)
	}

	gl.UseProgram(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.SCISSOR_TEST)
}

// Delete releases the drawer's GL objects.
func (d *Drawer) Delete() {
	for i, tex := range d.textures {
		if tex != 0 {
			gl.DeleteTextures(1, &d.textures[i])
		}
	}
	d.textures = d.textures[:0]
	if d.ebo != 0 {
		gl.DeleteBuffers(1, &d.ebo)
	}
	if d.vbo != 0 {
		gl.DeleteBuffers(1, &d.vbo)
	}
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
	}
	if d.program != 0 {
		gl.DeleteProgram(d.program)
	}
}

// createShaderProgram compiles and links a shader program. bindAttribs
// assigns attribute locations for dialects without layout qualifiers.
func createShaderProgram(vertexSource, fragmentSource string, bindAttribs bool) (uint32, error) {
	vertexShader, err := compileShader(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return 0, fmt.Errorf("vertex shader compilation failed: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		return 0, fmt.Errorf("fragment shader compilation failed: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	if bindAttribs {
		gl.BindAttribLocation(program, 0, gl.Str("Position\x00"))
		gl.BindAttribLocation(program, 1, gl.Str("TexCoord\x00"))
		gl.BindAttribLocation(program, 2, gl.Str("Color\x00"))
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("shader program linking failed: %s", string(log))
	}
	return program, nil
}

func compileShader(kind uint32, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s", string(log))
	}
	return shader, nil
}
