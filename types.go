package gui

import "math"

// Vec2 represents a 2D vector for positions and sizes.
type Vec2 struct {
	X, Y float32
}

// Add returns the sum of two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Rect represents a rectangle with position and size.
type Rect struct {
	X, Y float32 // Top-left position
	W, H float32 // Width and height
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Intersects returns true if two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W && r.X+r.W > other.X &&
		r.Y < other.Y+other.H && r.Y+r.H > other.Y
}

// Intersect returns the overlapping part of two rectangles.
// The result has zero size when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	x0 := maxf(r.X, other.X)
	y0 := maxf(r.Y, other.Y)
	x1 := minf(r.X+r.W, other.X+other.W)
	y1 := minf(r.Y+r.H, other.Y+other.H)
	return Rect{X: x0, Y: y0, W: maxf(0, x1-x0), H: maxf(0, y1-y0)}
}

// Pos returns the top-left corner.
func (r Rect) Pos() Vec2 {
	return Vec2{X: r.X, Y: r.Y}
}

// nullRect is the unbounded clip rectangle used outside of panels.
var nullRect = Rect{X: -8192, Y: -8192, W: 16384, H: 16384}

// Handle identifies a texture owned by a rendering backend.
// Zero is never a valid handle.
type Handle uint32

// Valid returns true if the handle refers to a texture.
func (h Handle) Valid() bool {
	return h != 0
}

// Vertex represents a vertex for UI rendering.
// Memory layout matches OpenGL vertex attribute expectations.
type Vertex struct {
	Pos      [2]float32 // Position (x, y)
	TexCoord [2]float32 // Texture coordinates (u, v)
	Color    uint32     // RGBA packed color
}

// VertexSize is the size of one Vertex in bytes.
const VertexSize = 20

// ElementSize is the size of one index in bytes.
const ElementSize = 2

// DrawCmd represents a single draw command.
// Commands are batched by texture and clip rectangle.
type DrawCmd struct {
	ElemCount    uint32     // Number of indices to draw
	ClipRect     [4]float32 // Clip rectangle (x1, y1, x2, y2)
	TextureID    Handle     // Texture to sample
	VertexOffset uint32     // Offset into vertex buffer
	IndexOffset  uint32     // Offset into index buffer
}

// Color constants (RGBA packed as 0xAABBGGRR for OpenGL compatibility)
const (
	ColorWhite uint32 = 0xFFFFFFFF
	ColorRed   uint32 = 0xFF0000FF
	ColorGreen uint32 = 0xFF00FF00
	ColorBlue  uint32 = 0xFFFF0000
)

// RGBA creates a packed color from individual components (0-255).
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// scaleAlpha multiplies the alpha channel of c by s.
func scaleAlpha(c uint32, s float32) uint32 {
	if s >= 1 {
		return c
	}
	a := float32(c>>24) * clampf(s, 0, 1)
	return c&0x00FFFFFF | uint32(a)<<24
}

// clampf clamps a float32 value to a range.
func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// maxf returns the maximum of two float32 values.
func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// minf returns the minimum of two float32 values.
func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func sqrtf(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(x)))
}

func sinf(x float32) float32 { return float32(math.Sin(float64(x))) }
func cosf(x float32) float32 { return float32(math.Cos(float64(x))) }
