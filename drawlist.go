package gui

// aaSize is the width of the anti-aliasing fringe in pixels.
const aaSize = 1.0

// maxCmdVertices is the most vertices a single DrawCmd can address with uint16 indices.
const maxCmdVertices = 1 << 16

// DrawList accumulates draw commands for a frame.
// It batches primitives by texture and clip rectangle to minimize GPU state
// changes. Vertex and index storage is allocated once from the memory
// budgets passed to NewDrawList and never grows.
type DrawList struct {
	CmdBuffer []DrawCmd // Draw commands
	VtxBuffer []Vertex  // Vertex data
	IdxBuffer []uint16  // Index data

	currentClip  [4]float32 // Current clip rectangle
	textureID    Handle     // Current texture for batching
	cmdOffset    uint32     // Vertex offset for current command
	idxCmdOffset uint32     // Index offset for current command

	path    []Vec2 // Current path for PathFill/PathStroke
	normals []Vec2 // Scratch space for stroke and fill normals
	temp    []Vec2 // Scratch space for stroke fringe points
	config  ConvertConfig
	err     error // Sticky overflow error for the current frame
}

// NewDrawList creates a DrawList whose vertex and index buffers hold at most
// vertexMemory and elementMemory bytes.
func NewDrawList(vertexMemory, elementMemory int) *DrawList {
	return &DrawList{
		VtxBuffer: make([]Vertex, 0, vertexMemory/VertexSize),
		IdxBuffer: make([]uint16, 0, elementMemory/ElementSize),
		CmdBuffer: make([]DrawCmd, 0, 64),
		path:      make([]Vec2, 0, 128),
	}
}

// Clear resets the DrawList for a new frame.
// Retains allocated capacity to avoid reallocations.
func (dl *DrawList) Clear() {
	dl.CmdBuffer = dl.CmdBuffer[:0]
	dl.VtxBuffer = dl.VtxBuffer[:0]
	dl.IdxBuffer = dl.IdxBuffer[:0]
	dl.path = dl.path[:0]
	dl.currentClip = [4]float32{nullRect.X, nullRect.Y, nullRect.X + nullRect.W, nullRect.Y + nullRect.H}
	dl.textureID = 0
	dl.cmdOffset = 0
	dl.idxCmdOffset = 0
	dl.err = nil
}

// Err returns the overflow error raised while filling the list, if any.
func (dl *DrawList) Err() error {
	return dl.err
}

// VertexCapacity returns the maximum number of vertices the list can hold.
func (dl *DrawList) VertexCapacity() int {
	return cap(dl.VtxBuffer)
}

// ElementCapacity returns the maximum number of indices the list can hold.
func (dl *DrawList) ElementCapacity() int {
	return cap(dl.IdxBuffer)
}

// VertexBytes returns the number of vertex bytes used this frame.
func (dl *DrawList) VertexBytes() int {
	return len(dl.VtxBuffer) * VertexSize
}

// ElementBytes returns the number of index bytes used this frame.
func (dl *DrawList) ElementBytes() int {
	return len(dl.IdxBuffer) * ElementSize
}

// SetClipRect replaces the current clip rectangle.
// All subsequent primitives will be clipped to it.
func (dl *DrawList) SetClipRect(r Rect) {
	clip := [4]float32{r.X, r.Y, r.X + r.W, r.Y + r.H}
	if clip == dl.currentClip {
		return
	}
	dl.currentClip = clip
	dl.splitDraw()
}

// SetTexture sets the current texture for subsequent primitives.
func (dl *DrawList) SetTexture(textureID Handle) {
	if dl.textureID == textureID && len(dl.CmdBuffer) > 0 {
		return
	}
	dl.textureID = textureID
	dl.splitDraw()
}

// splitDraw finalizes the current command and starts a new one.
func (dl *DrawList) splitDraw() {
	if len(dl.CmdBuffer) > 0 {
		lastCmd := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
		lastCmd.ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxCmdOffset
		if lastCmd.ElemCount == 0 {
			// Reuse the empty command instead of stacking another one.
			lastCmd.ClipRect = dl.currentClip
			lastCmd.TextureID = dl.textureID
			lastCmd.VertexOffset = uint32(len(dl.VtxBuffer))
			lastCmd.IndexOffset = uint32(len(dl.IdxBuffer))
			dl.cmdOffset = lastCmd.VertexOffset
			dl.idxCmdOffset = lastCmd.IndexOffset
			return
		}
	}

	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{
		ClipRect:     dl.currentClip,
		TextureID:    dl.textureID,
		VertexOffset: uint32(len(dl.VtxBuffer)),
		IndexOffset:  uint32(len(dl.IdxBuffer)),
	})
	dl.cmdOffset = uint32(len(dl.VtxBuffer))
	dl.idxCmdOffset = uint32(len(dl.IdxBuffer))
}

// reserve checks that nv vertices and ni indices fit in the budgets and
// returns the index of the first new vertex relative to the current command.
func (dl *DrawList) reserve(nv, ni int) (uint16, bool) {
	if dl.err != nil {
		return 0, false
	}
	if len(dl.VtxBuffer)+nv > cap(dl.VtxBuffer) {
		dl.err = ErrVertexBufferFull
		return 0, false
	}
	if len(dl.IdxBuffer)+ni > cap(dl.IdxBuffer) {
		dl.err = ErrElementBufferFull
		return 0, false
	}
	if len(dl.CmdBuffer) == 0 || len(dl.VtxBuffer)-int(dl.cmdOffset)+nv > maxCmdVertices {
		dl.splitDraw()
	}
	return uint16(len(dl.VtxBuffer) - int(dl.cmdOffset)), true
}

func (dl *DrawList) vertex(pos Vec2, uv Vec2, color uint32) {
	dl.VtxBuffer = append(dl.VtxBuffer, Vertex{
		Pos:      [2]float32{pos.X, pos.Y},
		TexCoord: [2]float32{uv.X, uv.Y},
		Color:    color,
	})
}

// PrimRectUV adds a textured quad from a to c.
func (dl *DrawList) PrimRectUV(a, c, uva, uvc Vec2, color uint32) {
	idx, ok := dl.reserve(4, 6)
	if !ok {
		return
	}
	dl.IdxBuffer = append(dl.IdxBuffer, idx, idx+1, idx+2, idx, idx+2, idx+3)
	dl.vertex(a, uva, color)
	dl.vertex(Vec2{c.X, a.Y}, Vec2{uvc.X, uva.Y}, color)
	dl.vertex(c, uvc, color)
	dl.vertex(Vec2{a.X, c.Y}, Vec2{uva.X, uvc.Y}, color)
}

// PathClear empties the current path.
func (dl *DrawList) PathClear() {
	dl.path = dl.path[:0]
}

// PathLineTo appends a point to the current path.
func (dl *DrawList) PathLineTo(p Vec2) {
	dl.path = append(dl.path, p)
}

// PathArcTo appends segments+1 points on an arc from aMin to aMax.
func (dl *DrawList) PathArcTo(center Vec2, radius, aMin, aMax float32, segments uint) {
	if radius == 0 || segments == 0 {
		dl.path = append(dl.path, center)
		return
	}
	for i := uint(0); i <= segments; i++ {
		a := aMin + float32(i)/float32(segments)*(aMax-aMin)
		dl.path = append(dl.path, Vec2{center.X + cosf(a)*radius, center.Y + sinf(a)*radius})
	}
}

// PathRectTo appends a rectangle from a to b with rounded corners.
func (dl *DrawList) PathRectTo(a, b Vec2, rounding float32) {
	r := rounding
	r = minf(r, absf(b.X-a.X)*0.5)
	r = minf(r, absf(b.Y-a.Y)*0.5)
	if r <= 0 {
		dl.PathLineTo(a)
		dl.PathLineTo(Vec2{b.X, a.Y})
		dl.PathLineTo(b)
		dl.PathLineTo(Vec2{a.X, b.Y})
		return
	}
	segs := (dl.config.ArcSegmentCount + 3) / 4
	const pi = 3.14159265358979
	dl.PathArcTo(Vec2{a.X + r, a.Y + r}, r, pi, pi*1.5, segs)
	dl.PathArcTo(Vec2{b.X - r, a.Y + r}, r, pi*1.5, pi*2, segs)
	dl.PathArcTo(Vec2{b.X - r, b.Y - r}, r, 0, pi*0.5, segs)
	dl.PathArcTo(Vec2{a.X + r, b.Y - r}, r, pi*0.5, pi, segs)
}

// PathCurveTo appends a cubic bezier from the last path point.
func (dl *DrawList) PathCurveTo(p2, p3, p4 Vec2, segments uint) {
	if len(dl.path) == 0 || segments == 0 {
		return
	}
	p1 := dl.path[len(dl.path)-1]
	step := 1 / float32(segments)
	for i := uint(1); i <= segments; i++ {
		t := step * float32(i)
		u := 1 - t
		w1 := u * u * u
		w2 := 3 * u * u * t
		w3 := 3 * u * t * t
		w4 := t * t * t
		dl.path = append(dl.path, Vec2{
			X: w1*p1.X + w2*p2.X + w3*p3.X + w4*p4.X,
			Y: w1*p1.Y + w2*p2.Y + w3*p3.Y + w4*p4.Y,
		})
	}
}

// PathFill fills the current path as a convex polygon and clears it.
func (dl *DrawList) PathFill(color uint32) {
	dl.FillPolyConvex(dl.path, color, dl.config.ShapeAA)
	dl.PathClear()
}

// PathStroke strokes the current path and clears it.
func (dl *DrawList) PathStroke(color uint32, closed bool, thickness float32) {
	dl.StrokePolyLine(dl.path, color, closed, thickness, dl.config.LineAA)
	dl.PathClear()
}

// computeNormals fills dl.normals with the unit normal of each edge.
func (dl *DrawList) computeNormals(points []Vec2, closed bool) []Vec2 {
	n := len(points)
	if cap(dl.normals) < n {
		dl.normals = make([]Vec2, n)
	}
	normals := dl.normals[:n]
	for i0 := 0; i0 < n; i0++ {
		i1 := i0 + 1
		if i1 == n {
			if !closed {
				normals[i0] = normals[i0-1]
				break
			}
			i1 = 0
		}
		d := points[i1].Sub(points[i0])
		if l := d.X*d.X + d.Y*d.Y; l != 0 {
			inv := 1 / sqrtf(l)
			d = d.Mul(inv)
		}
		normals[i0] = Vec2{d.Y, -d.X}
	}
	return normals
}

// miter averages two edge normals and scales the result so that the
// extruded corner keeps its distance from both edges.
func miter(n0, n1 Vec2) Vec2 {
	dm := n0.Add(n1).Mul(0.5)
	dmr2 := dm.X*dm.X + dm.Y*dm.Y
	if dmr2 > 0.000001 {
		scale := minf(1/dmr2, 100)
		dm = dm.Mul(scale)
	}
	return dm
}

// FillPolyConvex fills a convex polygon, optionally with an anti-aliased fringe.
func (dl *DrawList) FillPolyConvex(points []Vec2, color uint32, aa AntiAliasing) {
	n := len(points)
	if n < 3 || color&0xFF000000 == 0 {
		return
	}
	uv := dl.config.Null.UV

	if aa == AntiAliasingOff {
		idx, ok := dl.reserve(n, (n-2)*3)
		if !ok {
			return
		}
		for i := 2; i < n; i++ {
			dl.IdxBuffer = append(dl.IdxBuffer, idx, idx+uint16(i-1), idx+uint16(i))
		}
		for _, p := range points {
			dl.vertex(p, uv, color)
		}
		return
	}

	transparent := color & 0x00FFFFFF
	idx, ok := dl.reserve(n*2, (n-2)*3+n*6)
	if !ok {
		return
	}
	inner, outer := idx, idx+1
	for i := 2; i < n; i++ {
		dl.IdxBuffer = append(dl.IdxBuffer, inner, inner+uint16((i-1)*2), inner+uint16(i*2))
	}

	normals := dl.computeNormals(points, true)
	for i0, i1 := n-1, 0; i1 < n; i0, i1 = i1, i1+1 {
		dm := miter(normals[i0], normals[i1]).Mul(aaSize * 0.5)
		dl.vertex(points[i1].Sub(dm), uv, color)
		dl.vertex(points[i1].Add(dm), uv, transparent)
		dl.IdxBuffer = append(dl.IdxBuffer,
			inner+uint16(i1*2), inner+uint16(i0*2), outer+uint16(i0*2),
			outer+uint16(i0*2), outer+uint16(i1*2), inner+uint16(i1*2))
	}
}

// StrokePolyLine strokes a polyline with the given thickness.
func (dl *DrawList) StrokePolyLine(points []Vec2, color uint32, closed bool, thickness float32, aa AntiAliasing) {
	n := len(points)
	if n < 2 || color&0xFF000000 == 0 {
		return
	}
	count := n
	if !closed {
		count = n - 1
	}
	uv := dl.config.Null.UV

	if aa == AntiAliasingOff {
		idx, ok := dl.reserve(count*4, count*6)
		if !ok {
			return
		}
		for i1 := 0; i1 < count; i1++ {
			i2 := i1 + 1
			if i2 == n {
				i2 = 0
			}
			p1, p2 := points[i1], points[i2]
			d := p2.Sub(p1)
			if l := d.X*d.X + d.Y*d.Y; l != 0 {
				d = d.Mul(1 / sqrtf(l))
			}
			off := Vec2{d.Y * thickness * 0.5, -d.X * thickness * 0.5}
			dl.vertex(p1.Add(off), uv, color)
			dl.vertex(p2.Add(off), uv, color)
			dl.vertex(p2.Sub(off), uv, color)
			dl.vertex(p1.Sub(off), uv, color)
			dl.IdxBuffer = append(dl.IdxBuffer, idx, idx+1, idx+2, idx, idx+2, idx+3)
			idx += 4
		}
		return
	}

	transparent := color & 0x00FFFFFF
	thick := thickness > 1
	normals := dl.computeNormals(points, closed)

	if !thick {
		idx, ok := dl.reserve(n*3, count*12)
		if !ok {
			return
		}
		temp := dl.scratch(n * 2)
		if !closed {
			temp[0] = points[0].Add(normals[0].Mul(aaSize))
			temp[1] = points[0].Sub(normals[0].Mul(aaSize))
			temp[(n-1)*2] = points[n-1].Add(normals[n-1].Mul(aaSize))
			temp[(n-1)*2+1] = points[n-1].Sub(normals[n-1].Mul(aaSize))
		}
		idx1 := idx
		for i1 := 0; i1 < count; i1++ {
			i2 := i1 + 1
			idx2 := idx1 + 3
			if i2 == n {
				i2 = 0
				idx2 = idx
			}
			dm := miter(normals[i1], normals[i2]).Mul(aaSize)
			temp[i2*2] = points[i2].Add(dm)
			temp[i2*2+1] = points[i2].Sub(dm)
			dl.IdxBuffer = append(dl.IdxBuffer,
				idx2, idx1, idx1+2,
				idx1+2, idx2+2, idx2,
				idx2+1, idx1+1, idx1,
				idx1, idx2, idx2+1)
			idx1 = idx2
		}
		for i := 0; i < n; i++ {
			dl.vertex(points[i], uv, color)
			dl.vertex(temp[i*2], uv, transparent)
			dl.vertex(temp[i*2+1], uv, transparent)
		}
		return
	}

	idx, ok := dl.reserve(n*4, count*18)
	if !ok {
		return
	}
	halfInner := (thickness - aaSize) * 0.5
	temp := dl.scratch(n * 4)
	if !closed {
		for _, i := range [2]int{0, n - 1} {
			d1 := normals[i].Mul(halfInner + aaSize)
			d2 := normals[i].Mul(halfInner)
			temp[i*4] = points[i].Add(d1)
			temp[i*4+1] = points[i].Add(d2)
			temp[i*4+2] = points[i].Sub(d2)
			temp[i*4+3] = points[i].Sub(d1)
		}
	}
	idx1 := idx
	for i1 := 0; i1 < count; i1++ {
		i2 := i1 + 1
		idx2 := idx1 + 4
		if i2 == n {
			i2 = 0
			idx2 = idx
		}
		dm := miter(normals[i1], normals[i2])
		dmOut := dm.Mul(halfInner + aaSize)
		dmIn := dm.Mul(halfInner)
		temp[i2*4] = points[i2].Add(dmOut)
		temp[i2*4+1] = points[i2].Add(dmIn)
		temp[i2*4+2] = points[i2].Sub(dmIn)
		temp[i2*4+3] = points[i2].Sub(dmOut)
		dl.IdxBuffer = append(dl.IdxBuffer,
			idx2+1, idx1+1, idx1+2, idx1+2, idx2+2, idx2+1,
			idx2+1, idx1+1, idx1, idx1, idx2, idx2+1,
			idx2+2, idx1+2, idx1+3, idx1+3, idx2+3, idx2+2)
		idx1 = idx2
	}
	for i := 0; i < n; i++ {
		dl.vertex(temp[i*4], uv, transparent)
		dl.vertex(temp[i*4+1], uv, color)
		dl.vertex(temp[i*4+2], uv, color)
		dl.vertex(temp[i*4+3], uv, transparent)
	}
}

func (dl *DrawList) scratch(n int) []Vec2 {
	if cap(dl.temp) < n {
		dl.temp = make([]Vec2, n)
	}
	return dl.temp[:n]
}

// Finalize prepares the DrawList for rendering.
// Must be called after all primitives are added.
func (dl *DrawList) Finalize() {
	if len(dl.CmdBuffer) > 0 {
		lastCmd := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
		lastCmd.ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxCmdOffset
	}

	// Remove empty commands
	filtered := dl.CmdBuffer[:0]
	for _, cmd := range dl.CmdBuffer {
		if cmd.ElemCount > 0 {
			filtered = append(filtered, cmd)
		}
	}
	dl.CmdBuffer = filtered
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
