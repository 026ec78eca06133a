package gui

// rowKind selects how widths are assigned to the columns of a row.
type rowKind uint8

const (
	rowNone    rowKind = iota // No row declared yet
	rowDynamic                // Columns share the panel width
	rowStatic                 // Columns have a fixed width
)

// rowLayout tracks the current row inside the open panel.
type rowLayout struct {
	kind rowKind

	origin Vec2    // Top-left of the panel content area
	width  float32 // Content width

	y         float32 // Top of the current row, relative to origin
	height    float32
	cols      int
	index     int // Next column
	itemWidth float32
	rows      int
}

// LayoutRowDynamic starts a row of cols columns sharing the panel width.
func (ctx *Context) LayoutRowDynamic(height float32, cols int) {
	ctx.layoutRow(rowDynamic, height, 0, cols)
}

// LayoutRowStatic starts a row of cols columns of itemWidth pixels each.
func (ctx *Context) LayoutRowStatic(height, itemWidth float32, cols int) {
	ctx.layoutRow(rowStatic, height, itemWidth, cols)
}

func (ctx *Context) layoutRow(kind rowKind, height, itemWidth float32, cols int) {
	if ctx.current == nil {
		guiLogger.Warn("layout row outside of panel")
		return
	}
	if cols <= 0 {
		guiLogger.Warn("layout row needs at least one column", "cols", cols)
		cols = 1
	}
	if height <= 0 {
		height = ctx.lineHeight() + 2*ctx.style.TextPadding.Y
	}

	r := &ctx.row
	r.advance(ctx.style.ItemSpacing.Y)
	r.kind = kind
	r.height = height
	r.cols = cols
	r.itemWidth = itemWidth
	r.index = 0
}

// advance moves below the current row, if any.
func (r *rowLayout) advance(spacing float32) {
	if r.rows > 0 {
		r.y += r.height + spacing
	}
	r.rows++
}

// Widget allocates the next column of the current row. It returns false
// when no row is declared or the column is clipped away entirely; the
// column is consumed either way.
func (ctx *Context) Widget() (Rect, bool) {
	b, ok := ctx.widgetBounds()
	if !ok {
		return Rect{}, false
	}
	visible := b.Intersect(ctx.commands.Clip())
	if visible.W <= 0 || visible.H <= 0 {
		return b, false
	}
	return b, true
}

// widgetBounds allocates the next column of the current row. When all
// columns are used a new row with the same shape is started.
func (ctx *Context) widgetBounds() (Rect, bool) {
	r := &ctx.row
	if ctx.current == nil || r.kind == rowNone {
		guiLogger.Warn("widget outside of a layout row")
		return Rect{}, false
	}
	spacing := ctx.style.ItemSpacing
	if r.index >= r.cols {
		r.advance(spacing.Y)
		r.index = 0
	}

	var w, x float32
	switch r.kind {
	case rowDynamic:
		w = maxf(0, (r.width-float32(r.cols-1)*spacing.X)/float32(r.cols))
	case rowStatic:
		w = r.itemWidth
	}
	x = r.origin.X + float32(r.index)*(w+spacing.X)
	r.index++

	return Rect{X: x, Y: r.origin.Y + r.y, W: w, H: r.height}, true
}
