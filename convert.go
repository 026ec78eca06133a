package gui

import "fmt"

// AntiAliasing selects whether shapes or lines get an anti-aliased fringe.
type AntiAliasing uint8

const (
	AntiAliasingOff AntiAliasing = iota
	AntiAliasingOn
)

func (a AntiAliasing) String() string {
	switch a {
	case AntiAliasingOff:
		return "off"
	case AntiAliasingOn:
		return "on"
	default:
		return fmt.Sprintf("AntiAliasing(%d)", uint8(a))
	}
}

// DrawNullTexture points at a block of white texels inside a texture so that
// untextured geometry can be drawn through the same textured pipeline.
type DrawNullTexture struct {
	Texture Handle
	UV      Vec2
}

// ConvertConfig describes how abstract UI commands become vertex geometry.
type ConvertConfig struct {
	Null               DrawNullTexture
	CircleSegmentCount uint
	CurveSegmentCount  uint
	ArcSegmentCount    uint
	GlobalAlpha        float32
	ShapeAA            AntiAliasing
	LineAA             AntiAliasing
}

// DefaultConvertConfig returns the conversion settings used by the demo:
// 22 segments for circles, curves and arcs, opaque, anti-aliased.
func DefaultConvertConfig(null DrawNullTexture) ConvertConfig {
	return ConvertConfig{
		Null:               null,
		CircleSegmentCount: 22,
		CurveSegmentCount:  22,
		ArcSegmentCount:    22,
		GlobalAlpha:        1.0,
		ShapeAA:            AntiAliasingOn,
		LineAA:             AntiAliasingOn,
	}
}

// Validate reports whether the configuration can be used by Convert.
func (c *ConvertConfig) Validate() error {
	switch {
	case !c.Null.Texture.Valid():
		return fmt.Errorf("%w: null texture not set", ErrInvalidConfig)
	case c.CircleSegmentCount < 3:
		return fmt.Errorf("%w: circle segment count %d < 3", ErrInvalidConfig, c.CircleSegmentCount)
	case c.CurveSegmentCount < 1:
		return fmt.Errorf("%w: curve segment count must be positive", ErrInvalidConfig)
	case c.ArcSegmentCount < 1:
		return fmt.Errorf("%w: arc segment count must be positive", ErrInvalidConfig)
	case c.GlobalAlpha < 0 || c.GlobalAlpha > 1:
		return fmt.Errorf("%w: global alpha %v outside [0,1]", ErrInvalidConfig, c.GlobalAlpha)
	}
	return nil
}

// Convert turns the commands recorded in ctx this frame into the vertex,
// element and draw-command buffers of dl. The list is cleared first.
//
// When a buffer budget is exhausted Convert stops and returns
// ErrVertexBufferFull or ErrElementBufferFull; the geometry emitted before
// that point is complete and can still be drawn.
func Convert(ctx *Context, cfg *ConvertConfig, dl *DrawList) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	dl.Clear()
	dl.config = *cfg

	for i := range ctx.commands.cmds {
		cmd := &ctx.commands.cmds[i]
		col := scaleAlpha(cmd.Color, cfg.GlobalAlpha)
		if cmd.Kind != CommandScissor && cmd.Kind != CommandText {
			dl.SetTexture(cfg.Null.Texture)
		}

		switch cmd.Kind {
		case CommandScissor:
			dl.SetClipRect(cmd.Rect)
		case CommandLine:
			dl.PathLineTo(cmd.Points[0])
			dl.PathLineTo(cmd.Points[1])
			dl.PathStroke(col, false, cmd.Thickness)
		case CommandCurve:
			dl.PathLineTo(cmd.Points[0])
			dl.PathCurveTo(cmd.Points[1], cmd.Points[2], cmd.Points[3], cfg.CurveSegmentCount)
			dl.PathStroke(col, false, cmd.Thickness)
		case CommandRect:
			dl.PathRectTo(cmd.Rect.Pos(), Vec2{cmd.Rect.X + cmd.Rect.W, cmd.Rect.Y + cmd.Rect.H}, cmd.Rounding)
			dl.PathStroke(col, true, cmd.Thickness)
		case CommandRectFilled:
			dl.PathRectTo(cmd.Rect.Pos(), Vec2{cmd.Rect.X + cmd.Rect.W, cmd.Rect.Y + cmd.Rect.H}, cmd.Rounding)
			dl.PathFill(col)
		case CommandCircle, CommandCircleFilled:
			dl.pathCircle(cmd.Rect, cfg.CircleSegmentCount)
			if cmd.Kind == CommandCircle {
				dl.PathStroke(col, true, cmd.Thickness)
			} else {
				dl.PathFill(col)
			}
		case CommandTriangleFilled:
			dl.PathLineTo(cmd.Points[0])
			dl.PathLineTo(cmd.Points[1])
			dl.PathLineTo(cmd.Points[2])
			dl.PathFill(col)
		case CommandText:
			dl.addText(cmd.Font, cmd.Rect, cmd.Text, col)
		}

		if dl.err != nil {
			guiLogger.Warn("convert stopped", "err", dl.err, "command", i, "kind", cmd.Kind)
			break
		}
	}

	dl.Finalize()
	if dl.err != nil {
		return fmt.Errorf("convert: %w", dl.err)
	}
	return nil
}

// pathCircle appends a closed circle inscribed in r.
func (dl *DrawList) pathCircle(r Rect, segments uint) {
	const pi = 3.14159265358979
	radius := minf(r.W, r.H) * 0.5
	center := Vec2{r.X + r.W*0.5, r.Y + r.H*0.5}
	aMax := pi * 2 * (float32(segments) - 1) / float32(segments)
	dl.PathArcTo(center, radius, 0, aMax, segments-1)
}

// addText emits one textured quad per glyph, clipped to the width of r.
func (dl *DrawList) addText(font UserFont, r Rect, text string, color uint32) {
	if font == nil || len(text) == 0 || color&0xFF000000 == 0 {
		return
	}
	dl.SetTexture(font.Texture())

	x := r.X
	right := r.X + r.W
	for _, ch := range text {
		g, ok := font.Glyph(ch)
		if !ok {
			continue
		}
		if x+g.Advance > right+0.5 {
			break
		}
		if g.X1 > g.X0 && g.Y1 > g.Y0 {
			dl.PrimRectUV(
				Vec2{x + g.X0, r.Y + g.Y0},
				Vec2{x + g.X1, r.Y + g.Y1},
				Vec2{g.U0, g.V0},
				Vec2{g.U1, g.V1},
				color,
			)
		}
		x += g.Advance
	}
}
