/*
Package gui provides a small immediate-mode GUI in the manner of Nuklear,
designed as idiomatic Go with a dedicated Context type.

# Overview

The UI is rebuilt every frame. A Context records abstract draw commands
(scissor, rectangles, circles, text, ...) into a command buffer with a fixed
byte budget. Convert turns those commands into vertex, element and
draw-command buffers, also with fixed budgets, which a rendering backend
uploads and draws. Nothing grows after creation.

Panel positions are the only state kept between frames: a panel keeps its
position while it is begun every frame, and is dropped by Clear otherwise.

# Quick Start

	// Setup
	atlas := gui.NewFontAtlas()
	cfg := gui.NewFontConfig(14)
	cfg.TTF = goregular.TTF
	idx, _ := atlas.AddFont(cfg)
	pixels, w, h, _ := atlas.Bake(gui.AtlasRGBA32)
	tex, _ := drawer.AddTexture(pixels, w, h)
	null, _ := atlas.End(tex)
	font, _ := atlas.Font(idx)

	ctx := gui.NewContext(font)
	convert := gui.DefaultConvertConfig(null)

	// Frame loop
	for {
	    ctx.InputBegin()
	    for _, e := range window.PollEvents() {
	        ctx.HandleEvent(e)
	    }
	    ctx.InputEnd()

	    if ctx.Begin("Demo", gui.Rect{X: 50, Y: 50, W: 200, H: 300}, gui.PanelTitle|gui.PanelBorder) {
	        ctx.LayoutRowDynamic(30, 2)
	        ctx.Text("Free type:", gui.TextRight)
	        ctx.End()
	    }

	    _ = gui.Convert(ctx, &convert, drawList)
	    // upload and draw drawList
	    ctx.Clear()
	}

# Fonts

FontAtlas bakes TrueType fonts with golang.org/x/image/font/sfnt and
golang.org/x/image/vector. The font pixel height equals ascent plus
descent. Glyphs are oversampled (OversampleH x OversampleV) and box
filtered, so text placed at fractional positions stays sharp. A 2x2 block
of white texels is reserved in the atlas; DrawNullTexture points at it so
untextured shapes go through the same textured pipeline as text.

# Anti-aliasing

With ConvertConfig.ShapeAA on, convex fills get a 1px transparent fringe.
With LineAA on, thin strokes get a fringe on both sides and thick strokes
get a solid core plus fringes.

# Logging

Diagnostics go through log/slog. Debug messages are off until
SetVerbose(true) is called.
*/
package gui
