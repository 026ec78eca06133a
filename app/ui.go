package app

import gui "github.com/go-theft-auto/gui-demo"

// Demo panel contents.
const (
	DemoTitle = "Basic Nuklear Rust!"
	DemoLabel = "Free type:"
	DemoFlags = gui.PanelBorder | gui.PanelMovable | gui.PanelTitle
)

// DemoBounds is where the demo panel first appears.
var DemoBounds = gui.Rect{X: 320, Y: 50, W: 275, H: 610}

// DemoPanel declares one panel with a two-column row holding a
// right-aligned label.
func DemoPanel(ctx *gui.Context) {
	if !ctx.Begin(DemoTitle, DemoBounds, DemoFlags) {
		return
	}
	ctx.LayoutRowDynamic(30, 2)
	ctx.Text(DemoLabel, gui.TextRight)
	ctx.End()
}
