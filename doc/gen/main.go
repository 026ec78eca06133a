// Command gen renders the demo UI offscreen, captures framebuffer pixels,
// and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/xlab/closer"
	"golang.org/x/image/font/gofont/goregular"

	gui "github.com/go-theft-auto/gui-demo"
	"github.com/go-theft-auto/gui-demo/app"
	"github.com/go-theft-auto/gui-demo/backend/opengl"
)

const (
	viewWidth  = 800
	viewHeight = 700
)

func init() {
	runtime.LockOSThread()
}

func main() {
	defer closer.Close()
	if err := run(); err != nil {
		closer.Fatalln(err)
	}
}

// screenshot defines a single capture.
type screenshot struct {
	name     string              // filename without extension
	crop     image.Rectangle     // region saved, in framebuffer pixels
	build    app.BuildFunc       // UI declared every frame
	events   map[int][]gui.Event // scripted input, keyed by frame
	frames   int                 // frames to run (0 = default 2)
	fontSize float32             // bake a separate font for this shot (0 = shared)
}

func run() error {
	cfg := opengl.DefaultWindowConfig("screenshot-gen")
	cfg.Width, cfg.Height = viewWidth, viewHeight
	cfg.VSync = false
	window, dev, err := opengl.CreateBase(cfg)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	closer.Bind(window.Destroy)
	window.Hide()

	backend, err := opengl.NewBackend(dev, 4, gui.DefaultBudgets())
	if err != nil {
		return fmt.Errorf("gui renderer: %w", err)
	}
	closer.Bind(backend.Delete)

	font, null, _, err := bakeFont(backend.Drawer, 14)
	if err != nil {
		return fmt.Errorf("font atlas: %w", err)
	}
	fmt.Printf("font: %d glyphs, %.0fpx\n", font.GlyphCount(), font.Height())

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		if err := capture(window, dev, backend, font, null, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		dl := backend.Drawer.DrawList()
		fmt.Printf("  %s.jpg (%dx%d, %d vertex bytes, %d element bytes)\n",
			s.name, s.crop.Dx(), s.crop.Dy(), dl.VertexBytes(), dl.ElementBytes())
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

// bakeFont bakes goregular at size and uploads the atlas. The returned
// handle is the atlas texture.
func bakeFont(d *opengl.Drawer, size float32) (*gui.Font, gui.DrawNullTexture, gui.Handle, error) {
	atlas := gui.NewFontAtlas()
	fc := gui.NewFontConfig(size)
	fc.OversampleH, fc.OversampleV = 3, 2
	fc.Ranges = gui.CyrillicGlyphRanges
	fc.TTF = goregular.TTF
	idx, err := atlas.AddFont(fc)
	if err != nil {
		return nil, gui.DrawNullTexture{}, 0, err
	}
	pixels, w, h, err := atlas.Bake(gui.AtlasRGBA32)
	if err != nil {
		return nil, gui.DrawNullTexture{}, 0, err
	}
	tex, err := d.AddTexture(pixels, w, h)
	if err != nil {
		return nil, gui.DrawNullTexture{}, 0, err
	}
	null, err := atlas.End(tex)
	if err != nil {
		d.RemoveTexture(tex)
		return nil, gui.DrawNullTexture{}, 0, err
	}
	font, err := atlas.Font(idx)
	return font, null, tex, err
}

// scriptedPlatform replays scripted events and reads the back buffer
// right before the last frame is presented.
type scriptedPlatform struct {
	window *opengl.Window
	dev    *opengl.Device
	events map[int][]gui.Event
	frame  int
	last   int
	image  *image.RGBA
	err    error
}

func (p *scriptedPlatform) PollEvents() []gui.Event {
	p.window.PollEvents()
	return p.events[p.frame]
}

func (p *scriptedPlatform) FramebufferSize() (int, int, error) {
	return viewWidth, viewHeight, nil
}

func (p *scriptedPlatform) Scale() float32 { return 1 }

func (p *scriptedPlatform) SwapBuffers() error {
	if p.frame == p.last {
		p.image, p.err = p.dev.ReadPixels(viewWidth, viewHeight)
	}
	p.frame++
	return p.window.SwapBuffers()
}

func capture(window *opengl.Window, dev *opengl.Device, backend *opengl.Backend, font *gui.Font, null gui.DrawNullTexture, s screenshot, outDir string) error {
	frames := 2
	if s.frames > 0 {
		frames = s.frames
	}
	platform := &scriptedPlatform{window: window, dev: dev, events: s.events, last: frames - 1}

	// Fresh context per screenshot to avoid panel state leaking between captures.
	ctx := gui.NewContext(font)
	convert := gui.DefaultConvertConfig(null)
	if s.fontSize > 0 {
		big, bigNull, tex, err := bakeFont(backend.Drawer, s.fontSize)
		if err != nil {
			return fmt.Errorf("font %.0fpx: %w", s.fontSize, err)
		}
		// Freed at the next present of the following capture.
		defer backend.Drawer.RemoveTexture(tex)
		ctx.SetFont(big)
		convert = gui.DefaultConvertConfig(bigNull)
	}
	loop := app.New(platform, backend, ctx, convert,
		app.WithBuild(s.build),
		app.WithSleeper(func(_ time.Duration) {}),
	)
	for i := 0; i < frames; i++ {
		if _, err := loop.Step(); err != nil {
			return err
		}
	}
	if platform.err != nil {
		return platform.err
	}
	if platform.image == nil {
		return fmt.Errorf("no frame captured")
	}

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, platform.image.SubImage(s.crop), &jpeg.Options{Quality: 90})
}

// buildScreenshots returns the list of screenshots to generate.
func buildScreenshots() []screenshot {
	demoCrop := image.Rect(300, 30, 620, 680)
	header := gui.Vec2{X: app.DemoBounds.X + 40, Y: app.DemoBounds.Y + 8}

	return []screenshot{
		{
			name:  "demo",
			crop:  demoCrop,
			build: app.DemoPanel,
		},
		{
			name:  "demo_dragged",
			crop:  image.Rect(0, 0, viewWidth, viewHeight),
			build: app.DemoPanel,
			events: map[int][]gui.Event{
				1: {gui.EventMouseButton{Button: gui.MouseButtonLeft, X: header.X, Y: header.Y, Down: true}},
				2: {gui.EventMouseMove{X: header.X + 120, Y: header.Y + 20}},
				3: {gui.EventMouseMove{X: header.X + 180, Y: header.Y + 30}},
				4: {gui.EventMouseButton{Button: gui.MouseButtonLeft, X: header.X + 180, Y: header.Y + 30, Down: false}},
			},
			frames: 6,
		},
		{
			name: "text_align",
			crop: image.Rect(40, 40, 360, 260),
			build: func(ctx *gui.Context) {
				if !ctx.Begin("Alignment", gui.Rect{X: 50, Y: 50, W: 300, H: 200}, gui.PanelBorder|gui.PanelTitle) {
					return
				}
				ctx.LayoutRowDynamic(30, 1)
				ctx.Label("Left")
				ctx.Text("Centered", gui.TextCentered)
				ctx.Text("Right", gui.TextRight)
				ctx.LayoutRowStatic(30, 90, 3)
				ctx.Label("Кириллица")
				ctx.Text("top", gui.TextAlignTop|gui.TextAlignCentered)
				ctx.Text("bottom", gui.TextAlignBottom|gui.TextAlignRight)
				ctx.End()
			},
		},
		{
			name:     "large_font",
			crop:     demoCrop,
			build:    app.DemoPanel,
			fontSize: 24,
		},
		{
			name:  "canvas",
			crop:  image.Rect(40, 40, 360, 360),
			build: canvasPanel,
		},
	}
}

// canvasPanel draws every primitive the command buffer supports.
func canvasPanel(ctx *gui.Context) {
	if !ctx.Begin("Canvas", gui.Rect{X: 50, Y: 50, W: 300, H: 300}, gui.PanelBorder|gui.PanelTitle) {
		return
	}
	canvas := ctx.Canvas()
	ctx.LayoutRowDynamic(120, 2)
	if b, ok := ctx.Widget(); ok {
		canvas.FillCircle(b, gui.ColorRed)
		canvas.StrokeCircle(gui.Rect{X: b.X + 10, Y: b.Y + 10, W: b.W - 20, H: b.H - 20}, 2, gui.ColorWhite)
	}
	if b, ok := ctx.Widget(); ok {
		canvas.FillTriangle(
			gui.Vec2{X: b.X + b.W/2, Y: b.Y},
			gui.Vec2{X: b.X + b.W, Y: b.Y + b.H},
			gui.Vec2{X: b.X, Y: b.Y + b.H},
			gui.ColorGreen,
		)
	}
	ctx.LayoutRowDynamic(120, 1)
	if b, ok := ctx.Widget(); ok {
		canvas.StrokeLine(gui.Vec2{X: b.X, Y: b.Y}, gui.Vec2{X: b.X + b.W, Y: b.Y + b.H}, 1, gui.ColorWhite)
		canvas.StrokeCurve(
			gui.Vec2{X: b.X, Y: b.Y + b.H},
			gui.Vec2{X: b.X + b.W/3, Y: b.Y},
			gui.Vec2{X: b.X + 2*b.W/3, Y: b.Y + b.H},
			gui.Vec2{X: b.X + b.W, Y: b.Y},
			3, gui.ColorBlue,
		)
	}
	ctx.End()
}
