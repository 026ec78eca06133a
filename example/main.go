// Example opens a window with one movable panel holding a right-aligned
// label and runs the frame loop until the window is closed.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/xlab/closer"
	"golang.org/x/image/font/gofont/goregular"

	gui "github.com/go-theft-auto/gui-demo"
	"github.com/go-theft-auto/gui-demo/app"
	"github.com/go-theft-auto/gui-demo/backend/opengl"
)

const (
	windowTitle = "Nuklear Go OpenGL Demo"
	fontSize    = 14
	maxTextures = 16
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	defer closer.Close()
	if err := run(); err != nil {
		closer.Fatalln(err)
	}
}

func run() error {
	// Debug shows every platform event the loop receives.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := opengl.DefaultWindowConfig(windowTitle)
	window, dev, err := opengl.CreateBase(cfg)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	closer.Bind(window.Destroy)

	budgets := gui.DefaultBudgets()
	backend, err := opengl.NewBackend(dev, maxTextures, budgets)
	if err != nil {
		return fmt.Errorf("gui renderer: %w", err)
	}
	closer.Bind(backend.Delete)

	font, null, err := loadFont(backend.Drawer)
	if err != nil {
		return fmt.Errorf("font atlas: %w", err)
	}

	logger.Info("font baked", "glyphs", font.GlyphCount(), "height", font.Height())

	ctx := gui.NewContext(font, gui.WithCommandMemory(budgets.CommandMemory))
	loop := app.New(window, backend, ctx, gui.DefaultConvertConfig(null),
		app.WithLogger(logger),
		app.WithInitialSize(cfg.Width, cfg.Height),
	)
	return loop.Run()
}

// loadFont bakes the embedded Go font with Cyrillic coverage and uploads
// the atlas.
func loadFont(d *opengl.Drawer) (*gui.Font, gui.DrawNullTexture, error) {
	atlas := gui.NewFontAtlas()

	fc := gui.NewFontConfig(fontSize)
	fc.OversampleH = 3
	fc.OversampleV = 2
	fc.Ranges = gui.CyrillicGlyphRanges
	fc.TTF = goregular.TTF
	idx, err := atlas.AddFont(fc)
	if err != nil {
		return nil, gui.DrawNullTexture{}, err
	}

	pixels, w, h, err := atlas.Bake(gui.AtlasRGBA32)
	if err != nil {
		return nil, gui.DrawNullTexture{}, err
	}
	tex, err := d.AddTexture(pixels, w, h)
	if err != nil {
		return nil, gui.DrawNullTexture{}, err
	}
	null, err := atlas.End(tex)
	if err != nil {
		return nil, gui.DrawNullTexture{}, err
	}
	font, err := atlas.Font(idx)
	if err != nil {
		return nil, gui.DrawNullTexture{}, err
	}
	return font, null, nil
}
