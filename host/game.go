// Package host runs a nestbox editor in an Ebitengine window.
//
// The simplest entry point is [Run]:
//
//	ed := nestbox.NewEditor(nestbox.EditorConfig{})
//	err := host.Run(ed, host.RunConfig{Title: "nestbox", Width: 800, Height: 600})
//
// For full control, create a [Game] with [NewGame] and pass it to
// ebiten.RunGame yourself.
package host

import (
	"io"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/nestbox"
)

// RunConfig configures the window and the presentation pipeline.
type RunConfig struct {
	Title         string
	Width, Height int
	// PixelScale is the number of device pixels per surface pixel.
	// Defaults to 8.
	PixelScale int
	// Border outlines every box at half brightness.
	Border bool
	// ShowOverlay starts with the debug overlay visible. F3 toggles it.
	ShowOverlay bool
	// ScreenshotDir receives F12 screenshots. Defaults to "screenshots".
	ScreenshotDir string
	// ScrollSeconds is the duration of the camera scroll when a box opens.
	// Zero disables scrolling.
	ScrollSeconds float32
	// DoubleClickWindow is the maximum time between taps of a double click.
	// Defaults to 300ms.
	DoubleClickWindow time.Duration
	Logger            *slog.Logger
}

// DefaultPixelScale is the device-to-surface downscale factor.
const DefaultPixelScale = 8

func (c RunConfig) withDefaults() RunConfig {
	if c.Title == "" {
		c.Title = "nestbox"
	}
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.PixelScale <= 0 {
		c.PixelScale = DefaultPixelScale
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = "screenshots"
	}
	if c.DoubleClickWindow <= 0 {
		c.DoubleClickWindow = defaultDoubleClickWindow
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Game implements ebiten.Game around a nestbox editor.
type Game struct {
	cfg      RunConfig
	editor   *nestbox.Editor
	camera   *Camera
	renderer *Renderer
	input    InputSource
	router   *inputRouter
	overlay  *overlay
	logger   *slog.Logger

	showOverlay     bool
	screenshotQueue []string
}

// NewGame wires an editor to Ebitengine input and rendering.
func NewGame(ed *nestbox.Editor, cfg RunConfig) *Game {
	cfg = cfg.withDefaults()
	renderer := NewRenderer(cfg.PixelScale)
	renderer.Border = cfg.Border
	sw, sh := renderer.SurfaceSize(cfg.Width, cfg.Height)
	cam := NewCamera(float64(sw), float64(sh))

	router := newInputRouter(ed, cam)
	router.doubleClickWindow = cfg.DoubleClickWindow

	g := &Game{
		cfg:         cfg,
		editor:      ed,
		camera:      cam,
		renderer:    renderer,
		input:       &ebitenInput{pixelScale: float64(cfg.PixelScale)},
		router:      router,
		overlay:     newOverlay(),
		logger:      cfg.Logger,
		showOverlay: cfg.ShowOverlay,
	}
	ed.OnEvent(g.onEvent)
	return g
}

// Editor returns the editor driven by the game.
func (g *Game) Editor() *nestbox.Editor {
	return g.editor
}

// Camera returns the game's camera.
func (g *Game) Camera() *Camera {
	return g.camera
}

// SetInput replaces the pointer source, for example with a scripted one.
func (g *Game) SetInput(in InputSource) {
	g.input = in
}

func (g *Game) onEvent(ev nestbox.BoxEvent) {
	g.logger.Debug("event", "type", ev.Type.String(), "box", ev.Box)
	if ev.Type != nestbox.EventBoxOpened || g.cfg.ScrollSeconds <= 0 {
		return
	}
	rec := nestbox.ResolveBox(g.editor.Store(), ev.Box)
	g.camera.ScrollToRect(rec.Bounds(), g.cfg.ScrollSeconds, ease.OutCubic)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showOverlay = !g.showOverlay
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.Screenshot("f12")
	}

	g.router.feed(g.input.Sample())
	g.editor.Update()
	g.camera.Update(dt)
	if g.showOverlay {
		g.overlay.update(float64(dt), g.editor, g.camera)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.editor.Flatten(), g.camera)
	g.flushScreenshots(screen)
	if g.showOverlay {
		g.overlay.draw(screen)
	}
}

// Layout implements ebiten.Game. The screen is sized in device pixels so
// that one surface pixel maps to exactly PixelScale device pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	w := int(float64(outsideWidth) * scale)
	h := int(float64(outsideHeight) * scale)
	sw, sh := g.renderer.SurfaceSize(w, h)
	g.camera.SetSize(float64(sw), float64(sh))
	return w, h
}

// Run opens a window and blocks until it is closed.
func Run(ed *nestbox.Editor, cfg RunConfig) error {
	g := NewGame(ed, cfg)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	g.logger.Info("window open", "width", g.cfg.Width, "height", g.cfg.Height, "pixelScale", g.cfg.PixelScale)
	return ebiten.RunGame(g)
}
