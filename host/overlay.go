package host

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/nestbox"
)

const overlayRefresh = 0.5 // seconds between text refreshes

// overlay is a debug panel showing frame rates and editor state. It draws
// at device resolution on top of the upscaled surface.
type overlay struct {
	img     *ebiten.Image
	elapsed float64
	text    string
}

func newOverlay() *overlay {
	return &overlay{elapsed: overlayRefresh}
}

// update refreshes the text roughly every overlayRefresh seconds.
func (o *overlay) update(dt float64, ed *nestbox.Editor, cam *Camera) {
	o.elapsed += dt
	if o.elapsed < overlayRefresh {
		return
	}
	o.elapsed = 0
	o.text = overlayText(ebiten.ActualFPS(), ebiten.ActualTPS(), ed, cam)
}

func (o *overlay) draw(screen *ebiten.Image) {
	if o.img == nil {
		// 160x64 fits four lines of debug text.
		o.img = ebiten.NewImage(160, 64)
	}
	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
	screen.DrawImage(o.img, nil)
}

func overlayText(fps, tps float64, ed *nestbox.Editor, cam *Camera) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nboxes: %d %s\ncam: %.0f,%.0f",
		fps, tps, ed.Store().Len(), ed.Gesture(), cam.X, cam.Y)
}
