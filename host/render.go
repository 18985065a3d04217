package host

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/nestbox"
)

// whitePixel is a 1x1 white image scaled and tinted to draw solid rects.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(nestbox.Color{R: 1, G: 1, B: 1}.RGBA8())
	}
	return whitePixel
}

// Renderer paints flattened records onto a low-resolution surface and
// upscales it to the screen with nearest-neighbor filtering.
type Renderer struct {
	// PixelScale is the number of device pixels per surface pixel.
	PixelScale int
	Background nestbox.Color
	// Border draws a one pixel outline at half brightness around each box.
	Border bool

	surface *ebiten.Image
}

// NewRenderer creates a renderer with the given pixel scale.
func NewRenderer(pixelScale int) *Renderer {
	if pixelScale < 1 {
		pixelScale = 1
	}
	return &Renderer{
		PixelScale: pixelScale,
		Background: nestbox.DefaultBackground,
		Border:     true,
	}
}

// SurfaceSize returns the surface dimensions for a screen of the given
// device-pixel size, rounding up so the surface always covers the screen.
func (r *Renderer) SurfaceSize(screenW, screenH int) (int, int) {
	s := r.PixelScale
	return max(1, (screenW+s-1)/s), max(1, (screenH+s-1)/s)
}

// ensureSurface returns an offscreen image of exactly (w, h), reallocating
// when the size changes.
func (r *Renderer) ensureSurface(w, h int) *ebiten.Image {
	if r.surface != nil {
		b := r.surface.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return r.surface
		}
		r.surface.Deallocate()
	}
	r.surface = ebiten.NewImageWithOptions(image.Rect(0, 0, w, h), nil)
	return r.surface
}

// Draw renders records in order as seen through cam.
func (r *Renderer) Draw(screen *ebiten.Image, records []nestbox.Record, cam *Camera) {
	sb := screen.Bounds()
	w, h := r.SurfaceSize(sb.Dx(), sb.Dy())
	surface := r.ensureSurface(w, h)
	surface.Fill(r.Background.RGBA8())

	for _, rec := range records {
		rect := surfaceRect(rec, cam)
		if !visible(rect, float64(w), float64(h)) {
			continue
		}
		fillRect(surface, rect, rec.Box.Color)
		if r.Border {
			edge := rec.Box.Color.Scale(0.5)
			for _, strip := range borderStrips(rect) {
				fillRect(surface, strip, edge)
			}
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.PixelScale), float64(r.PixelScale))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(surface, op)
}

// surfaceRect returns a record's world rectangle in surface pixels.
func surfaceRect(rec nestbox.Record, cam *Camera) nestbox.Rect {
	b := rec.Bounds()
	p := cam.WorldToSurface(nestbox.Vec2{X: b.X, Y: b.Y})
	b.X, b.Y = p.X, p.Y
	return b
}

// visible reports whether r overlaps a surface of size (w, h).
func visible(r nestbox.Rect, w, h float64) bool {
	return r.X < w && r.Y < h && r.Right() > 0 && r.Bottom() > 0
}

// borderStrips returns the four one-pixel strips outlining r: top, bottom,
// left and right. Left and right strips exclude the corners.
func borderStrips(r nestbox.Rect) [4]nestbox.Rect {
	return [4]nestbox.Rect{
		{X: r.X, Y: r.Y, W: r.W, H: 1},
		{X: r.X, Y: r.Bottom() - 1, W: r.W, H: 1},
		{X: r.X, Y: r.Y + 1, W: 1, H: max(0, r.H-2)},
		{X: r.Right() - 1, Y: r.Y + 1, W: 1, H: max(0, r.H-2)},
	}
}

func fillRect(dst *ebiten.Image, r nestbox.Rect, c nestbox.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.W, r.H)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleWithColor(c.RGBA8())
	dst.DrawImage(ensureWhitePixel(), op)
}
