package host

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/nestbox"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera pans the view over the editor's world. It never zooms, so one world
// unit at the root's scale is always one surface pixel and the editor's
// pixel tolerances keep their meaning.
type Camera struct {
	// X and Y are the world position shown at the surface's top-left.
	X, Y float64
	// Width and Height are the surface size in pixels.
	Width, Height float64

	scrollTween *scrollAnim
}

// NewCamera creates a camera over a surface of the given size.
func NewCamera(width, height float64) *Camera {
	return &Camera{Width: width, Height: height}
}

// SetSize updates the surface size, for example after a window resize.
func (c *Camera) SetSize(width, height float64) {
	c.Width, c.Height = width, height
}

// ScrollTo animates the camera so that world point (x, y) ends up at the
// center of the surface after duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	tx := x - c.Width/2
	ty := y - c.Height/2
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(tx), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(ty), duration, easeFn),
	}
}

// ScrollToRect scrolls so the rectangle's center is centered on the surface.
// Rectangles larger than the surface are aligned to their top-left corner
// instead, with a small margin.
func (c *Camera) ScrollToRect(r nestbox.Rect, duration float32, easeFn ease.TweenFunc) {
	const margin = 4
	x := r.X + r.W/2
	y := r.Y + r.H/2
	if r.W > c.Width {
		x = r.X - margin + c.Width/2
	}
	if r.H > c.Height {
		y = r.Y - margin + c.Height/2
	}
	c.ScrollTo(x, y, duration, easeFn)
}

// Scrolling reports whether a scroll animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// Pan moves the camera by a surface-pixel delta and cancels any scroll.
func (c *Camera) Pan(dx, dy float64) {
	c.scrollTween = nil
	c.X += dx
	c.Y += dy
}

// Update advances the scroll animation by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.scrollTween == nil {
		return
	}
	if !c.scrollTween.doneX {
		val, done := c.scrollTween.tweenX.Update(dt)
		c.X = float64(val)
		c.scrollTween.doneX = done
	}
	if !c.scrollTween.doneY {
		val, done := c.scrollTween.tweenY.Update(dt)
		c.Y = float64(val)
		c.scrollTween.doneY = done
	}
	if c.scrollTween.doneX && c.scrollTween.doneY {
		c.scrollTween = nil
	}
}

// SurfaceToWorld converts a surface point to world coordinates.
func (c *Camera) SurfaceToWorld(p nestbox.Vec2) nestbox.Vec2 {
	return nestbox.Vec2{X: p.X + c.X, Y: p.Y + c.Y}
}

// WorldToSurface converts a world point to surface coordinates.
func (c *Camera) WorldToSurface(p nestbox.Vec2) nestbox.Vec2 {
	return nestbox.Vec2{X: p.X - c.X, Y: p.Y - c.Y}
}
