package host

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/nestbox"
)

const (
	defaultDoubleClickWindow = 300 * time.Millisecond
	defaultDoubleClickSlop   = 4.0 // surface pixels, per axis
)

// PointerState is one frame's sample of the pointer, in surface pixels.
type PointerState struct {
	Pos                 nestbox.Vec2
	Left, Right, Middle bool
}

func (s PointerState) pressed() bool {
	return s.Left || s.Right || s.Middle
}

// button returns the pressed button, preferring left, then right, then middle.
func (s PointerState) button() nestbox.MouseButton {
	switch {
	case s.Left:
		return nestbox.MouseButtonLeft
	case s.Right:
		return nestbox.MouseButtonRight
	default:
		return nestbox.MouseButtonMiddle
	}
}

// InputSource samples the pointer once per frame.
type InputSource interface {
	Sample() PointerState
}

// ebitenInput reads the mouse and the first touch from Ebitengine and
// converts positions from device pixels to surface pixels.
type ebitenInput struct {
	pixelScale float64
	touchIDs   []ebiten.TouchID
	lastTouch  nestbox.Vec2
	touching   bool
}

func (in *ebitenInput) toSurface(x, y int) nestbox.Vec2 {
	return nestbox.Vec2{X: float64(x) / in.pixelScale, Y: float64(y) / in.pixelScale}
}

// Sample implements InputSource. An active touch takes priority over the
// mouse and is reported as the primary button.
func (in *ebitenInput) Sample() PointerState {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	if len(in.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(in.touchIDs[0])
		in.lastTouch = in.toSurface(tx, ty)
		in.touching = true
		return PointerState{Pos: in.lastTouch, Left: true}
	}
	if in.touching {
		// Touch just lifted: release where it was last seen.
		in.touching = false
		return PointerState{Pos: in.lastTouch}
	}

	mx, my := ebiten.CursorPosition()
	return PointerState{
		Pos:    in.toSurface(mx, my),
		Left:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Right:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		Middle: ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle),
	}
}

// inputRouter turns per-frame pointer samples into editor calls. The middle
// button pans the camera instead of reaching the editor. Two taps close in
// time and space become a double click.
type inputRouter struct {
	editor *nestbox.Editor
	camera *Camera
	clock  nestbox.Clock

	doubleClickWindow time.Duration
	doubleClickSlop   float64

	prev    PointerState
	down    bool
	panning bool

	hasTap bool
	tapAt  time.Time
	tapPos nestbox.Vec2
}

func newInputRouter(ed *nestbox.Editor, cam *Camera) *inputRouter {
	return &inputRouter{
		editor:            ed,
		camera:            cam,
		clock:             ed.Scheduler().Clock(),
		doubleClickWindow: defaultDoubleClickWindow,
		doubleClickSlop:   defaultDoubleClickSlop,
	}
}

// feed processes one frame's sample.
func (r *inputRouter) feed(s PointerState) {
	world := r.camera.SurfaceToWorld(s.Pos)
	pressed := s.pressed()

	switch {
	case pressed && !r.down:
		r.down = true
		switch button := s.button(); button {
		case nestbox.MouseButtonMiddle:
			r.panning = true
		case nestbox.MouseButtonRight:
			r.editor.PointerDown(world, button)
			r.editor.SecondaryClick(world)
		default:
			r.editor.PointerDown(world, button)
		}
	case pressed && r.down:
		if s.Pos == r.prev.Pos {
			break
		}
		if r.panning {
			d := s.Pos.Sub(r.prev.Pos)
			r.camera.Pan(-d.X, -d.Y)
		} else {
			r.editor.PointerMove(world)
		}
	case !pressed && r.down:
		r.down = false
		if r.panning {
			r.panning = false
			break
		}
		if tap := r.editor.PointerUp(world); tap {
			r.tap(world, s.Pos)
		}
	}
	r.prev = s
}

// tap records a tap and fires a double click when it pairs with the
// previous one.
func (r *inputRouter) tap(world, surface nestbox.Vec2) {
	now := r.clock.Now()
	if r.hasTap && now.Sub(r.tapAt) <= r.doubleClickWindow &&
		abs(surface.X-r.tapPos.X) <= r.doubleClickSlop &&
		abs(surface.Y-r.tapPos.Y) <= r.doubleClickSlop {
		r.hasTap = false
		r.editor.DoubleClick(world)
		return
	}
	r.hasTap = true
	r.tapAt = now
	r.tapPos = surface
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
