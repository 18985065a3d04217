package nestbox

import "time"

// Interaction and layout constants. All pixel values are surface pixels, the
// unit the host delivers pointer events in.
const (
	CornerHitPx     = 4.0                    // corner handle tolerance, per axis
	MinBoxSize      = 6.0                    // minimum local width and height
	LongPress       = 600 * time.Millisecond // hold time before a child is created
	MoveThresholdSq = 4.0                    // squared distance before a press becomes a move
	OpenZoom        = 8.0                    // zoom applied to an open box's children
	NewChildW       = 16.0                   // local width of a long-press child
	NewChildH       = 12.0                   // local height of a long-press child
)

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// Scale returns the color with every component multiplied by f.
func (c Color) Scale(f float64) Color {
	return Color{c.R * f, c.G * f, c.B * f}
}

// Vec2 is a 2D vector used for points, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns v scaled by s.
func (v Vec2) Mul(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Div returns v divided by s.
func (v Vec2) Div(s float64) Vec2 { return Vec2{v.X / s, v.Y / s} }

// LenSq returns the squared length of v.
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W &&
		p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary button; touch maps here
	MouseButtonRight                     // secondary button
	MouseButtonMiddle                    // middle button
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// Corner tags one of the four resize handles of an open box.
type Corner uint8

const (
	CornerNone Corner = iota
	CornerTL
	CornerTR
	CornerBL
	CornerBR
)

func (c Corner) String() string {
	switch c {
	case CornerTL:
		return "tl"
	case CornerTR:
		return "tr"
	case CornerBL:
		return "bl"
	case CornerBR:
		return "br"
	default:
		return "none"
	}
}

// leftEdge reports whether the corner sits on the box's left edge.
func (c Corner) leftEdge() bool { return c == CornerTL || c == CornerBL }

// topEdge reports whether the corner sits on the box's top edge.
func (c Corner) topEdge() bool { return c == CornerTL || c == CornerTR }

// EventType identifies a kind of editor event.
type EventType uint8

const (
	EventBoxCreated  EventType = iota // long-press created a child box
	EventMoveStart                    // a press crossed the move threshold
	EventMove                         // the moved box's position changed
	EventMoveEnd                      // the pointer was released after moving
	EventResizeStart                  // a press grabbed a corner handle
	EventResize                       // the resized box's geometry changed
	EventResizeEnd                    // the pointer was released after resizing
	EventBoxOpened                    // double click opened a box
	EventBoxClosed                    // secondary click closed a box
)

var eventTypeNames = [...]string{
	EventBoxCreated:  "box-created",
	EventMoveStart:   "move-start",
	EventMove:        "move",
	EventMoveEnd:     "move-end",
	EventResizeStart: "resize-start",
	EventResize:      "resize",
	EventResizeEnd:   "resize-end",
	EventBoxOpened:   "box-opened",
	EventBoxClosed:   "box-closed",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}
