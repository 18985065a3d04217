package nestbox

import (
	"io"
	"log/slog"
)

// DefaultRootBounds is the local rectangle of the initial root box.
var DefaultRootBounds = Rect{X: 16, Y: 16, W: 64, H: 64}

// DefaultRootColor is the color of the initial root box.
var DefaultRootColor = Color{R: 0.3, G: 0.7, B: 1.0}

// EditorConfig configures a new Editor. The zero value is usable.
type EditorConfig struct {
	// Clock drives the long-press timer. Defaults to SystemClock.
	Clock Clock
	// Logger receives debug output. Defaults to a discarding logger.
	Logger *slog.Logger
	// RootBounds is the root box's local rectangle. Defaults to DefaultRootBounds.
	RootBounds Rect
	// RootColor is the root box's color. Defaults to DefaultRootColor.
	RootColor Color
}

// --- Gesture state ---

// grab is the snapshot taken when a press lands on a box.
type grab struct {
	target BoxID
	down   Vec2 // press point, surface pixels
	start  Rect // target's local rect at press time

	// scaleForPos converts pointer deltas to the parent space the box's
	// origin lives in; scaleForSize converts them to the box's own space.
	scaleForPos  float64
	scaleForSize float64
}

func newGrab(rec Record, down Vec2) grab {
	return grab{
		target:       rec.Box.ID,
		down:         down,
		start:        rec.Box.Bounds(),
		scaleForPos:  rec.ParentScale,
		scaleForSize: rec.WorldScale,
	}
}

// gesture is one of idleGesture, pendingGesture, moveGesture or resizeGesture.
type gesture interface {
	name() string
}

type idleGesture struct{}

// pendingGesture is a press on a box that is not yet a move.
type pendingGesture struct {
	grab      grab
	secondary bool
}

type moveGesture struct {
	grab grab
}

type resizeGesture struct {
	grab   grab
	corner Corner
}

func (idleGesture) name() string    { return "idle" }
func (pendingGesture) name() string { return "pending" }
func (moveGesture) name() string    { return "dragging-move" }
func (resizeGesture) name() string  { return "dragging-resize" }

// --- Editor ---

// Editor owns the box scene and the pointer state machine that edits it.
// All methods must be called from a single goroutine, the same one that
// calls Update and reads Flatten.
type Editor struct {
	store  *Store
	picker *Picker
	sched  *Scheduler
	logger *slog.Logger
	debug  bool

	gesture        gesture
	longPress      *Timer
	longPressFired bool

	handlers    handlerRegistry
	sink        EventSink
	injectQueue []syntheticEvent

	frame []Record
}

// NewEditor creates an editor with a single open root box.
func NewEditor(cfg EditorConfig) *Editor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	bounds := cfg.RootBounds
	if bounds == (Rect{}) {
		bounds = DefaultRootBounds
	}
	color := cfg.RootColor
	if color == (Color{}) {
		color = DefaultRootColor
	}

	store := NewStore()
	root := store.Box(store.CreateBoxWithColor(NoBox, bounds, color))
	// The root starts open at normal scale; double click magnifies it.
	root.open = true

	return &Editor{
		store:   store,
		picker:  NewPicker(store),
		sched:   NewScheduler(cfg.Clock),
		logger:  logger,
		gesture: idleGesture{},
	}
}

// Store returns the editor's box store.
func (e *Editor) Store() *Store {
	return e.store
}

// Picker returns the editor's picker.
func (e *Editor) Picker() *Picker {
	return e.picker
}

// Scheduler returns the scheduler that runs the long-press timer.
func (e *Editor) Scheduler() *Scheduler {
	return e.sched
}

// Root returns the root box.
func (e *Editor) Root() *Box {
	return e.store.Box(e.store.Root())
}

// Flatten returns the resolved scene in paint order. The returned slice is
// reused and is only valid until the next call.
func (e *Editor) Flatten() []Record {
	e.frame = AppendFlatten(e.frame[:0], e.store)
	return e.frame
}

// Gesture returns the name of the current gesture state.
func (e *Editor) Gesture() string {
	return e.gesture.name()
}

// Target returns the box the current gesture acts on, if any.
func (e *Editor) Target() (BoxID, bool) {
	switch g := e.gesture.(type) {
	case pendingGesture:
		return g.grab.target, true
	case moveGesture:
		return g.grab.target, true
	case resizeGesture:
		return g.grab.target, true
	}
	return NoBox, false
}

// LongPressArmed reports whether a long-press timer is waiting to fire.
func (e *Editor) LongPressArmed() bool {
	return e.longPress.Pending()
}

// Update runs one frame of editor work: at most one injected input event,
// then any due timers.
func (e *Editor) Update() {
	e.processInjectedInput()
	e.sched.RunDue()
}

// --- Pointer input ---

// PointerDown handles a press at p. Corner handles of open boxes take
// priority over box bodies, even when a child's body overlaps the corner.
func (e *Editor) PointerDown(p Vec2, button MouseButton) {
	e.longPressFired = false

	if rec, corner, ok := e.picker.PickCornerAt(p); ok {
		e.cancelLongPress()
		e.setGesture(resizeGesture{grab: newGrab(rec, p), corner: corner})
		e.emit(EventResizeStart, rec.Box, corner, p)
		return
	}

	rec, ok := e.picker.PickTopmostAt(p)
	if !ok {
		e.cancelLongPress()
		e.setGesture(idleGesture{})
		return
	}

	secondary := button == MouseButtonRight
	e.setGesture(pendingGesture{grab: newGrab(rec, p), secondary: secondary})
	if !secondary && rec.Box.open {
		e.armLongPress(rec, p)
	} else {
		e.cancelLongPress()
	}
}

// PointerMove handles pointer motion while pressed. Motion with no press in
// progress is ignored.
func (e *Editor) PointerMove(p Vec2) {
	switch g := e.gesture.(type) {
	case pendingGesture:
		if p.Sub(g.grab.down).LenSq() <= MoveThresholdSq {
			return
		}
		e.cancelLongPress()
		mg := moveGesture{grab: g.grab}
		e.setGesture(mg)
		e.emit(EventMoveStart, e.store.Box(g.grab.target), CornerNone, p)
		e.applyMove(mg, p)
	case moveGesture:
		e.cancelLongPress()
		e.applyMove(g, p)
	case resizeGesture:
		e.cancelLongPress()
		e.applyResize(g, p)
	}
}

// PointerUp ends the current gesture and reports whether the press was a
// tap: a primary press on a box that neither moved nor triggered a
// long-press. Geometry was already committed on every move, so release only
// returns to idle.
func (e *Editor) PointerUp(p Vec2) (tap bool) {
	prev := e.gesture
	fired := e.longPressFired
	e.longPressFired = false
	e.cancelLongPress()
	e.setGesture(idleGesture{})

	switch g := prev.(type) {
	case pendingGesture:
		// A fired long-press swallows the release.
		tap = !fired && !g.secondary
	case moveGesture:
		e.emit(EventMoveEnd, e.store.Box(g.grab.target), CornerNone, p)
	case resizeGesture:
		e.emit(EventResizeEnd, e.store.Box(g.grab.target), g.corner, p)
	}
	return tap
}

// LongPressFired reports whether the current press already created a box.
func (e *Editor) LongPressFired() bool {
	return e.longPressFired
}

// DoubleClick opens the topmost box at p.
func (e *Editor) DoubleClick(p Vec2) {
	rec, ok := e.picker.PickTopmostAt(p)
	if !ok {
		return
	}
	rec.Box.Open()
	e.emit(EventBoxOpened, rec.Box, CornerNone, p)
	e.checkInvariants("open")
}

// SecondaryClick closes the topmost box at p.
func (e *Editor) SecondaryClick(p Vec2) {
	rec, ok := e.picker.PickTopmostAt(p)
	if !ok {
		return
	}
	rec.Box.Close()
	e.emit(EventBoxClosed, rec.Box, CornerNone, p)
	e.checkInvariants("close")
}

// --- Gesture helpers ---

func (e *Editor) setGesture(g gesture) {
	if e.debug && g.name() != e.gesture.name() {
		e.logger.Debug("gesture", "from", e.gesture.name(), "to", g.name())
	}
	e.gesture = g
}

func (e *Editor) applyMove(g moveGesture, p Vec2) {
	b := e.store.Box(g.grab.target)
	delta := p.Sub(g.grab.down).Div(g.grab.scaleForPos)
	b.SetBounds(MoveBy(g.grab.start, delta))
	e.emit(EventMove, b, CornerNone, p)
}

func (e *Editor) applyResize(g resizeGesture, p Vec2) {
	b := e.store.Box(g.grab.target)
	d := p.Sub(g.grab.down)
	b.SetBounds(ResizeFromCorner(g.grab.start, g.corner,
		d.Div(g.grab.scaleForSize), d.Div(g.grab.scaleForPos)))
	e.emit(EventResize, b, g.corner, p)
	e.checkInvariants("resize")
}

// armLongPress schedules child creation under rec's box at the press point.
// The press point is converted with the box's frame as it was when armed.
func (e *Editor) armLongPress(rec Record, down Vec2) {
	e.cancelLongPress()
	parentID := rec.Box.ID
	frame := rec.Frame()
	e.longPress = e.sched.AfterFunc(LongPress, func() {
		e.longPress = nil
		parent, ok := e.store.Lookup(parentID)
		if !ok || !parent.open {
			return
		}
		local := down.Sub(frame.Pos).Div(frame.Scale)
		id := e.store.CreateBox(parentID, childRectAt(local, parent.W, parent.H))
		e.longPressFired = true
		e.emit(EventBoxCreated, e.store.Box(id), CornerNone, down)
		e.checkInvariants("create")
	})
}

// cancelLongPress stops the pending long-press timer, if any.
func (e *Editor) cancelLongPress() {
	if e.longPress != nil {
		e.longPress.Stop()
		e.longPress = nil
	}
}
