package nestbox

// syntheticKind is the kind of an injected input event.
type syntheticKind uint8

const (
	synthPress syntheticKind = iota
	synthMove
	synthRelease
	synthDoubleClick
	synthSecondaryClick
)

// syntheticEvent represents a single injected input event, in surface pixels.
type syntheticEvent struct {
	kind   syntheticKind
	point  Vec2
	button MouseButton
}

// InjectPress queues a press at p. Injected events are consumed one per
// Update call, before due timers run.
func (e *Editor) InjectPress(p Vec2, button MouseButton) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthPress, point: p, button: button})
}

// InjectMove queues pointer motion to p with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (e *Editor) InjectMove(p Vec2) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthMove, point: p})
}

// InjectRelease queues a release at p.
func (e *Editor) InjectRelease(p Vec2) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthRelease, point: p})
}

// InjectClick is a convenience that queues a primary press followed by a
// release at the same point. Consumes two frames.
func (e *Editor) InjectClick(p Vec2) {
	e.InjectPress(p, MouseButtonLeft)
	e.InjectRelease(p)
}

// InjectDoubleClick queues a double click at p.
func (e *Editor) InjectDoubleClick(p Vec2) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthDoubleClick, point: p})
}

// InjectSecondaryClick queues a secondary (context) click at p.
func (e *Editor) InjectSecondaryClick(p Vec2) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthSecondaryClick, point: p})
}

// InjectDrag queues a full drag sequence: press at from, frames-2 linearly
// interpolated moves ending exactly at to, and release at to. The total
// sequence consumes frames frames. Minimum frames is 3.
func (e *Editor) InjectDrag(from, to Vec2, frames int) {
	if frames < 3 {
		frames = 3
	}
	e.InjectPress(from, MouseButtonLeft)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		e.InjectMove(from.Add(to.Sub(from).Mul(t)))
	}
	e.InjectRelease(to)
}

// PendingInput returns the number of injected events not yet consumed.
func (e *Editor) PendingInput() int {
	return len(e.injectQueue)
}

// processInjectedInput pops one event from the inject queue and dispatches it.
// Returns true if an event was consumed.
func (e *Editor) processInjectedInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	switch evt.kind {
	case synthPress:
		e.PointerDown(evt.point, evt.button)
	case synthMove:
		e.PointerMove(evt.point)
	case synthRelease:
		e.PointerUp(evt.point)
	case synthDoubleClick:
		e.DoubleClick(evt.point)
	case synthSecondaryClick:
		e.SecondaryClick(evt.point)
	}
	return true
}
