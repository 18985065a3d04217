package nestbox

// EventSink is the interface for optional event forwarding (for example to an
// ECS world). When set on an Editor, every editor event is forwarded.
type EventSink interface {
	EmitEvent(event BoxEvent)
}

// BoxEvent describes a change the Editor made to the scene.
type BoxEvent struct {
	Type   EventType
	Box    BoxID
	Parent BoxID
	// Bounds is the box's local rectangle after the change.
	Bounds Rect
	// Corner is set for resize events.
	Corner Corner
	// Point is the pointer position in surface pixels that caused the event.
	Point Vec2
}

type eventHandler struct {
	id uint32
	fn func(BoxEvent)
}

type handlerRegistry struct {
	handlers []eventHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id  uint32
	reg *handlerRegistry
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			h.reg.handlers = s[:len(s)-1]
			return
		}
	}
}

// OnEvent registers a callback that receives every editor event.
func (e *Editor) OnEvent(fn func(BoxEvent)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.handlers = append(e.handlers.handlers, eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers}
}

// SetEventSink sets the optional event bridge.
func (e *Editor) SetEventSink(sink EventSink) {
	e.sink = sink
}

func (e *Editor) emit(t EventType, b *Box, corner Corner, pt Vec2) {
	ev := BoxEvent{
		Type:   t,
		Box:    b.ID,
		Parent: b.Parent,
		Bounds: b.Bounds(),
		Corner: corner,
		Point:  pt,
	}
	if e.debug {
		e.logger.Debug("event",
			"type", t.String(),
			"box", b.ID,
			"x", b.X, "y", b.Y, "w", b.W, "h", b.H,
			"corner", corner.String())
	}
	// Callbacks first, then the sink.
	for _, h := range e.handlers.handlers {
		h.fn(ev)
	}
	if e.sink != nil {
		e.sink.EmitEvent(ev)
	}
}
