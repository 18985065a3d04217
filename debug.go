package nestbox

// Tree-shape warning thresholds checked in debug mode.
const (
	debugMaxTreeDepth  = 32
	debugMaxChildCount = 1000
)

// SetDebugMode enables or disables debug mode. When enabled, gesture
// transitions and events are logged at debug level, and the store invariants
// are validated after every mutation, with violations logged at error level.
func (e *Editor) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// DebugMode reports whether debug mode is enabled.
func (e *Editor) DebugMode() bool {
	return e.debug
}

// checkInvariants runs the debug-mode checks after a mutation. No-op when
// debug mode is off.
func (e *Editor) checkInvariants(op string) {
	if !e.debug {
		return
	}
	if err := e.store.Validate(); err != nil {
		e.logger.Error("invariant violation", "op", op, "err", err)
	}
	e.debugCheckTreeShape()
}

// debugCheckTreeShape warns if any box is nested too deep or has too many
// children.
func (e *Editor) debugCheckTreeShape() {
	for _, rec := range e.Flatten() {
		if rec.Depth > debugMaxTreeDepth {
			e.logger.Warn("tree depth exceeds threshold",
				"box", rec.Box.ID, "depth", rec.Depth, "threshold", debugMaxTreeDepth)
		}
		if n := rec.Box.NumChildren(); n > debugMaxChildCount {
			e.logger.Warn("child count exceeds threshold",
				"box", rec.Box.ID, "children", n, "threshold", debugMaxChildCount)
		}
	}
}
