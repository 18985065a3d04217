package nestbox

import (
	"testing"
	"time"
)

func newTestEditor() (*Editor, *ManualClock) {
	clock := NewManualClock(time.Unix(0, 0))
	return NewEditor(EditorConfig{Clock: clock}), clock
}

// hold advances the clock by d and runs due timers.
func hold(e *Editor, clock *ManualClock, d time.Duration) {
	clock.Advance(d)
	e.Update()
}

func TestNewEditorRoot(t *testing.T) {
	e, _ := newTestEditor()
	root := e.Root()

	assertRect(t, "root", root.Bounds(), DefaultRootBounds)
	if !root.IsOpen() || root.Zoom() != 1 {
		t.Errorf("root open=%v zoom=%v, want true 1", root.IsOpen(), root.Zoom())
	}
	if root.Color != DefaultRootColor {
		t.Errorf("root Color = %v, want %v", root.Color, DefaultRootColor)
	}
	if e.Gesture() != "idle" {
		t.Errorf("Gesture() = %q, want idle", e.Gesture())
	}
	if err := e.Store().Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestNewEditorCustomRoot(t *testing.T) {
	e := NewEditor(EditorConfig{RootBounds: Rect{0, 0, 100, 50}, RootColor: Color{1, 0, 0}})
	assertRect(t, "root", e.Root().Bounds(), Rect{0, 0, 100, 50})
	if e.Root().Color != (Color{1, 0, 0}) {
		t.Errorf("root Color = %v", e.Root().Color)
	}
}

// --- Long press ---

func TestLongPressCreatesChild(t *testing.T) {
	tests := []struct {
		name string
		down Vec2
		want Rect
	}{
		{"centered", Vec2{40, 40}, Rect{16, 18, 16, 12}},
		{"near top-left", Vec2{21, 17}, Rect{0, 0, 16, 12}},
		{"near bottom-right", Vec2{75, 79}, Rect{48, 52, 16, 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, clock := newTestEditor()
			root := e.Store().Root()

			e.PointerDown(tt.down, MouseButtonLeft)
			if !e.LongPressArmed() {
				t.Fatal("long press not armed")
			}
			hold(e, clock, LongPress-time.Millisecond)
			if e.Store().Len() != 1 {
				t.Fatalf("child created early")
			}
			hold(e, clock, time.Millisecond)

			if e.Store().Len() != 2 {
				t.Fatalf("Len() = %d, want 2", e.Store().Len())
			}
			children := e.Store().Box(root).Children()
			if len(children) != 1 {
				t.Fatalf("root children = %v, want one", children)
			}
			child := e.Store().Box(children[0])
			assertRect(t, "child", child.Bounds(), tt.want)
			if child.IsOpen() {
				t.Error("new child should be closed")
			}
			if !e.LongPressFired() {
				t.Error("LongPressFired() = false after creation")
			}
			if tap := e.PointerUp(tt.down); tap {
				t.Error("release after long press reported a tap")
			}
			if e.LongPressFired() {
				t.Error("fired flag survived release")
			}
		})
	}
}

func TestLongPressFiresOnce(t *testing.T) {
	e, clock := newTestEditor()
	e.PointerDown(Vec2{40, 40}, MouseButtonLeft)
	hold(e, clock, LongPress)
	hold(e, clock, LongPress)
	hold(e, clock, LongPress)
	if e.Store().Len() != 2 {
		t.Errorf("Len() = %d, want 2", e.Store().Len())
	}
}

func TestLongPressInZoomedParent(t *testing.T) {
	e, clock := newTestEditor()
	e.Root().Open() // zoom 8, root world size 512

	// Surface (16+8*20, 16+8*30) is local (20, 30).
	e.PointerDown(Vec2{176, 256}, MouseButtonLeft)
	hold(e, clock, LongPress)

	child := e.Store().Box(e.Root().Children()[0])
	assertRect(t, "child", child.Bounds(), Rect{12, 24, 16, 12})
}

func TestLongPressCancelledByRelease(t *testing.T) {
	e, clock := newTestEditor()
	e.PointerDown(Vec2{40, 40}, MouseButtonLeft)
	hold(e, clock, 300*time.Millisecond)
	if tap := e.PointerUp(Vec2{40, 40}); !tap {
		t.Error("short press should be a tap")
	}
	hold(e, clock, time.Second)
	if e.Store().Len() != 1 {
		t.Errorf("Len() = %d, want 1", e.Store().Len())
	}
}

func TestLongPressCancelledByMove(t *testing.T) {
	e, clock := newTestEditor()
	e.PointerDown(Vec2{40, 40}, MouseButtonLeft)
	e.PointerMove(Vec2{43, 40})
	if e.LongPressArmed() {
		t.Error("long press still armed after move")
	}
	hold(e, clock, time.Second)
	if e.Store().Len() != 1 {
		t.Errorf("Len() = %d, want 1", e.Store().Len())
	}
}

func TestSmallMoveKeepsLongPress(t *testing.T) {
	e, clock := newTestEditor()
	e.PointerDown(Vec2{40, 40}, MouseButtonLeft)
	e.PointerMove(Vec2{41, 41}) // squared distance 2
	e.PointerMove(Vec2{42, 40}) // squared distance 4, not beyond
	if e.Gesture() != "pending" {
		t.Errorf("Gesture() = %q, want pending", e.Gesture())
	}
	hold(e, clock, LongPress)
	if e.Store().Len() != 2 {
		t.Errorf("Len() = %d, want 2", e.Store().Len())
	}
	assertRect(t, "root", e.Root().Bounds(), DefaultRootBounds)
}

func TestLongPressOnClosedBoxDoesNothing(t *testing.T) {
	e, clock := newTestEditor()
	child := e.Store().CreateBox(e.Store().Root(), Rect{0, 0, 20, 20})

	e.PointerDown(Vec2{26, 26}, MouseButtonLeft) // child body, child closed
	if target, _ := e.Target(); target != child {
		t.Fatalf("Target() = %d, want %d", target, child)
	}
	if e.LongPressArmed() {
		t.Error("long press armed on closed box")
	}
	hold(e, clock, time.Second)
	if e.Store().Len() != 2 {
		t.Errorf("Len() = %d, want 2", e.Store().Len())
	}
}

func TestLongPressSkippedWhenTargetClosedBeforeFire(t *testing.T) {
	e, clock := newTestEditor()
	e.PointerDown(Vec2{40, 40}, MouseButtonLeft)
	e.SecondaryClick(Vec2{40, 40})
	hold(e, clock, LongPress)

	if e.Store().Len() != 1 {
		t.Errorf("Len() = %d, want 1", e.Store().Len())
	}
	if e.LongPressFired() {
		t.Error("LongPressFired() = true for skipped creation")
	}
}

func TestSecondaryPressDoesNotArmLongPress(t *testing.T) {
	e, clock := newTestEditor()
	e.PointerDown(Vec2{40, 40}, MouseButtonRight)
	if e.Gesture() != "pending" {
		t.Errorf("Gesture() = %q, want pending", e.Gesture())
	}
	if e.LongPressArmed() {
		t.Error("secondary press armed long press")
	}
	hold(e, clock, time.Second)
	if tap := e.PointerUp(Vec2{40, 40}); tap {
		t.Error("secondary release reported a tap")
	}
	if e.Store().Len() != 1 {
		t.Errorf("Len() = %d, want 1", e.Store().Len())
	}
}

// --- Move ---

func TestPressOutsideIsIdle(t *testing.T) {
	e, _ := newTestEditor()
	e.PointerDown(Vec2{200, 200}, MouseButtonLeft)
	if e.Gesture() != "idle" {
		t.Errorf("Gesture() = %q, want idle", e.Gesture())
	}
	if _, ok := e.Target(); ok {
		t.Error("Target() ok = true, want false")
	}
	e.PointerMove(Vec2{210, 210})
	if tap := e.PointerUp(Vec2{210, 210}); tap {
		t.Error("press on nothing reported a tap")
	}
}

func TestMoveRoot(t *testing.T) {
	e, _ := newTestEditor()
	e.PointerDown(Vec2{40, 40}, MouseButtonLeft)
	e.PointerMove(Vec2{45, 38})
	if e.Gesture() != "dragging-move" {
		t.Fatalf("Gesture() = %q, want dragging-move", e.Gesture())
	}
	assertRect(t, "after first move", e.Root().Bounds(), Rect{21, 14, 64, 64})

	e.PointerMove(Vec2{30, 50})
	assertRect(t, "after second move", e.Root().Bounds(), Rect{6, 26, 64, 64})

	e.PointerUp(Vec2{30, 50})
	if e.Gesture() != "idle" {
		t.Errorf("Gesture() = %q, want idle", e.Gesture())
	}
	assertRect(t, "after release", e.Root().Bounds(), Rect{6, 26, 64, 64})
}

func TestMoveChildInZoomedParent(t *testing.T) {
	e, _ := newTestEditor()
	e.Root().Open()
	child := e.Store().CreateBox(e.Store().Root(), Rect{2, 2, 16, 12})
	// child world rect: (32, 32, 128, 96)

	e.PointerDown(Vec2{50, 50}, MouseButtonLeft)
	if target, _ := e.Target(); target != child {
		t.Fatalf("Target() = %d, want %d", target, child)
	}
	e.PointerMove(Vec2{66, 58})

	// Surface delta (16, 8) over the parent's scale of 8.
	assertRect(t, "child", e.Store().Box(child).Bounds(), Rect{4, 3, 16, 12})
	assertRect(t, "root", e.Root().Bounds(), DefaultRootBounds)
}

func TestMoveAfterLongPressStillMoves(t *testing.T) {
	e, clock := newTestEditor()
	e.PointerDown(Vec2{40, 40}, MouseButtonLeft)
	hold(e, clock, LongPress)
	e.PointerMove(Vec2{50, 40})
	assertRect(t, "root", e.Root().Bounds(), Rect{26, 16, 64, 64})
}

// --- Resize ---

func TestResizeTopRightScenario(t *testing.T) {
	e, _ := newTestEditor()
	child := e.Store().CreateBox(e.Store().Root(), Rect{10, 10, 20, 20})
	e.Store().Box(child).open = true // handles at scale 1
	// child world rect: (26, 26, 20, 20); tr corner at (46, 26)

	e.PointerDown(Vec2{46, 26}, MouseButtonLeft)
	if e.Gesture() != "dragging-resize" {
		t.Fatalf("Gesture() = %q, want dragging-resize", e.Gesture())
	}
	if e.LongPressArmed() {
		t.Error("long press armed during resize")
	}
	e.PointerMove(Vec2{41, 29})

	b := e.Store().Box(child)
	assertNear(t, "X", b.X, 10)
	assertNear(t, "Y", b.Y, 13)
	assertNear(t, "W", b.W, 15)
	assertNear(t, "H", b.H, 17)
}

func TestResizeUsesBothScales(t *testing.T) {
	e, _ := newTestEditor()
	e.Root().Open() // world rect (16, 16, 512, 512)

	e.PointerDown(Vec2{528, 528}, MouseButtonLeft)
	e.PointerMove(Vec2{544, 536})
	assertRect(t, "br", e.Root().Bounds(), Rect{16, 16, 66, 65})
	e.PointerUp(Vec2{544, 536})

	// The tl corner moves the origin in the parent's space (scale 1) and
	// the size in the box's own space (scale 8).
	e.PointerDown(Vec2{16, 16}, MouseButtonLeft)
	e.PointerMove(Vec2{24, 24})
	assertRect(t, "tl", e.Root().Bounds(), Rect{24, 24, 65, 64})
}

func TestResizeClampsAtMinimum(t *testing.T) {
	e, _ := newTestEditor()
	e.PointerDown(Vec2{16, 16}, MouseButtonLeft)
	e.PointerMove(Vec2{100, 100})

	b := e.Root()
	assertNear(t, "W", b.W, MinBoxSize)
	assertNear(t, "H", b.H, MinBoxSize)
	assertNear(t, "right edge", b.X+b.W, 80)
	assertNear(t, "bottom edge", b.Y+b.H, 80)
}

func TestCornerBeatsChildBody(t *testing.T) {
	e, _ := newTestEditor()
	root := e.Store().Root()
	child := e.Store().CreateBox(root, Rect{0, 0, 20, 20})
	// Closed child covers the root's tl corner.
	e.PointerDown(Vec2{17, 17}, MouseButtonLeft)
	target, _ := e.Target()
	if target != root || e.Gesture() != "dragging-resize" {
		t.Errorf("press = %d %q, want root resize (child %d)", target, e.Gesture(), child)
	}
}

// --- Open / close ---

func TestDoubleClickOpensSecondaryCloses(t *testing.T) {
	e, _ := newTestEditor()
	child := e.Store().CreateBox(e.Store().Root(), Rect{10, 10, 20, 20})
	before := ResolveBox(e.Store(), child).WorldPos

	e.DoubleClick(Vec2{30, 30})
	b := e.Store().Box(child)
	if !b.IsOpen() || b.Zoom() != OpenZoom {
		t.Errorf("after double click open=%v zoom=%v", b.IsOpen(), b.Zoom())
	}
	if got := ResolveBox(e.Store(), child).WorldPos; got != before {
		t.Errorf("WorldPos after open = %v, want %v", got, before)
	}

	e.SecondaryClick(Vec2{30, 30})
	if b.IsOpen() || b.Zoom() != 1 {
		t.Errorf("after secondary click open=%v zoom=%v", b.IsOpen(), b.Zoom())
	}
	if got := ResolveBox(e.Store(), child).WorldPos; got != before {
		t.Errorf("WorldPos after close = %v, want %v", got, before)
	}
}

func TestOpenCloseOnNothingIsNoop(t *testing.T) {
	e, _ := newTestEditor()
	var events int
	e.OnEvent(func(BoxEvent) { events++ })
	e.DoubleClick(Vec2{500, 500})
	e.SecondaryClick(Vec2{500, 500})
	if events != 0 {
		t.Errorf("events = %d, want 0", events)
	}
	if !e.Root().IsOpen() {
		t.Error("root closed by a miss")
	}
}

func TestEditorFlatten(t *testing.T) {
	e, clock := newTestEditor()
	e.PointerDown(Vec2{40, 40}, MouseButtonLeft)
	hold(e, clock, LongPress)
	e.PointerUp(Vec2{40, 40})

	recs := e.Flatten()
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	if recs[0].Box.ID != e.Store().Root() || recs[1].Depth != 1 {
		t.Errorf("Flatten order = %d, %d", recs[0].Box.ID, recs[1].Box.ID)
	}
}

func TestDebugModeKeepsStoreValid(t *testing.T) {
	e, clock := newTestEditor()
	e.SetDebugMode(true)
	e.PointerDown(Vec2{40, 40}, MouseButtonLeft)
	hold(e, clock, LongPress)
	e.PointerUp(Vec2{40, 40})
	e.PointerDown(Vec2{80, 80}, MouseButtonLeft)
	e.PointerMove(Vec2{0, 0})
	e.PointerUp(Vec2{0, 0})
	if err := e.Store().Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
