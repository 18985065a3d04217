package nestbox

import (
	"testing"
	"time"
)

func TestInjectClick(t *testing.T) {
	e, _ := newTestEditor()
	e.InjectClick(Vec2{40, 40})
	if e.PendingInput() != 2 {
		t.Fatalf("PendingInput() = %d, want 2", e.PendingInput())
	}

	// Frame 1: press
	e.Update()
	if e.PendingInput() != 1 {
		t.Fatalf("PendingInput() = %d after frame 1, want 1", e.PendingInput())
	}
	if e.Gesture() != "pending" {
		t.Errorf("Gesture() = %q after press, want pending", e.Gesture())
	}

	// Frame 2: release
	e.Update()
	if e.PendingInput() != 0 {
		t.Fatalf("PendingInput() = %d after frame 2, want 0", e.PendingInput())
	}
	if e.Gesture() != "idle" {
		t.Errorf("Gesture() = %q after release, want idle", e.Gesture())
	}
}

func TestInjectDrag(t *testing.T) {
	e, _ := newTestEditor()
	var moves []Vec2
	e.OnEvent(func(ev BoxEvent) {
		if ev.Type == EventMove {
			moves = append(moves, ev.Point)
		}
	})

	e.InjectDrag(Vec2{40, 40}, Vec2{52, 40}, 5)
	if e.PendingInput() != 5 {
		t.Fatalf("PendingInput() = %d, want 5", e.PendingInput())
	}
	for i := 0; i < 5; i++ {
		e.Update()
	}

	assertRect(t, "root", e.Root().Bounds(), Rect{28, 16, 64, 64})
	want := []Vec2{{44, 40}, {48, 40}, {52, 40}}
	if len(moves) != len(want) {
		t.Fatalf("moves = %v, want %v", moves, want)
	}
	for i := range want {
		assertNear(t, "move X", moves[i].X, want[i].X)
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	e, _ := newTestEditor()
	e.InjectDrag(Vec2{40, 40}, Vec2{50, 50}, 0)
	if e.PendingInput() != 3 {
		t.Errorf("PendingInput() = %d, want 3", e.PendingInput())
	}
}

func TestInjectDoubleAndSecondaryClick(t *testing.T) {
	e, _ := newTestEditor()
	e.InjectDoubleClick(Vec2{40, 40})
	e.Update()
	if e.Root().Zoom() != OpenZoom {
		t.Errorf("Zoom() = %v after double click, want %v", e.Root().Zoom(), OpenZoom)
	}
	e.InjectSecondaryClick(Vec2{40, 40})
	e.Update()
	if e.Root().IsOpen() {
		t.Error("root still open after secondary click")
	}
}

func TestInjectedLongPress(t *testing.T) {
	e, clock := newTestEditor()
	e.InjectPress(Vec2{40, 40}, MouseButtonLeft)
	e.Update()
	hold(e, clock, LongPress)
	e.InjectRelease(Vec2{40, 40})
	e.Update()

	if e.Store().Len() != 2 {
		t.Errorf("Len() = %d, want 2", e.Store().Len())
	}
}

func TestUpdateProcessesOneEventPerFrame(t *testing.T) {
	e, clock := newTestEditor()
	e.InjectPress(Vec2{40, 40}, MouseButtonLeft)
	e.InjectRelease(Vec2{40, 40})
	clock.Advance(time.Second)
	e.Update()
	// Press consumed and long press armed from the current time.
	if e.PendingInput() != 1 || !e.LongPressArmed() {
		t.Errorf("PendingInput() = %d, armed = %v, want 1 true", e.PendingInput(), e.LongPressArmed())
	}
}
