package nestbox

import (
	"testing"
	"time"
)

func newTestScheduler() (*Scheduler, *ManualClock) {
	clock := NewManualClock(time.Unix(0, 0))
	return NewScheduler(clock), clock
}

func TestSchedulerRunsWhenDue(t *testing.T) {
	s, clock := newTestScheduler()
	calls := 0
	s.AfterFunc(600*time.Millisecond, func() { calls++ })

	clock.Advance(599 * time.Millisecond)
	if n := s.RunDue(); n != 0 || calls != 0 {
		t.Fatalf("early RunDue = %d, calls = %d, want 0, 0", n, calls)
	}
	clock.Advance(time.Millisecond)
	if n := s.RunDue(); n != 1 || calls != 1 {
		t.Fatalf("RunDue = %d, calls = %d, want 1, 1", n, calls)
	}
	if n := s.RunDue(); n != 0 || calls != 1 {
		t.Errorf("second RunDue = %d, calls = %d, want 0, 1", n, calls)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestTimerStopPreventsCallback(t *testing.T) {
	s, clock := newTestScheduler()
	called := false
	tm := s.AfterFunc(time.Second, func() { called = true })

	if !tm.Stop() {
		t.Error("first Stop() = false, want true")
	}
	if tm.Stop() {
		t.Error("second Stop() = true, want false")
	}
	clock.Advance(2 * time.Second)
	s.RunDue()
	if called {
		t.Error("stopped timer ran")
	}
	if tm.Pending() {
		t.Error("Pending() = true after Stop")
	}
}

func TestTimerStopAfterFireIsNoop(t *testing.T) {
	s, clock := newTestScheduler()
	tm := s.AfterFunc(time.Millisecond, func() {})
	clock.Advance(time.Millisecond)
	s.RunDue()

	if tm.Stop() {
		t.Error("Stop() after fire = true, want false")
	}
	var nilTimer *Timer
	if nilTimer.Stop() || nilTimer.Pending() {
		t.Error("nil timer should be inert")
	}
}

func TestCallbackCanStopLaterTimer(t *testing.T) {
	s, clock := newTestScheduler()
	var second *Timer
	secondRan := false
	s.AfterFunc(time.Millisecond, func() { second.Stop() })
	second = s.AfterFunc(time.Millisecond, func() { secondRan = true })

	clock.Advance(time.Millisecond)
	if n := s.RunDue(); n != 1 {
		t.Errorf("RunDue = %d, want 1", n)
	}
	if secondRan {
		t.Error("timer stopped by an earlier callback still ran")
	}
}

func TestCallbackScheduledTimerWaitsForNextRun(t *testing.T) {
	s, clock := newTestScheduler()
	nested := false
	s.AfterFunc(0, func() {
		s.AfterFunc(0, func() { nested = true })
	})

	clock.Advance(time.Millisecond)
	s.RunDue()
	if nested {
		t.Error("timer scheduled during RunDue ran in the same call")
	}
	s.RunDue()
	if !nested {
		t.Error("nested timer did not run on the next call")
	}
}

func TestRunDueOrder(t *testing.T) {
	s, clock := newTestScheduler()
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		s.AfterFunc(time.Millisecond, func() { order = append(order, i) })
	}
	clock.Advance(time.Millisecond)
	s.RunDue()
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Errorf("order = %v, want [0 1 2]", order)
	}
}

func TestNewSchedulerDefaultsToSystemClock(t *testing.T) {
	s := NewScheduler(nil)
	if _, ok := s.Clock().(SystemClock); !ok {
		t.Errorf("Clock() = %T, want SystemClock", s.Clock())
	}
}
