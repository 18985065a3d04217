package nestbox

import "time"

// Clock reports the current time. The Editor reads it to arm and fire timers.
type Clock interface {
	Now() time.Time
}

// SystemClock is a Clock backed by time.Now.
type SystemClock struct{}

// Now returns the wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock that only moves when told to. Used by scripted
// replay and tests.
type ManualClock struct {
	now time.Time
}

// NewManualClock creates a manual clock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// Timer is a one-shot callback owned by a Scheduler. The stopped flag is the
// cancellation token: the scheduler checks it immediately before running fn.
type Timer struct {
	due     time.Time
	fn      func()
	stopped bool
	fired   bool
}

// Stop cancels the timer. It reports whether the call prevented the callback
// from running. Stopping a fired or stopped timer is a no-op.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Pending reports whether the timer is still waiting to fire.
func (t *Timer) Pending() bool {
	return t != nil && !t.stopped && !t.fired
}

// Scheduler runs deferred callbacks on the caller's thread. Nothing runs
// until RunDue is called, so callbacks are ordered with respect to the pointer
// handlers that share the same loop.
type Scheduler struct {
	clock   Clock
	pending []*Timer
}

// NewScheduler creates a scheduler reading time from clock.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{clock: clock}
}

// Clock returns the scheduler's clock.
func (s *Scheduler) Clock() Clock {
	return s.clock
}

// AfterFunc schedules fn to run on the first RunDue call at least d after now.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) *Timer {
	t := &Timer{due: s.clock.Now().Add(d), fn: fn}
	s.pending = append(s.pending, t)
	return t
}

// RunDue runs every timer whose due time has passed, in scheduling order,
// and returns how many callbacks ran. Stopped timers are dropped unrun.
func (s *Scheduler) RunDue() int {
	if len(s.pending) == 0 {
		return 0
	}
	now := s.clock.Now()
	ran := 0
	// Callbacks may schedule new timers; only the timers present at entry are
	// considered this call. A callback may also stop a later timer, so the
	// token is read at the moment each timer is reached.
	n := len(s.pending)
	for i := 0; i < n; i++ {
		t := s.pending[i]
		if t.stopped || t.due.After(now) {
			continue
		}
		t.fired = true
		t.fn()
		ran++
	}
	s.compact()
	return ran
}

// Len returns the number of timers still waiting to fire.
func (s *Scheduler) Len() int {
	n := 0
	for _, t := range s.pending {
		if t.Pending() {
			n++
		}
	}
	return n
}

// compact drops fired and stopped timers, nil-ing the tail so the backing
// array does not retain them.
func (s *Scheduler) compact() {
	kept := s.pending[:0]
	for _, t := range s.pending {
		if t.Pending() {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.pending); i++ {
		s.pending[i] = nil
	}
	s.pending = kept
}
