// Package clock provides a deterministic, single-threaded timer scheduler.
//
// Game state machines own a Scheduler and are driven by calling Advance with
// the elapsed time. Callbacks run synchronously inside Advance, in due order,
// so state owned by the caller never needs locking. The platform feeds wall
// time from its tick loop; tests feed exact virtual time.
package clock

import "time"

// Timer is a pending one-shot or interval callback.
type Timer struct {
	s       *Scheduler
	due     time.Duration
	every   time.Duration // 0 for one-shot timers
	seq     uint64
	fn      func()
	stopped bool
}

// Stop cancels the timer. Returns true if the timer was still pending.
// Stopping from inside the timer's own callback prevents further repeats.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped {
		return false
	}
	t.stopped = true
	t.s.remove(t)
	return true
}

// Active reports whether the timer will still fire.
func (t *Timer) Active() bool {
	return t != nil && !t.stopped
}

// Scheduler holds timers against a virtual clock that only moves on Advance.
// It is not safe for concurrent use.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	timers []*Timer
}

// New creates a scheduler at virtual time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once, d from now.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	return s.add(&Timer{due: s.now + d, fn: fn})
}

// Every schedules fn to run every d, first firing d from now.
// Panics if d is not positive.
func (s *Scheduler) Every(d time.Duration, fn func()) *Timer {
	if d <= 0 {
		panic("clock: non-positive interval")
	}
	return s.add(&Timer{due: s.now + d, every: d, fn: fn})
}

// Advance moves the clock forward by d, firing every timer that falls due.
// Timers fire in (due time, scheduling order). Callbacks may schedule or stop
// other timers; a timer scheduled inside the window fires in the same call.
func (s *Scheduler) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	target := s.now + d

	for {
		t := s.next(target)
		if t == nil {
			break
		}
		s.now = t.due
		if t.every > 0 {
			t.due += t.every
			s.seq++
			t.seq = s.seq
		} else {
			t.stopped = true
			s.remove(t)
		}
		t.fn()
	}

	s.now = target
}

// StopAll cancels every pending timer.
func (s *Scheduler) StopAll() {
	for _, t := range s.timers {
		t.stopped = true
	}
	s.timers = nil
}

// Pending returns the number of timers that will still fire.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

func (s *Scheduler) add(t *Timer) *Timer {
	s.seq++
	t.s = s
	t.seq = s.seq
	s.timers = append(s.timers, t)
	return t
}

// next returns the earliest timer due at or before target.
func (s *Scheduler) next(target time.Duration) *Timer {
	var best *Timer
	for _, t := range s.timers {
		if t.due > target {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) remove(t *Timer) {
	for i, other := range s.timers {
		if other == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}
