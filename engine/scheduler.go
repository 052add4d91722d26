package engine

import (
	"time"

	"github.com/lixenwraith/pixel-angler/constant"
)

// Handle identifies a registered timer or frame callback; zero is never issued
type Handle uint64

type timer struct {
	id       Handle
	due      time.Time
	interval time.Duration // zero for one-shot
	fn       func(now time.Time)
}

type frameCallback struct {
	id Handle
	fn func(now time.Time)
}

// Scheduler holds the core's timers and per-frame callbacks
// Not safe for concurrent use; owned by the loop goroutine
type Scheduler struct {
	clock  TimeProvider
	nextID Handle
	timers []*timer
	frames []*frameCallback
}

// NewScheduler creates a scheduler reading due times from clock
func NewScheduler(clock TimeProvider) *Scheduler {
	return &Scheduler{clock: clock}
}

func (s *Scheduler) issue() Handle {
	s.nextID++
	return s.nextID
}

// After fires fn once, d after now
func (s *Scheduler) After(d time.Duration, fn func(now time.Time)) Handle {
	t := &timer{id: s.issue(), due: s.clock.Now().Add(d), fn: fn}
	s.timers = append(s.timers, t)
	return t.id
}

// Every fires fn each interval until cancelled
func (s *Scheduler) Every(interval time.Duration, fn func(now time.Time)) Handle {
	if interval <= 0 {
		interval = constant.FrameInterval
	}
	t := &timer{id: s.issue(), due: s.clock.Now().Add(interval), interval: interval, fn: fn}
	s.timers = append(s.timers, t)
	return t.id
}

// OnFrame registers fn to run on every frame, in registration order
func (s *Scheduler) OnFrame(fn func(now time.Time)) Handle {
	f := &frameCallback{id: s.issue(), fn: fn}
	s.frames = append(s.frames, f)
	return f.id
}

// Cancel releases a timer or frame callback; unknown and zero handles are ignored
// Safe to call from inside a callback
func (s *Scheduler) Cancel(h Handle) {
	if h == 0 {
		return
	}
	for i, t := range s.timers {
		if t.id == h {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
	for i, f := range s.frames {
		if f.id == h {
			s.frames = append(s.frames[:i], s.frames[i+1:]...)
			return
		}
	}
}

// Active reports whether h is still registered
func (s *Scheduler) Active(h Handle) bool {
	if h == 0 {
		return false
	}
	for _, t := range s.timers {
		if t.id == h {
			return true
		}
	}
	for _, f := range s.frames {
		if f.id == h {
			return true
		}
	}
	return false
}

// Advance fires every timer due at or before now, earliest first
// Timers registered during Advance wait for the next call; a periodic timer
// fires at most MaxTimerCatchUp times per call and then realigns to now
func (s *Scheduler) Advance(now time.Time) {
	limit := s.nextID
	fired := make(map[Handle]int)

	for {
		t := s.earliestDue(now, limit)
		if t == nil {
			return
		}

		if t.interval == 0 {
			s.Cancel(t.id)
		} else {
			fired[t.id]++
			if fired[t.id] >= constant.MaxTimerCatchUp {
				t.due = now.Add(t.interval)
			} else {
				t.due = t.due.Add(t.interval)
			}
		}
		t.fn(now)
	}
}

func (s *Scheduler) earliestDue(now time.Time, limit Handle) *timer {
	var best *timer
	for _, t := range s.timers {
		if t.id > limit || t.due.After(now) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.id < best.id) {
			best = t
		}
	}
	return best
}

// Frame runs the frame callbacks registered before this call
// A callback cancelled by an earlier one in the same frame does not run
func (s *Scheduler) Frame(now time.Time) {
	if len(s.frames) == 0 {
		return
	}
	batch := make([]*frameCallback, len(s.frames))
	copy(batch, s.frames)

	for _, f := range batch {
		if !s.Active(f.id) {
			continue
		}
		f.fn(now)
	}
}

// Reset releases every timer and frame callback
func (s *Scheduler) Reset() {
	s.timers = nil
	s.frames = nil
}

// Pending returns the number of registered timers and frame callbacks
func (s *Scheduler) Pending() int {
	return len(s.timers) + len(s.frames)
}
