package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/pixel-angler/constant"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestAfterFiresOnceWhenDue(t *testing.T) {
	clock := NewMockTimeProvider(epoch)
	s := NewScheduler(clock)

	fired := 0
	h := s.After(100*time.Millisecond, func(time.Time) { fired++ })

	s.Advance(clock.Advance(99 * time.Millisecond))
	if fired != 0 {
		t.Fatalf("fired early")
	}
	s.Advance(clock.Advance(time.Millisecond))
	s.Advance(clock.Advance(time.Second))
	if fired != 1 {
		t.Errorf("fired %d times, want 1", fired)
	}
	if s.Active(h) {
		t.Error("one-shot timer still registered")
	}
}

func TestEveryCatchUpIsBounded(t *testing.T) {
	clock := NewMockTimeProvider(epoch)
	s := NewScheduler(clock)

	fired := 0
	s.Every(16*time.Millisecond, func(time.Time) { fired++ })

	s.Advance(clock.Advance(time.Second))
	if fired != constant.MaxTimerCatchUp {
		t.Errorf("fired %d times after a long stall, want %d", fired, constant.MaxTimerCatchUp)
	}

	fired = 0
	s.Advance(clock.Advance(16 * time.Millisecond))
	if fired != 1 {
		t.Errorf("fired %d times after one period, want 1", fired)
	}
}

func TestTimersFireInDueOrder(t *testing.T) {
	clock := NewMockTimeProvider(epoch)
	s := NewScheduler(clock)

	var order []string
	s.After(30*time.Millisecond, func(time.Time) { order = append(order, "c") })
	s.After(10*time.Millisecond, func(time.Time) { order = append(order, "a") })
	s.After(20*time.Millisecond, func(time.Time) { order = append(order, "b") })

	s.Advance(clock.Advance(50 * time.Millisecond))
	if got := len(order); got != 3 || order[0] != "a" || order[1] != "b" || order[2] != "c" {
		t.Errorf("order = %v, want [a b c]", order)
	}
}

func TestCancelFromCallback(t *testing.T) {
	clock := NewMockTimeProvider(epoch)
	s := NewScheduler(clock)

	var second Handle
	secondFired := false
	s.After(10*time.Millisecond, func(time.Time) { s.Cancel(second) })
	second = s.After(20*time.Millisecond, func(time.Time) { secondFired = true })

	s.Advance(clock.Advance(time.Second))
	if secondFired {
		t.Error("cancelled timer fired")
	}
	if s.Pending() != 0 {
		t.Errorf("pending = %d, want 0", s.Pending())
	}
}

func TestTimerAddedDuringAdvanceWaits(t *testing.T) {
	clock := NewMockTimeProvider(epoch)
	s := NewScheduler(clock)

	inner := 0
	s.After(0, func(time.Time) {
		s.After(0, func(time.Time) { inner++ })
	})

	s.Advance(clock.Now())
	if inner != 0 {
		t.Fatal("timer registered during Advance fired in the same pass")
	}
	s.Advance(clock.Now())
	if inner != 1 {
		t.Errorf("inner fired %d times, want 1", inner)
	}
}

func TestFrameCallbacks(t *testing.T) {
	clock := NewMockTimeProvider(epoch)
	s := NewScheduler(clock)

	var order []int
	var second Handle
	s.OnFrame(func(time.Time) {
		order = append(order, 1)
		s.Cancel(second)
	})
	second = s.OnFrame(func(time.Time) { order = append(order, 2) })
	s.OnFrame(func(time.Time) { order = append(order, 3) })

	s.Frame(clock.Now())
	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Errorf("order = %v, want [1 3]", order)
	}

	s.Reset()
	if s.Pending() != 0 {
		t.Errorf("pending after reset = %d", s.Pending())
	}
	s.Cancel(0)
	s.Cancel(9999)
}
