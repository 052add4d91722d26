package engine

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/pixel-angler/constant"
	"github.com/lixenwraith/pixel-angler/status"
)

// Loop is the core's single logical thread
// A frame ticker advances the scheduler's timers, then runs its frame callbacks,
// then the after-frame hooks; other goroutines hand work in through Post
type Loop struct {
	clock    TimeProvider
	sched    *Scheduler
	interval time.Duration
	logger   *slog.Logger

	posts      chan func()
	afterFrame []func(now time.Time)

	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool

	statFrames *atomic.Int64
}

// NewLoop creates a loop driving sched at the given frame interval
func NewLoop(clock TimeProvider, sched *Scheduler, interval time.Duration, reg *status.Registry, logger *slog.Logger) *Loop {
	if interval <= 0 {
		interval = constant.FrameInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		clock:      clock,
		sched:      sched,
		interval:   interval,
		logger:     logger,
		posts:      make(chan func(), constant.PostQueueSize),
		stopChan:   make(chan struct{}),
		statFrames: reg.Counter(status.Frames),
	}
}

// Scheduler returns the scheduler owned by the loop goroutine
func (l *Loop) Scheduler() *Scheduler {
	return l.sched
}

// AfterFrame registers fn to run after every frame's callbacks; call before Run
func (l *Loop) AfterFrame(fn func(now time.Time)) {
	l.afterFrame = append(l.afterFrame, fn)
}

// Post queues fn for execution on the loop goroutine
// Blocks while the queue is full; returns false once the loop has stopped
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.stopChan:
		return false
	default:
	}

	select {
	case l.posts <- fn:
		return true
	case <-l.stopChan:
		return false
	}
}

// Run executes the loop until ctx is done or Stop is called
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return nil
	}
	defer l.running.Store(false)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Debug("loop started", "interval", l.interval)
	defer l.logger.Debug("loop stopped", "frames", l.statFrames.Load())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stopChan:
			return nil
		case fn := <-l.posts:
			fn()
		case <-ticker.C:
			l.Step(l.clock.Now())
		}
	}
}

// Step runs one frame at now; exported for deterministic tests driven by a mock clock
func (l *Loop) Step(now time.Time) {
	l.Drain()
	l.sched.Advance(now)
	l.sched.Frame(now)
	for _, fn := range l.afterFrame {
		fn(now)
	}
	l.statFrames.Add(1)
}

// Drain runs every queued post without blocking
func (l *Loop) Drain() {
	for {
		select {
		case fn := <-l.posts:
			fn()
		default:
			return
		}
	}
}

// Stop ends Run; idempotent
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
}
