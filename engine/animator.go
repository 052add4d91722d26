package engine

import (
	"time"

	"github.com/lixenwraith/pixel-angler/constant"
	"github.com/lixenwraith/pixel-angler/physics"
)

// CastAnimator advances the bobber flight on its own periodic timer
type CastAnimator struct {
	sched  *Scheduler
	onDone func()

	cast   *physics.Cast
	handle Handle
}

// NewCastAnimator creates an idle animator; onDone runs on the loop goroutine after teardown
func NewCastAnimator(sched *Scheduler, onDone func()) *CastAnimator {
	return &CastAnimator{sched: sched, onDone: onDone}
}

// Start launches a fresh flight; ignored while one is running
func (a *CastAnimator) Start() {
	if a.Running() {
		return
	}
	a.cast = physics.NewCast()
	a.handle = a.sched.Every(constant.CastTickInterval, a.tick)
}

// Stop releases the tick timer; idempotent
func (a *CastAnimator) Stop() {
	a.sched.Cancel(a.handle)
	a.handle = 0
}

// Running reports whether the tick timer is registered
func (a *CastAnimator) Running() bool {
	return a.handle != 0
}

// Position returns the derived bobber position of the current or last flight
func (a *CastAnimator) Position() physics.Point {
	if a.cast == nil {
		return physics.Point{X: constant.CastStartX, Y: constant.CastStartY}
	}
	return a.cast.Position()
}

// Progress returns the flight progress in [0,1]
func (a *CastAnimator) Progress() float64 {
	if a.cast == nil {
		return 0
	}
	return a.cast.Progress()
}

func (a *CastAnimator) tick(time.Time) {
	if !a.cast.Advance(constant.CastStep) {
		return
	}
	a.Stop()
	if a.onDone != nil {
		a.onDone()
	}
}
