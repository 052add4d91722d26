package engine

import (
	"time"

	"github.com/lixenwraith/pixel-angler/gear"
	"github.com/lixenwraith/pixel-angler/physics"
)

// Simulator steps one reel episode per frame on a frame callback it owns
type Simulator struct {
	sched  *Scheduler
	rng    physics.Source
	onWin  func()
	onLose func()

	reel   *physics.Reel
	handle Handle
	lift   bool
}

// NewSimulator creates an idle simulator; terminal callbacks run on the loop goroutine
func NewSimulator(sched *Scheduler, rng physics.Source, onWin, onLose func()) *Simulator {
	return &Simulator{sched: sched, rng: rng, onWin: onWin, onLose: onLose}
}

// Start begins a fresh episode with stats captured by value; ignored while running
func (s *Simulator) Start(stats gear.Stats) {
	if s.Running() {
		return
	}
	s.reel = physics.NewReel(stats, s.rng)
	s.lift = false
	s.handle = s.sched.OnFrame(s.step)
}

// Stop releases the frame callback; the last reel state stays readable. Idempotent
func (s *Simulator) Stop() {
	s.sched.Cancel(s.handle)
	s.handle = 0
	s.lift = false
}

// Running reports whether the frame callback is registered
func (s *Simulator) Running() bool {
	return s.handle != 0
}

// SetLift engages or releases the bar lift consumed by the next step
func (s *Simulator) SetLift(on bool) {
	s.lift = on
}

// Lifting reports the lift flag
func (s *Simulator) Lifting() bool {
	return s.lift
}

// Reel returns the current or last episode state, nil before the first Start
// Callers outside the loop goroutine must use the published snapshot instead
func (s *Simulator) Reel() *physics.Reel {
	return s.reel
}

func (s *Simulator) step(time.Time) {
	switch s.reel.Step(s.lift) {
	case physics.OutcomeWin:
		s.Stop()
		if s.onWin != nil {
			s.onWin()
		}
	case physics.OutcomeLoss:
		s.Stop()
		if s.onLose != nil {
			s.onLose()
		}
	}
}
