package physics

import (
	"github.com/lixenwraith/pixel-angler/constant"
	"github.com/lixenwraith/pixel-angler/gear"
)

// Source is a uniform [0,1) random source
type Source interface {
	Float64() float64
}

// Outcome is the terminal signal of a reel step
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "Win"
	case OutcomeLoss:
		return "Loss"
	default:
		return "None"
	}
}

// Reel is the mutable physics state of one REELING episode
// Fish and bar share the 0..100 lateral axis; positions are entity centers
type Reel struct {
	stats gear.Stats
	rng   Source

	FishPos    float64
	FishVel    float64
	FishTarget float64

	BarPos float64
	BarVel float64

	Progress float64
	Overlap  bool

	Ticks uint64

	// done latches after the first terminal outcome
	done bool
}

// NewReel creates fresh episode state; stats are copied and never re-read
func NewReel(stats gear.Stats, rng Source) *Reel {
	return &Reel{
		stats:      stats,
		rng:        rng,
		FishPos:    constant.ReelStartPosition,
		FishTarget: constant.ReelStartPosition,
		BarPos:     constant.ReelStartPosition,
		Progress:   constant.ReelStartProgress,
		// Episode opens with the bar centered on the fish
		Overlap: true,
	}
}

// Stats returns the gear snapshot captured at episode start
func (r *Reel) Stats() gear.Stats {
	return r.stats
}

// Done reports whether a terminal outcome has been emitted
func (r *Reel) Done() bool {
	return r.done
}

// Step advances one tick. Returns OutcomeWin or OutcomeLoss exactly once per reel,
// OutcomeNone otherwise; after the terminal tick Step is inert
func (r *Reel) Step(lift bool) Outcome {
	if r.done {
		return OutcomeNone
	}
	r.Ticks++

	r.stepFish()
	r.stepBar(lift)

	r.Overlap = Overlaps(
		SpanAt(r.BarPos, r.stats.BarWidth),
		SpanAt(r.FishPos, constant.FishWidth),
	)

	if r.Overlap {
		r.Progress = min(constant.ReelProgressMax, r.Progress+r.stats.CatchGain)
	} else {
		r.Progress = max(0, r.Progress-constant.ProgressDecay)
	}

	switch {
	case r.Progress >= constant.ReelProgressMax:
		r.done = true
		return OutcomeWin
	case r.Progress <= 0:
		r.done = true
		return OutcomeLoss
	}
	return OutcomeNone
}

func (r *Reel) stepFish() {
	lo, hi := travel(constant.FishWidth)

	if r.rng.Float64() < constant.FishWanderChance {
		r.FishTarget = lo + r.rng.Float64()*(hi-lo)
	}

	r.FishVel += (r.FishTarget - r.FishPos) * constant.FishSpring
	r.FishVel += (r.rng.Float64() - 0.5) * constant.FishJitter
	r.FishVel *= constant.FishDamping
	r.FishPos += r.FishVel

	// Soft bounce keeps the fish erratic at the edges
	if pos, clamped := clampTravel(r.FishPos, constant.FishWidth); clamped {
		r.FishPos = pos
		r.FishVel *= constant.FishBounce
	}
}

func (r *Reel) stepBar(lift bool) {
	if lift {
		r.BarVel += constant.BarLift
	} else {
		r.BarVel -= constant.BarGravity
	}
	r.BarVel *= r.stats.Stability
	r.BarPos += r.BarVel

	// Hard stop: the bar is mechanical
	if pos, clamped := clampTravel(r.BarPos, r.stats.BarWidth); clamped {
		r.BarPos = pos
		r.BarVel = 0
	}
}
