package physics

import (
	"math"
	"testing"

	"github.com/lixenwraith/pixel-angler/constant"
)

func TestCastTrajectory(t *testing.T) {
	c := NewCast()

	start := c.Position()
	if start.X != constant.CastStartX || start.Y != constant.CastStartY {
		t.Errorf("start = %+v, want (%v,%v)", start, constant.CastStartX, constant.CastStartY)
	}

	ticks := 0
	peakY := start.Y
	for !c.Advance(constant.CastStep) {
		ticks++
		if p := c.Position(); p.Y < peakY {
			peakY = p.Y
		}
	}
	ticks++

	// 1/0.04 with float accumulation lands on 25 or 26
	if ticks < 25 || ticks > 26 {
		t.Errorf("cast took %d ticks, want ~25", ticks)
	}

	end := c.Position()
	if math.Abs(end.X-constant.CastEndX) > 1e-9 || math.Abs(end.Y-constant.CastEndY) > 1e-6 {
		t.Errorf("end = %+v, want (%v,%v)", end, constant.CastEndX, constant.CastEndY)
	}

	// The arc rises above the straight line: y decreases upward on screen
	if peakY >= start.Y {
		t.Errorf("peak y %v should be above start %v", peakY, start.Y)
	}
}

func TestCastMidpointArc(t *testing.T) {
	c := NewCastBetween(Point{0, 0}, Point{100, 0}, 10)
	c.Advance(0.5)
	p := c.Position()
	if math.Abs(p.X-50) > 1e-9 || math.Abs(p.Y+10) > 1e-9 {
		t.Errorf("midpoint = %+v, want (50,-10)", p)
	}
}
