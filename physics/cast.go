package physics

import (
	"math"

	"github.com/lixenwraith/pixel-angler/constant"
)

// Point is a scene position in percent
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Cast is the bobber trajectory of one CASTING episode
// Position is derived from progress, never simulated
type Cast struct {
	progress float64
	from, to Point
	arc      float64
}

// NewCast starts a trajectory from the rod to the water rest point
func NewCast() *Cast {
	return NewCastBetween(
		Point{X: constant.CastStartX, Y: constant.CastStartY},
		Point{X: constant.CastEndX, Y: constant.CastEndY},
		constant.CastArcHeight,
	)
}

// NewCastBetween starts a trajectory with explicit endpoints and arc height
func NewCastBetween(from, to Point, arc float64) *Cast {
	return &Cast{from: from, to: to, arc: arc}
}

// Advance adds step to progress and reports completion
func (c *Cast) Advance(step float64) bool {
	c.progress += step
	return c.Done()
}

// Done reports whether progress reached 1
func (c *Cast) Done() bool {
	return c.progress >= 1
}

// Progress returns the raw scalar, which may overshoot 1 on the final tick
func (c *Cast) Progress() float64 {
	return c.progress
}

// Position interpolates linearly between endpoints, lifting y by a sine arc
func (c *Cast) Position() Point {
	p := min(c.progress, 1)
	return Point{
		X: lerp(c.from.X, c.to.X, p),
		Y: lerp(c.from.Y, c.to.Y, p) - math.Sin(p*math.Pi)*c.arc,
	}
}

// End returns the resting point the bobber snaps to on completion
func (c *Cast) End() Point {
	return c.to
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
