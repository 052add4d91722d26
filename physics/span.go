package physics

import "github.com/lixenwraith/pixel-angler/constant"

// Span is a closed interval on the lateral axis
type Span struct {
	Lo, Hi float64
}

// SpanAt builds the interval covered by an entity centered at pos
func SpanAt(pos, width float64) Span {
	half := width / 2
	return Span{Lo: pos - half, Hi: pos + half}
}

// Overlaps reports whether two spans intersect with positive length
func Overlaps(a, b Span) bool {
	return a.Lo < b.Hi && a.Hi > b.Lo
}

// travel returns the valid center range for an entity of the given width
func travel(width float64) (lo, hi float64) {
	half := width / 2
	return half, constant.ReelSpan - half
}

// clampTravel pins a center into its travel range, reporting whether it moved
func clampTravel(pos, width float64) (float64, bool) {
	lo, hi := travel(width)
	switch {
	case pos < lo:
		return lo, true
	case pos > hi:
		return hi, true
	}
	return pos, false
}

// Travel exposes the center range for renderers and tests
func Travel(width float64) (lo, hi float64) {
	return travel(width)
}
