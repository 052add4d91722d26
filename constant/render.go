package constant

import "time"

// Screen layout in cells
const (
	// StatusBarHeight is reserved at the bottom of the screen
	StatusBarHeight = 1

	// ReelColumnWidth is reserved on the right while the minigame is visible
	ReelColumnWidth = 10

	// CardWidth is the caught-fish card width including border
	CardWidth = 46

	// OverlayWidth is the inventory and shop panel width including border
	OverlayWidth = 56

	// MinScreenWidth and MinScreenHeight below which only a resize hint is drawn
	MinScreenWidth  = 40
	MinScreenHeight = 12
)

// Scene projection
const (
	// WaterLevel is the water surface in scene percent
	WaterLevel = 55.0

	// RodLength is the drawn rod length in scene percent
	RodLength = 15.0

	// LineSamples is the number of points sampled along the fishing line curve
	LineSamples = 32

	// ShakePeriod alternates the camera offset while the fish is winning
	ShakePeriod = 50 * time.Millisecond

	// WaveSpacing controls surface ripple density
	WaveSpacing = 7
)
