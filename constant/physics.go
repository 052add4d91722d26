package constant

// Reel minigame lateral space is 0..100 on both axes of the track
const (
	// ReelSpan is the full travel range of the track in percent
	ReelSpan = 100.0

	// FishWidth is the lateral size of the target fish in percent
	FishWidth = 10.0

	// ReelStartPosition is where both bar and fish begin an episode
	ReelStartPosition = 50.0

	// ReelStartProgress is the catch meter value at REELING entry
	ReelStartProgress = 30.0

	// ReelProgressMax is the win threshold and the upper clamp of the meter
	ReelProgressMax = 100.0
)

// Fish motion
const (
	// FishWanderChance is the per-tick probability of redrawing the target
	FishWanderChance = 0.03

	// FishSpring pulls velocity toward the target proportionally to distance
	FishSpring = 0.005

	// FishJitter is the full width of the uniform velocity noise, centered on zero
	FishJitter = 0.5

	// FishDamping is applied to velocity after spring and jitter
	FishDamping = 0.95

	// FishBounce multiplies velocity when the fish hits a track edge
	FishBounce = -0.5
)

// Bar motion, gear-independent part
const (
	// BarLift is added to bar velocity per tick while lift is engaged
	BarLift = 0.6

	// BarGravity is subtracted from bar velocity per tick while lift is released
	BarGravity = 0.4

	// ProgressDecay is lost per tick while bar and fish do not overlap
	ProgressDecay = 0.15
)
