package constant

import "time"

// Loop timing
const (
	// FrameInterval is the per-frame callback period (~60 FPS)
	FrameInterval = 16 * time.Millisecond

	// MaxTimerCatchUp bounds how many periods a repeating timer fires in one advance
	MaxTimerCatchUp = 4

	// PostQueueSize is the capacity of the loop command queue
	PostQueueSize = 256
)

// Cast animation
const (
	// CastTickInterval is the cast progress timer period
	CastTickInterval = 16 * time.Millisecond

	// CastStep is added to cast progress every tick (25 ticks, ~400ms)
	CastStep = 0.04

	// CastArcHeight is the peak vertical offset of the bobber arc in scene percent
	CastArcHeight = 40.0
)

// Scene coordinates, percent of the scene area
const (
	CastStartX = 32.0
	CastStartY = 35.0
	CastEndX   = 82.0
	CastEndY   = 70.0

	// IdleBobberX/Y is the bobber rest point next to the rod
	IdleBobberX = 32.0
	IdleBobberY = 60.0

	// RodTipX/Y anchors the fishing line
	RodTipX = 35.0
	RodTipY = 32.0

	// LineSag is the slack line droop when not casting or reeling
	LineSag = 20.0

	// BobAmplitude and BobFrequency drive the floating bobber while waiting
	BobAmplitude = 2.0
	BobFrequency = 2.0
)

// Rod pose in degrees
const (
	RodAngleRelaxed = -15.0
	RodAngleLifting = -45.0
)

// State timers
const (
	// BiteDelayMin and BiteDelayMax bound the uniform wait before a bite
	BiteDelayMin = 2 * time.Second
	BiteDelayMax = 5 * time.Second

	// EscapedDisplayDelay is how long the escape message stays before returning to idle
	EscapedDisplayDelay = 2 * time.Second
)

// ShakeProgressThreshold triggers camera shake while losing the fish
const ShakeProgressThreshold = 25.0

// Content fetch
const (
	// ContentFetchTimeout bounds a single speculative content request
	ContentFetchTimeout = 20 * time.Second

	// DefaultContentModel is the generative model used when config does not name one
	DefaultContentModel = "gemini-2.5-flash"
)

// Feedback lines shown in the status bar per state
const (
	FeedbackIdle    = "HOLD SPACE TO CAST"
	FeedbackCasting = "CASTING..."
	FeedbackWaiting = "WAIT FOR IT..."
	FeedbackBiting  = "PRESS SPACE!"
	FeedbackReeling = "KEEP THE BAR ON THE FISH!"
	FeedbackCaught  = "CAUGHT!"
	FeedbackEscaped = "IT GOT AWAY..."
)
