package service

// Service defines the lifecycle interface for infrastructure subsystems
// Services own long-lived resources: audio output, the save writer, the spectator server
//
// Lifecycle:
//  1. Construction
//  2. Init(args...) - configuration resolved from flags, env and config file
//  3. Start() - launch background goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, flush and release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init and Start before this one
	Dependencies() []string

	// Init configures the service from optional args
	Init(args ...any) error

	// Start begins service operation
	Start() error

	// Stop halts service operation; must be idempotent
	Stop() error
}
