package audio

import (
	"log/slog"
	"sync/atomic"
)

// AudioService wraps SoundManager as a Service
// Handles graceful degradation when no audio backend is available
type AudioService struct {
	manager  *SoundManager
	logger   *slog.Logger
	disabled atomic.Bool
}

// NewService creates an audio service around a fresh sound manager
func NewService(logger *slog.Logger) *AudioService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AudioService{manager: NewSoundManager(), logger: logger}
}

// Name implements service.Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements service.Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: bool - disabled; args[1]: bool - initial mute state
func (s *AudioService) Init(args ...any) error {
	if len(args) > 0 {
		if disabled, ok := args[0].(bool); ok {
			s.disabled.Store(disabled)
		}
	}
	if len(args) > 1 {
		if muted, ok := args[1].(bool); ok {
			s.manager.SetMuted(muted)
		}
	}
	return nil
}

// Start opens the speaker; a missing backend disables audio without failing
func (s *AudioService) Start() error {
	if s.disabled.Load() {
		return nil
	}
	if err := s.manager.Initialize(); err != nil {
		s.logger.Warn("audio unavailable, continuing silently", "error", err)
		s.disabled.Store(true)
	}
	return nil
}

// Stop implements service.Service
func (s *AudioService) Stop() error {
	s.manager.Cleanup()
	return nil
}

// Sounds returns the cue player handed to the game; silent when disabled
func (s *AudioService) Sounds() *SoundManager {
	return s.manager
}

// Disabled reports whether audio is off by config or missing backend
func (s *AudioService) Disabled() bool {
	return s.disabled.Load()
}

// ToggleMute flips the mute flag and returns the new state
func (s *AudioService) ToggleMute() bool {
	muted := !s.manager.Muted()
	s.manager.SetMuted(muted)
	return muted
}
