package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// SoundManager plays the minigame's cues through a single mixer
// Every method is safe before Initialize and after Cleanup
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *effects.Volume
	reel        *beep.Ctrl
	initialized bool
	muted       bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer:  mixer,
		volume: &effects.Volume{Streamer: mixer, Base: 2},
	}
}

// Initialize opens the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.volume)
	sm.initialized = true
	return nil
}

// Cleanup silences every sound; the speaker stays open for a later Initialize
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	if sm.reel != nil {
		sm.reel.Streamer = nil
	}
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Clear()
	sm.reel = nil
	sm.initialized = false
}

// SetMuted silences output without dropping queued cues
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = muted
	if !sm.initialized {
		sm.volume.Silent = muted
		return
	}
	speaker.Lock()
	sm.volume.Silent = muted
	speaker.Unlock()
}

// Muted reports the mute flag
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// play adds a one-shot streamer to the mixer
func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// PlaySplash plays the bobber landing
func (sm *SoundManager) PlaySplash() {
	sm.play(Splash(sampleRate))
}

// PlayBite plays the double plink of a bite
func (sm *SoundManager) PlayBite() {
	sm.play(Bite(sampleRate))
}

// PlayCatch plays the rising catch fanfare
func (sm *SoundManager) PlayCatch() {
	sm.play(Fanfare(sampleRate))
}

// PlayEscape plays the falling escape buzz
func (sm *SoundManager) PlayEscape() {
	sm.play(Escape(sampleRate))
}

// StartReel starts the reel hum
func (sm *SoundManager) StartReel() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	// If already playing, don't restart
	if sm.reel != nil {
		return
	}

	ctrl := &beep.Ctrl{Streamer: NewReelGenerator(sampleRate)}
	speaker.Lock()
	sm.reel = ctrl
	sm.mixer.Add(ctrl)
	speaker.Unlock()
}

// StopReel stops the reel hum; the mixer drops a Ctrl whose streamer is gone
func (sm *SoundManager) StopReel() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.reel == nil {
		return
	}
	speaker.Lock()
	sm.reel.Streamer = nil
	speaker.Unlock()
	sm.reel = nil
}

// Reeling reports whether the reel hum is active
func (sm *SoundManager) Reeling() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.reel != nil
}
