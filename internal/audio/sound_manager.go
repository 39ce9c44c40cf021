package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate    = beep.SampleRate(44100)
	speakerBuffer = 100 * time.Millisecond
)

// SoundManager plays effects through a single mixer attached to the speaker.
// It is safe for concurrent use by several game sessions.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSoundManager creates a sound manager. volume is linear, 1 = full.
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the speaker. Calling it again is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(speakerBuffer)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds. The speaker itself stays open.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// PlayPickup queues the pickup chime. Without a speaker it does nothing.
func (sm *SoundManager) PlayPickup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(PickupChime(sampleRate, sm.volume))
	speaker.Unlock()
}
