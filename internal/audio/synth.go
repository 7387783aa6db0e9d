package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const defaultSampleRate = beep.SampleRate(44100)

// Synth plays synthesized cues through the system speaker.
type Synth struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	initialized bool
}

// NewSynth creates a speaker sink. volume is linear in (0, 1].
func NewSynth(volume float64) *Synth {
	return &Synth{
		rate:   defaultSampleRate,
		volume: volume,
		mixer:  &beep.Mixer{},
	}
}

// Initialize opens the audio device and starts the mixer.
func (s *Synth) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(s.rate, s.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play queues the cue on the mixer. Unknown cues and an uninitialized
// device are ignored.
func (s *Synth) Play(c Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	st := Effect(c, s.rate, s.volume)
	if st == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences every queued cue and releases the device.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}
