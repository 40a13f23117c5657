// Package audio plays the short completion tone. The tone is generated,
// so no sound assets ship with the binary.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/generators"
	"github.com/faiface/beep/speaker"
)

const (
	chimeFrequency = 880
	chimeDuration  = 300 * time.Millisecond
)

// Chime owns the speaker and plays a single soft tone on demand.
type Chime struct {
	mu         sync.Mutex
	sampleRate beep.SampleRate
	ready      bool
}

// NewChime initializes the speaker. Audio failure is not fatal: Play
// becomes a no-op and the error is returned for logging.
func NewChime() (*Chime, error) {
	sampleRate := beep.SampleRate(44100)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &Chime{}, fmt.Errorf("init speaker: %w", err)
	}
	return &Chime{sampleRate: sampleRate, ready: true}, nil
}

// Play sounds the completion tone. Safe to call from any goroutine.
func (chime *Chime) Play() {
	chime.mu.Lock()
	ready := chime.ready
	sampleRate := chime.sampleRate
	chime.mu.Unlock()
	if !ready {
		return
	}

	tone, err := generators.SinTone(sampleRate, chimeFrequency)
	if err != nil {
		return
	}
	quiet := &effects.Volume{
		Streamer: beep.Take(sampleRate.N(chimeDuration), tone),
		Base:     2,
		Volume:   -2,
	}
	speaker.Play(quiet)
}
