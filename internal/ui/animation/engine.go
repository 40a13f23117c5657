package animation

import (
	"context"
	"sync"
	"time"
)

// Config contains breathing cycle timing values. Phases with zero
// duration are skipped.
type Config struct {
	Inhale time.Duration
	Hold   time.Duration
	Exhale time.Duration
	Rest   time.Duration

	FrameInterval time.Duration
}

// CycleLength returns the total duration of one breathing cycle.
func (config Config) CycleLength() time.Duration {
	return config.Inhale + config.Hold + config.Exhale + config.Rest
}

// FrameAt computes the frame for an elapsed time since the cycle start.
// It is a pure function of the configuration.
func (config Config) FrameAt(elapsed time.Duration) Frame {
	cycle := config.CycleLength()
	if cycle <= 0 {
		return Frame{Phase: PhaseRest, Scale: minScale}
	}
	offset := elapsed % cycle
	if offset < 0 {
		offset += cycle
	}

	phases := []struct {
		phase    Phase
		duration time.Duration
	}{
		{PhaseInhale, config.Inhale},
		{PhaseHold, config.Hold},
		{PhaseExhale, config.Exhale},
		{PhaseRest, config.Rest},
	}
	for _, step := range phases {
		if step.duration <= 0 {
			continue
		}
		if offset < step.duration {
			progress := float64(offset) / float64(step.duration)
			return Frame{
				Phase:    step.phase,
				Progress: progress,
				Scale:    scaleFor(step.phase, progress),
			}
		}
		offset -= step.duration
	}
	return Frame{Phase: PhaseRest, Scale: minScale}
}

func scaleFor(phase Phase, progress float64) float64 {
	switch phase {
	case PhaseInhale:
		return minScale + (maxScale-minScale)*progress
	case PhaseHold:
		return maxScale
	case PhaseExhale:
		return maxScale - (maxScale-minScale)*progress
	default:
		return minScale
	}
}

// Engine drives the breathing circle by pushing frames to a callback.
type Engine struct {
	mu          sync.Mutex
	config      Config
	updateFrame func(Frame)
	cancel      context.CancelFunc
}

// New creates a breathing engine.
func New(config Config, updateFrame func(Frame)) *Engine {
	if config.FrameInterval <= 0 {
		config.FrameInterval = 50 * time.Millisecond
	}
	return &Engine{config: config, updateFrame: updateFrame}
}

// UpdateConfig swaps the cycle timing. Takes effect on the next Start.
func (engine *Engine) UpdateConfig(config Config) {
	if config.FrameInterval <= 0 {
		config.FrameInterval = 50 * time.Millisecond
	}
	engine.mu.Lock()
	engine.config = config
	engine.mu.Unlock()
}

// Start begins the breathing loop. A running loop is replaced.
func (engine *Engine) Start(parent context.Context) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	config := engine.config
	engine.mu.Unlock()

	go engine.run(runCtx, config)
}

// Stop terminates any active loop.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func (engine *Engine) run(ctx context.Context, config Config) {
	start := time.Now()
	ticker := time.NewTicker(config.FrameInterval)
	defer ticker.Stop()

	engine.updateFrame(config.FrameAt(0))
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			engine.updateFrame(config.FrameAt(now.Sub(start)))
		}
	}
}
