package session

import (
	"fmt"
	"sync"
	"time"

	"mindhaven/internal/core/model"
)

// Options contains runtime options for Timer.
type Options struct {
	TickInterval time.Duration
}

// Timer is a state machine for a single focus session countdown.
// All operations are total: invalid transitions are no-ops, not errors.
type Timer struct {
	mu        sync.Mutex
	config    model.SessionConfig
	options   Options
	state     State
	remaining time.Duration
	stopCh    chan struct{}
	events    []chan Event
}

// New creates a Timer in the Idle state with the full duration remaining.
func New(config model.SessionConfig, options Options) *Timer {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if config.Duration <= 0 {
		config.Duration = 25 * time.Minute
	}
	return &Timer{
		config:    config,
		options:   options,
		state:     StateIdle,
		remaining: config.Duration,
	}
}

// Subscribe registers a new observer channel.
func (timer *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	timer.mu.Lock()
	timer.events = append(timer.events, ch)
	timer.mu.Unlock()
	return ch
}

// State returns the current state.
func (timer *Timer) State() State {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.state
}

// Remaining returns the time left in the session.
func (timer *Timer) Remaining() time.Duration {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.remaining
}

// Duration returns the configured session length.
func (timer *Timer) Duration() time.Duration {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.config.Duration
}

// Start launches the ticking loop. Valid from Idle or Paused;
// a no-op while Running or after completion.
func (timer *Timer) Start() {
	timer.mu.Lock()
	if timer.state != StateIdle && timer.state != StatePaused {
		timer.mu.Unlock()
		return
	}
	timer.state = StateRunning
	stopCh := make(chan struct{})
	timer.stopCh = stopCh
	remaining := timer.remaining
	timer.mu.Unlock()

	timer.emit(Event{
		Type:      EventStateChange,
		State:     StateRunning,
		Remaining: remaining,
		At:        time.Now(),
	})

	go timer.run(stopCh)
}

// Pause freezes the countdown. Valid from Running only.
func (timer *Timer) Pause() {
	timer.mu.Lock()
	if timer.state != StateRunning {
		timer.mu.Unlock()
		return
	}
	timer.state = StatePaused
	stopCh := timer.stopCh
	timer.stopCh = nil
	remaining := timer.remaining
	timer.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}
	timer.emit(Event{
		Type:      EventStateChange,
		State:     StatePaused,
		Remaining: remaining,
		At:        time.Now(),
	})
}

// Reset stops ticking and restores the full duration. Valid from any state.
func (timer *Timer) Reset() {
	timer.mu.Lock()
	stopCh := timer.stopCh
	timer.stopCh = nil
	timer.state = StateIdle
	timer.remaining = timer.config.Duration
	remaining := timer.remaining
	timer.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}
	timer.emit(Event{
		Type:      EventStateChange,
		State:     StateIdle,
		Remaining: remaining,
		At:        time.Now(),
	})
}

// UpdateConfig replaces the session length and resets the timer.
func (timer *Timer) UpdateConfig(config model.SessionConfig) {
	if config.Duration <= 0 {
		return
	}
	timer.mu.Lock()
	timer.config = config
	timer.mu.Unlock()
	timer.Reset()
}

// Close stops ticking and closes all observer channels.
func (timer *Timer) Close() {
	timer.mu.Lock()
	stopCh := timer.stopCh
	timer.stopCh = nil
	if timer.state == StateRunning {
		timer.state = StatePaused
	}
	events := timer.events
	timer.events = nil
	timer.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}
	for _, ch := range events {
		close(ch)
	}
}

func (timer *Timer) run(stopCh chan struct{}) {
	ticker := time.NewTicker(timer.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C:
			if timer.tick(tickTime) {
				return
			}
		}
	}
}

// tick advances the countdown by one second. It reports whether the
// ticking loop should stop. Ticks outside Running are ignored.
func (timer *Timer) tick(tickTime time.Time) bool {
	timer.mu.Lock()
	if timer.state != StateRunning {
		timer.mu.Unlock()
		return true
	}

	timer.remaining -= time.Second
	if timer.remaining > 0 {
		timer.emitLocked(Event{
			Type:      EventProgress,
			State:     StateRunning,
			Remaining: timer.remaining,
			At:        tickTime,
		})
		timer.mu.Unlock()
		return false
	}

	timer.remaining = 0
	timer.state = StateCompleted
	if timer.stopCh != nil {
		close(timer.stopCh)
		timer.stopCh = nil
	}
	timer.emitLocked(Event{
		Type:      EventCompleted,
		State:     StateCompleted,
		Remaining: 0,
		At:        tickTime,
	})
	timer.mu.Unlock()
	return true
}

func (timer *Timer) emit(event Event) {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	timer.emitLocked(event)
}

func (timer *Timer) emitLocked(event Event) {
	events := append([]chan Event(nil), timer.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}

// FormatRemaining renders a duration as zero-padded minutes and seconds.
func FormatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Seconds())
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
