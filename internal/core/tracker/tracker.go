// Package tracker accumulates engagement time while the user is active
// and raises throttled check-in reminders.
package tracker

import (
	"context"
	"sync"
	"time"

	"mindhaven/internal/core/model"
)

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// Store receives per-day engagement minutes.
type Store interface {
	AddActiveTime(date string, minutes int) error
}

// Poster uploads activity records to the platform.
type Poster interface {
	TrackActivity(ctx context.Context, page string, timeSpent int, activity string) error
}

// EventType defines the type of tracker event.
type EventType string

const (
	EventActivityFlushed EventType = "activity_flushed"
	EventReminderDue     EventType = "reminder_due"
	EventSyncFailed      EventType = "sync_failed"
)

// Event represents a tracker update for observers.
type Event struct {
	Type    EventType
	Minutes int
	Message string
	At      time.Time
}

// Options contains runtime options for Tracker.
type Options struct {
	TickInterval time.Duration
}

// Tracker is a ticker-driven accumulator of active time.
type Tracker struct {
	mu            sync.Mutex
	config        model.TrackerConfig
	options       Options
	store         Store
	poster        Poster
	idleChecker   IdleChecker
	accumulated   time.Duration
	lastReminder  time.Time
	lastIdleCheck time.Time
	idle          bool
	events        []chan Event
	stopCh        chan struct{}
	running       bool
}

// New creates a Tracker. store and poster may be nil in tests.
func New(config model.TrackerConfig, options Options) *Tracker {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if config.FlushInterval <= 0 {
		config.FlushInterval = time.Minute
	}
	if config.IdleCheckInterval <= 0 {
		config.IdleCheckInterval = 5 * time.Second
	}
	return &Tracker{
		config:  config,
		options: options,
		stopCh:  make(chan struct{}),
	}
}

// SetStore injects the local engagement store.
func (tracker *Tracker) SetStore(store Store) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.store = store
}

// SetPoster injects the platform client.
func (tracker *Tracker) SetPoster(poster Poster) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.poster = poster
}

// SetIdleChecker injects an idle checker.
func (tracker *Tracker) SetIdleChecker(checker IdleChecker) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.idleChecker = checker
}

// SetLastReminder seeds the reminder throttle, usually from persisted
// preference state.
func (tracker *Tracker) SetLastReminder(at time.Time) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	tracker.lastReminder = at
}

// UpdateConfig replaces runtime configuration.
func (tracker *Tracker) UpdateConfig(config model.TrackerConfig) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	if config.FlushInterval <= 0 {
		config.FlushInterval = time.Minute
	}
	if config.IdleCheckInterval <= 0 {
		config.IdleCheckInterval = 5 * time.Second
	}
	tracker.config = config
}

// Subscribe registers a new observer channel.
func (tracker *Tracker) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	tracker.mu.Lock()
	tracker.events = append(tracker.events, ch)
	tracker.mu.Unlock()
	return ch
}

// Start launches the ticking loop.
func (tracker *Tracker) Start() {
	tracker.mu.Lock()
	if tracker.running {
		tracker.mu.Unlock()
		return
	}
	tracker.running = true
	tracker.mu.Unlock()

	go tracker.run()
}

// Stop terminates the ticking loop, flushes the partial minute and
// closes observers.
func (tracker *Tracker) Stop() {
	tracker.mu.Lock()
	if !tracker.running {
		tracker.mu.Unlock()
		return
	}
	close(tracker.stopCh)
	tracker.running = false
	tracker.flushLocked(time.Now(), true)
	events := tracker.events
	tracker.events = nil
	tracker.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (tracker *Tracker) run() {
	ticker := time.NewTicker(tracker.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-tracker.stopCh:
			return
		case tickTime := <-ticker.C:
			tracker.tick(tickTime)
		}
	}
}

func (tracker *Tracker) tick(now time.Time) {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	tracker.handleIdleCheckLocked(now)
	if !tracker.idle {
		tracker.accumulated += tracker.options.TickInterval
	}
	if tracker.accumulated >= tracker.config.FlushInterval {
		tracker.flushLocked(now, false)
	}
	tracker.maybeRemindLocked(now)
}

func (tracker *Tracker) handleIdleCheckLocked(now time.Time) {
	if tracker.idleChecker == nil {
		tracker.idle = false
		return
	}
	if !tracker.lastIdleCheck.IsZero() && now.Sub(tracker.lastIdleCheck) < tracker.config.IdleCheckInterval {
		return
	}
	tracker.lastIdleCheck = now

	idleFor, err := tracker.idleChecker.IdleDuration()
	if err != nil {
		// Idle detection is best effort; count the time as active.
		tracker.idle = false
		return
	}
	tracker.idle = idleFor >= tracker.config.IdleAfter
}

// flushLocked writes whole accumulated minutes to the store and posts
// them to the platform. partial forces the remainder out as well.
func (tracker *Tracker) flushLocked(now time.Time, partial bool) {
	minutes := int(tracker.accumulated / time.Minute)
	if partial && minutes == 0 && tracker.accumulated >= 30*time.Second {
		minutes = 1
	}
	if minutes == 0 {
		return
	}
	tracker.accumulated -= time.Duration(minutes) * time.Minute
	if tracker.accumulated < 0 {
		tracker.accumulated = 0
	}

	if tracker.store != nil {
		if err := tracker.store.AddActiveTime(now.Format("2006-01-02"), minutes); err != nil {
			tracker.emitLocked(Event{Type: EventSyncFailed, Message: err.Error(), At: now})
		}
	}
	if tracker.poster != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := tracker.poster.TrackActivity(ctx, tracker.config.Page, minutes, "active")
		cancel()
		if err != nil {
			tracker.emitLocked(Event{Type: EventSyncFailed, Message: err.Error(), At: now})
		}
	}
	tracker.emitLocked(Event{Type: EventActivityFlushed, Minutes: minutes, At: now})
}

func (tracker *Tracker) maybeRemindLocked(now time.Time) {
	if !tracker.config.RemindersEnabled || tracker.config.ReminderGap <= 0 {
		return
	}
	if !tracker.lastReminder.IsZero() && now.Sub(tracker.lastReminder) < tracker.config.ReminderGap {
		return
	}
	tracker.lastReminder = now
	tracker.emitLocked(Event{Type: EventReminderDue, At: now})
}

func (tracker *Tracker) emitLocked(event Event) {
	events := append([]chan Event(nil), tracker.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
