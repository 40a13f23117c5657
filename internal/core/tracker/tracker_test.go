package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"mindhaven/internal/core/model"
)

type fakeStore struct {
	added map[string]int
	err   error
}

func (store *fakeStore) AddActiveTime(date string, minutes int) error {
	if store.err != nil {
		return store.err
	}
	if store.added == nil {
		store.added = map[string]int{}
	}
	store.added[date] += minutes
	return nil
}

type fakePoster struct {
	posts []int
	err   error
}

func (poster *fakePoster) TrackActivity(ctx context.Context, page string, timeSpent int, activity string) error {
	if poster.err != nil {
		return poster.err
	}
	poster.posts = append(poster.posts, timeSpent)
	return nil
}

type fixedIdle struct {
	idleFor time.Duration
	err     error
}

func (checker fixedIdle) IdleDuration() (time.Duration, error) {
	return checker.idleFor, checker.err
}

func newTestTracker(config model.TrackerConfig) *Tracker {
	// Background ticker never fires; tests drive tick directly.
	return New(config, Options{TickInterval: time.Second})
}

func driveTicks(tracker *Tracker, start time.Time, ticks int) time.Time {
	now := start
	for i := 0; i < ticks; i++ {
		now = now.Add(time.Second)
		tracker.tick(now)
	}
	return now
}

func TestFlushesWholeMinutesToStoreAndPoster(t *testing.T) {
	store := &fakeStore{}
	poster := &fakePoster{}
	tracker := newTestTracker(model.TrackerConfig{
		Page:          "/app/",
		FlushInterval: time.Minute,
	})
	tracker.SetStore(store)
	tracker.SetPoster(poster)

	start := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	driveTicks(tracker, start, 60)

	if got := store.added["2026-08-28"]; got != 1 {
		t.Errorf("store minutes: got %d, want 1", got)
	}
	if len(poster.posts) != 1 || poster.posts[0] != 1 {
		t.Errorf("posts: got %v, want [1]", poster.posts)
	}
}

func TestIdleTimeIsNotCounted(t *testing.T) {
	store := &fakeStore{}
	tracker := newTestTracker(model.TrackerConfig{
		FlushInterval:     time.Minute,
		IdleAfter:         5 * time.Minute,
		IdleCheckInterval: time.Second,
	})
	tracker.SetStore(store)
	tracker.SetIdleChecker(fixedIdle{idleFor: 10 * time.Minute})

	start := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	driveTicks(tracker, start, 120)

	if len(store.added) != 0 {
		t.Errorf("store: got %v, want no entries while idle", store.added)
	}
}

func TestIdleCheckErrorCountsAsActive(t *testing.T) {
	store := &fakeStore{}
	tracker := newTestTracker(model.TrackerConfig{
		FlushInterval:     time.Minute,
		IdleAfter:         5 * time.Minute,
		IdleCheckInterval: time.Second,
	})
	tracker.SetStore(store)
	tracker.SetIdleChecker(fixedIdle{err: errors.New("unsupported")})

	start := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	driveTicks(tracker, start, 60)

	if got := store.added["2026-08-28"]; got != 1 {
		t.Errorf("store minutes: got %d, want 1", got)
	}
}

func TestReminderThrottledByGap(t *testing.T) {
	tracker := newTestTracker(model.TrackerConfig{
		FlushInterval:    time.Hour,
		RemindersEnabled: true,
		ReminderGap:      2 * time.Minute,
	})
	events := tracker.Subscribe(64)

	start := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	tracker.SetLastReminder(start)
	driveTicks(tracker, start, 300)

	reminders := 0
	for {
		select {
		case event := <-events:
			if event.Type == EventReminderDue {
				reminders++
			}
			continue
		default:
		}
		break
	}
	// 300s with a 120s gap seeded at start: reminders at +120s and +240s.
	if reminders != 2 {
		t.Errorf("reminders: got %d, want 2", reminders)
	}
}

func TestRemindersDisabled(t *testing.T) {
	tracker := newTestTracker(model.TrackerConfig{
		FlushInterval: time.Hour,
		ReminderGap:   time.Minute,
	})
	events := tracker.Subscribe(64)

	start := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	driveTicks(tracker, start, 240)

	select {
	case event := <-events:
		if event.Type == EventReminderDue {
			t.Errorf("unexpected reminder: %+v", event)
		}
	default:
	}
}

func TestPosterFailureEmitsSyncFailedButKeepsLocalRecord(t *testing.T) {
	store := &fakeStore{}
	poster := &fakePoster{err: errors.New("boom")}
	tracker := newTestTracker(model.TrackerConfig{FlushInterval: time.Minute})
	tracker.SetStore(store)
	tracker.SetPoster(poster)
	events := tracker.Subscribe(64)

	start := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	driveTicks(tracker, start, 60)

	if got := store.added["2026-08-28"]; got != 1 {
		t.Errorf("store minutes: got %d, want 1", got)
	}

	sawFailure := false
	for {
		select {
		case event := <-events:
			if event.Type == EventSyncFailed {
				sawFailure = true
			}
			continue
		default:
		}
		break
	}
	if !sawFailure {
		t.Error("expected a sync_failed event")
	}
}
