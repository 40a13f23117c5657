package storage

import (
	"path/filepath"
	"testing"
	"time"

	"mindhaven/internal/core/model"
)

func newTestHistory(t *testing.T) *History {
	t.Helper()
	history, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenHistory failed: %v", err)
	}
	t.Cleanup(func() { history.Close() })
	return history
}

func TestActiveTimeAccumulatesPerDay(t *testing.T) {
	history := newTestHistory(t)

	if err := history.AddActiveTime("2026-08-28", 3); err != nil {
		t.Fatalf("AddActiveTime failed: %v", err)
	}
	if err := history.AddActiveTime("2026-08-28", 4); err != nil {
		t.Fatalf("AddActiveTime failed: %v", err)
	}
	if err := history.AddActiveTime("2026-08-29", 10); err != nil {
		t.Fatalf("AddActiveTime failed: %v", err)
	}

	minutes, err := history.ActiveMinutes("2026-08-28")
	if err != nil {
		t.Fatalf("ActiveMinutes failed: %v", err)
	}
	if minutes != 7 {
		t.Errorf("minutes for 2026-08-28: got %d, want 7", minutes)
	}

	minutes, err = history.ActiveMinutes("2026-01-01")
	if err != nil {
		t.Fatalf("ActiveMinutes failed: %v", err)
	}
	if minutes != 0 {
		t.Errorf("minutes for missing date: got %d, want 0", minutes)
	}
}

func TestCheckInSyncLifecycle(t *testing.T) {
	history := newTestHistory(t)

	checkIn := model.CheckIn{
		ClientID:  "c-1",
		Emotion:   model.EmotionAnxious,
		Intensity: model.IntensityHigh,
		Note:      "before the demo",
		CreatedAt: time.Now().UTC(),
	}
	if err := history.SaveCheckIn(checkIn, false); err != nil {
		t.Fatalf("SaveCheckIn failed: %v", err)
	}

	unsynced, err := history.UnsyncedCheckIns()
	if err != nil {
		t.Fatalf("UnsyncedCheckIns failed: %v", err)
	}
	if len(unsynced) != 1 || unsynced[0].ClientID != "c-1" {
		t.Fatalf("unsynced: got %+v, want one record c-1", unsynced)
	}
	if unsynced[0].Emotion != model.EmotionAnxious || unsynced[0].Intensity != model.IntensityHigh {
		t.Errorf("record fields: got %+v", unsynced[0])
	}

	if err := history.MarkCheckInSynced("c-1"); err != nil {
		t.Fatalf("MarkCheckInSynced failed: %v", err)
	}
	unsynced, err = history.UnsyncedCheckIns()
	if err != nil {
		t.Fatalf("UnsyncedCheckIns failed: %v", err)
	}
	if len(unsynced) != 0 {
		t.Errorf("unsynced after mark: got %d, want 0", len(unsynced))
	}
}

func TestRecentCheckInsNewestFirst(t *testing.T) {
	history := newTestHistory(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		checkIn := model.CheckIn{
			ClientID:  string(rune('a' + i)),
			Emotion:   model.EmotionCalm,
			Intensity: model.IntensityLow,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := history.SaveCheckIn(checkIn, true); err != nil {
			t.Fatalf("SaveCheckIn failed: %v", err)
		}
	}

	records, err := history.RecentCheckIns(2)
	if err != nil {
		t.Fatalf("RecentCheckIns failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records: got %d, want 2", len(records))
	}
	if !records[0].CreatedAt.After(records[1].CreatedAt) {
		t.Errorf("order: got %v then %v, want newest first", records[0].CreatedAt, records[1].CreatedAt)
	}
}

func TestSessionRecords(t *testing.T) {
	history := newTestHistory(t)
	start := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	record := &SessionRecord{
		StartedAt: start,
		EndedAt:   start.Add(25 * time.Minute),
		Seconds:   1500,
		Completed: true,
	}
	if err := history.SaveSession(record); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	if record.ID == 0 {
		t.Error("SaveSession did not assign an id")
	}

	abandoned := &SessionRecord{
		StartedAt: start.Add(time.Hour),
		EndedAt:   start.Add(time.Hour + 5*time.Minute),
		Seconds:   300,
	}
	if err := history.SaveSession(abandoned); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	count, err := history.CompletedSessions(start.Add(-time.Hour), start.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("CompletedSessions failed: %v", err)
	}
	if count != 1 {
		t.Errorf("completed sessions: got %d, want 1", count)
	}
}
