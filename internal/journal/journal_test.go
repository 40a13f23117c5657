package journal

import (
	"testing"
	"time"
)

func TestAppendAndReadAll(t *testing.T) {
	journal, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	entries := []Entry{
		{Event: EventCheckinSaved, Emotion: "anxious", Intensity: 4},
		{Event: EventSessionCompleted, Seconds: 1500},
		{Event: EventSyncFailed, Error: "status 500"},
	}
	for _, entry := range entries {
		if err := journal.Append(entry); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	read, err := journal.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(read) != 3 {
		t.Fatalf("entries: got %d, want 3", len(read))
	}
	if read[0].Event != EventCheckinSaved || read[0].Emotion != "anxious" {
		t.Errorf("first entry: got %+v", read[0])
	}
	if read[1].Seconds != 1500 {
		t.Errorf("second entry seconds: got %d", read[1].Seconds)
	}
	if read[0].Time.IsZero() {
		t.Error("Append should stamp zero times")
	}
}

func TestReadAllMissingFile(t *testing.T) {
	journal, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	entries, err := journal.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries: got %d, want 0", len(entries))
	}
}

func TestAppendPreservesExplicitTime(t *testing.T) {
	journal, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	at := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	if err := journal.Append(Entry{Time: at, Event: EventReminderShown}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	read, err := journal.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !read[0].Time.Equal(at) {
		t.Errorf("time: got %v, want %v", read[0].Time, at)
	}
}
