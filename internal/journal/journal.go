// Package journal provides structured event logging.
// Events are appended as JSON lines to journal.jsonl in the app data dir.
package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event type constants.
const (
	EventCheckinSaved     = "checkin_saved"
	EventCheckinSynced    = "checkin_synced"
	EventSessionStarted   = "session_started"
	EventSessionCompleted = "session_completed"
	EventReminderShown    = "reminder_shown"
	EventStrategyTried    = "strategy_tried"
	EventSyncFailed       = "sync_failed"
)

// Entry represents a single structured event written to the journal.
type Entry struct {
	Time       time.Time `json:"time"`
	Event      string    `json:"event"`
	Emotion    string    `json:"emotion,omitempty"`
	Intensity  int       `json:"intensity,omitempty"`
	StrategyID int64     `json:"strategy_id,omitempty"`
	Seconds    int       `json:"seconds,omitempty"`
	Minutes    int       `json:"minutes,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Journal writes append-only JSONL entries to a file.
type Journal struct {
	path string
	mu   sync.Mutex
}

// New creates a Journal that writes to journal.jsonl inside dir.
// Creates the directory if it does not already exist; never truncates
// an existing journal.
func New(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}
	return &Journal{path: filepath.Join(dir, "journal.jsonl")}, nil
}

// Append writes a single entry as one JSON line.
// A zero Time is set to time.Now().UTC(). Thread-safe.
func (journal *Journal) Append(entry Entry) error {
	if entry.Time.IsZero() {
		entry.Time = time.Now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}

	journal.mu.Lock()
	defer journal.mu.Unlock()

	file, err := os.OpenFile(journal.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open journal file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write journal entry: %w", err)
	}
	return nil
}

// ReadAll reads and parses every entry. A missing file reads as an
// empty slice, not an error.
func (journal *Journal) ReadAll() ([]Entry, error) {
	file, err := os.Open(journal.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("open journal file: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("parse journal line %d: %w", lineNum, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read journal file: %w", err)
	}
	return entries, nil
}
