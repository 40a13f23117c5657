package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"mindhaven/internal/core/model"
)

// History is the local journal of sessions, check-ins and engagement time.
// The server keeps the authoritative record; this store exists for offline
// display and the mood chart.
type History struct {
	db *sql.DB
}

// SessionRecord is one completed or abandoned focus session.
type SessionRecord struct {
	ID        int64
	StartedAt time.Time
	EndedAt   time.Time
	Seconds   int
	Completed bool
}

// CheckInRecord is a locally stored check-in with its sync state.
type CheckInRecord struct {
	ID        int64
	ClientID  string
	Emotion   model.Emotion
	Intensity model.Intensity
	Note      string
	CreatedAt time.Time
	Synced    bool
}

// OpenHistory opens (and if needed creates) the history database at path.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}

	history := &History{db: db}
	if err := history.initTables(); err != nil {
		db.Close()
		return nil, err
	}
	return history, nil
}

// Close releases the database handle.
func (history *History) Close() error {
	return history.db.Close()
}

func (history *History) initTables() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at DATETIME NOT NULL,
			ended_at DATETIME NOT NULL,
			seconds INTEGER NOT NULL,
			completed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS checkins (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			client_id TEXT NOT NULL UNIQUE,
			emotion TEXT NOT NULL,
			intensity INTEGER NOT NULL,
			note TEXT,
			created_at DATETIME NOT NULL,
			synced INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS active_time (
			date TEXT PRIMARY KEY,
			minutes INTEGER NOT NULL
		)`,
	}
	for _, statement := range statements {
		if _, err := history.db.Exec(statement); err != nil {
			return fmt.Errorf("init history tables: %w", err)
		}
	}
	return nil
}

// SaveSession records a finished focus session.
func (history *History) SaveSession(record *SessionRecord) error {
	result, err := history.db.Exec(`
		INSERT INTO sessions (started_at, ended_at, seconds, completed)
		VALUES (?, ?, ?, ?)
	`, record.StartedAt, record.EndedAt, record.Seconds, record.Completed)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("save session id: %w", err)
	}
	record.ID = id
	return nil
}

// CompletedSessions counts completed sessions between two instants.
func (history *History) CompletedSessions(from, to time.Time) (int, error) {
	var count int
	err := history.db.QueryRow(`
		SELECT COUNT(*) FROM sessions
		WHERE completed = 1 AND started_at BETWEEN ? AND ?
	`, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

// SaveCheckIn stores a check-in locally.
func (history *History) SaveCheckIn(checkIn model.CheckIn, synced bool) error {
	_, err := history.db.Exec(`
		INSERT INTO checkins (client_id, emotion, intensity, note, created_at, synced)
		VALUES (?, ?, ?, ?, ?, ?)
	`, checkIn.ClientID, string(checkIn.Emotion), int(checkIn.Intensity), checkIn.Note, checkIn.CreatedAt, synced)
	if err != nil {
		return fmt.Errorf("save checkin: %w", err)
	}
	return nil
}

// MarkCheckInSynced flips the sync flag after a successful upload.
func (history *History) MarkCheckInSynced(clientID string) error {
	_, err := history.db.Exec(`UPDATE checkins SET synced = 1 WHERE client_id = ?`, clientID)
	if err != nil {
		return fmt.Errorf("mark checkin synced: %w", err)
	}
	return nil
}

// RecentCheckIns returns the newest check-ins, most recent first.
func (history *History) RecentCheckIns(limit int) ([]CheckInRecord, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := history.db.Query(`
		SELECT id, client_id, emotion, intensity, COALESCE(note, ''), created_at, synced
		FROM checkins
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query checkins: %w", err)
	}
	defer rows.Close()

	var records []CheckInRecord
	for rows.Next() {
		var record CheckInRecord
		var emotion string
		var intensity int
		if err := rows.Scan(&record.ID, &record.ClientID, &emotion, &intensity, &record.Note, &record.CreatedAt, &record.Synced); err != nil {
			return nil, fmt.Errorf("scan checkin: %w", err)
		}
		record.Emotion = model.Emotion(emotion)
		record.Intensity = model.Intensity(intensity)
		records = append(records, record)
	}
	return records, rows.Err()
}

// UnsyncedCheckIns returns check-ins that never reached the server.
func (history *History) UnsyncedCheckIns() ([]CheckInRecord, error) {
	rows, err := history.db.Query(`
		SELECT id, client_id, emotion, intensity, COALESCE(note, ''), created_at, synced
		FROM checkins
		WHERE synced = 0
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query unsynced checkins: %w", err)
	}
	defer rows.Close()

	var records []CheckInRecord
	for rows.Next() {
		var record CheckInRecord
		var emotion string
		var intensity int
		if err := rows.Scan(&record.ID, &record.ClientID, &emotion, &intensity, &record.Note, &record.CreatedAt, &record.Synced); err != nil {
			return nil, fmt.Errorf("scan checkin: %w", err)
		}
		record.Emotion = model.Emotion(emotion)
		record.Intensity = model.Intensity(intensity)
		records = append(records, record)
	}
	return records, rows.Err()
}

// AddActiveTime accumulates engagement minutes for a date (YYYY-MM-DD).
func (history *History) AddActiveTime(date string, minutes int) error {
	if minutes <= 0 {
		return nil
	}
	_, err := history.db.Exec(`
		INSERT INTO active_time (date, minutes) VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET minutes = minutes + excluded.minutes
	`, date, minutes)
	if err != nil {
		return fmt.Errorf("add active time: %w", err)
	}
	return nil
}

// ActiveMinutes reads the engagement counter for a date. Missing dates
// read as zero.
func (history *History) ActiveMinutes(date string) (int, error) {
	var minutes int
	err := history.db.QueryRow(`SELECT minutes FROM active_time WHERE date = ?`, date).Scan(&minutes)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read active time: %w", err)
	}
	return minutes, nil
}
