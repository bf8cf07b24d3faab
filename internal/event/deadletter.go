package event

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/wrecklessracks/racks/internal/logger"
)

// DeadLetterSchemaVersion versions the line format of the dead-letter file
const DeadLetterSchemaVersion = "1.0"

// DeadLetterEntry is one line of the dead-letter file: an event that could not be delivered
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	AccountID     string    `json:"account_id,omitempty"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// DeadLetterWriter appends entries as JSON lines. Safe for concurrent use.
type DeadLetterWriter struct {
	mu   sync.Mutex
	file *os.File
}

// NewDeadLetterWriter opens path for appending, creating it if needed
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, err
	}
	return &DeadLetterWriter{file: f}, nil
}

// Write records e after attempts failed deliveries
func (w *DeadLetterWriter) Write(e Event, attempts int, lastErr error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     time.Now().UTC(),
		AccountID:     e.AccountID(),
		Event:         e,
		Attempts:      attempts,
	}
	if lastErr != nil {
		entry.LastError = lastErr.Error()
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal dead letter entry: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.file.Write(append(line, '\n')); err != nil {
		return err
	}

	logger.Warn(LogMsgEventDeadLettered,
		"event_type", e.Type,
		"account_id", entry.AccountID,
		"attempts", attempts,
		"error", entry.LastError)
	return nil
}

// Close closes the file
func (w *DeadLetterWriter) Close() error {
	return w.file.Close()
}

// ReadDeadLetters parses a dead-letter file. A missing file has no entries.
func ReadDeadLetters(path string) ([]DeadLetterEntry, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []DeadLetterEntry
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), deadLetterMaxLine)
	for n := 1; sc.Scan(); n++ {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var entry DeadLetterEntry
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			return entries, fmt.Errorf("dead letter line %d: %w", n, err)
		}
		entries = append(entries, entry)
	}
	return entries, sc.Err()
}
