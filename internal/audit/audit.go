// Package audit records sandbox lifecycle events.
// Events are stored as JSON Lines (JSONL) files, one per environment.
package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/inenv/inenv/internal/system"
)

// DirName is the audit directory inside the project work dir. The leading
// dot keeps it from colliding with an environment name.
const DirName = ".audit"

// EventType classifies a lifecycle event.
type EventType string

const (
	EventCreate  EventType = "create"
	EventInstall EventType = "install"
	EventDelete  EventType = "delete"
	EventError   EventType = "error"
)

// Event represents a single audit log entry.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Env       string    `json:"env"`
	Details   string    `json:"details,omitempty"`
}

// Logger writes and reads audit events.
// Events are stored in {workDir}/.audit/{env}.jsonl.
type Logger struct {
	fs  system.FileSystem
	dir string
	now func() time.Time
}

// NewLogger creates an audit logger under workDir.
func NewLogger(fsys system.FileSystem, workDir string) *Logger {
	return &Logger{
		fs:  fsys,
		dir: filepath.Join(workDir, DirName),
		now: time.Now,
	}
}

// eventPath returns the path to the JSONL event log for an environment.
func (l *Logger) eventPath(env string) string {
	return filepath.Join(l.dir, env+".jsonl")
}

// Log appends an event to the environment's audit log.
func (l *Logger) Log(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = l.now()
	}

	if err := l.fs.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create audit log directory: %w", err)
	}

	path := l.eventPath(event.Env)
	existing, err := l.fs.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read audit log: %w", err)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	buf := make([]byte, 0, len(existing)+len(data)+1)
	buf = append(buf, existing...)
	buf = append(buf, data...)
	buf = append(buf, '\n')
	if err := l.fs.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// LogEvent is a convenience method that creates and logs an event.
func (l *Logger) LogEvent(eventType EventType, env, details string) error {
	return l.Log(Event{
		Type:    eventType,
		Env:     env,
		Details: details,
	})
}

// Events reads all events for an environment in chronological order.
func (l *Logger) Events(env string) ([]Event, error) {
	data, err := l.fs.ReadFile(l.eventPath(env))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}

	var events []Event
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading audit log: %w", err)
	}

	return events, nil
}
