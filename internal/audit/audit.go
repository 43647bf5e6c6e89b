// Package audit provides a structured journal of workspace lifecycle events.
// Events are stored as JSON Lines (JSONL) files, one per workspace.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DirName is the directory under a workspace root holding journals.
const DirName = ".realmctl"

// EventType classifies a lifecycle event.
type EventType string

const (
	EventCreate EventType = "create"
	EventRepair EventType = "repair"
	EventClean  EventType = "clean"
	EventError  EventType = "error"
)

// Event represents a single journal entry.
type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Type      EventType      `json:"type"`
	Workspace string         `json:"workspace"`
	Details   string         `json:"details,omitempty"`
	Counts    map[string]int `json:"counts,omitempty"`
}

// Journal writes and reads events for the workspaces under one root.
// Events are stored in {root}/.realmctl/{name}.events.jsonl.
type Journal struct {
	root string
}

// NewJournal creates a journal for the workspace root.
func NewJournal(root string) *Journal {
	return &Journal{root: root}
}

// Path returns the path to the JSONL event log for a workspace.
func (j *Journal) Path(workspace string) string {
	return filepath.Join(j.root, DirName, workspace+".events.jsonl")
}

// Log appends an event to the workspace's journal.
func (j *Journal) Log(event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Workspace == "" {
		return fmt.Errorf("event has no workspace")
	}

	path := j.Path(event.Workspace)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// LogEvent is a convenience method that creates and logs an event.
func (j *Journal) LogEvent(eventType EventType, workspace, details string, counts map[string]int) error {
	return j.Log(Event{
		Timestamp: time.Now(),
		Type:      eventType,
		Workspace: workspace,
		Details:   details,
		Counts:    counts,
	})
}

// Events reads all events for a workspace in chronological order.
func (j *Journal) Events(workspace string) ([]Event, error) {
	f, err := os.Open(j.Path(workspace))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
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
		return events, fmt.Errorf("error reading journal: %w", err)
	}

	return events, nil
}
