package core

import "time"

// StorageVersion is the current on-disk envelope format version.
const StorageVersion = "2.0"

// Metadata represents the flexible key-value pairs associated with an entry.
type Metadata map[string]any

// Priority classifies an entry for retrieval ordering.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// weight returns the rank used by priority ordering. Higher sorts first.
func (p Priority) weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

// Entry is the central entity of the domain: one unit of shared information
// recorded by an agent. The ID is assigned exactly once and never reused,
// even after the entry has been deleted.
type Entry struct {
	ID        string     `json:"entry_id"`
	Timestamp time.Time  `json:"timestamp"`
	Agent     string     `json:"agent_name"`
	Content   string     `json:"content"`
	WordCount int        `json:"word_count"`
	Tags      []string   `json:"tags"`
	Priority  Priority   `json:"priority"`
	Metadata  Metadata   `json:"metadata"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// Store is the full resident collection of entries plus envelope metadata.
// Entry order is insertion order, which is semantically chronological. The
// on-disk file is the sole source of truth; a Store value is never trusted
// across calls.
type Store struct {
	Version   string    `json:"version"`
	Entries   []Entry   `json:"entries"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Current reports whether the store already carries the current envelope
// format. A store loaded from a legacy file reports false until the next
// successful persist rewrites it in the current shape.
func (s *Store) Current() bool {
	return s.Version == StorageVersion
}

// Find returns a pointer to the entry with the given ID, or nil.
// The pointer aliases the store's backing slice.
func (s *Store) Find(id string) *Entry {
	for i := range s.Entries {
		if s.Entries[i].ID == id {
			return &s.Entries[i]
		}
	}
	return nil
}

// EventType represents the kind of change observed on the data file.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventRemove EventType = "REMOVE"
)

// Event represents an externally observed change to the data file.
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return string(e.Type) + " " + e.Path
}

// BackupInfo describes one snapshot in the backup directory.
type BackupInfo struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Size      int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}
