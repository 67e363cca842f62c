package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service implements the memory operations on top of a storage Engine.
type Service struct {
	engine Engine

	newID func() string
	now   func() time.Time
}

// NewService creates a new Service.
func NewService(engine Engine) *Service {
	return &Service{
		engine: engine,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// AddRequest carries the fields of a new entry.
type AddRequest struct {
	Agent    string
	Content  string
	Tags     []string
	Priority string
	Metadata Metadata
}

// Add validates and appends a new entry, returning it with its generated
// identity and timestamp.
func (s *Service) Add(ctx context.Context, req AddRequest) (*Entry, error) {
	if err := ValidateAgentName(req.Agent); err != nil {
		return nil, err
	}
	words, err := ValidateContent(req.Content)
	if err != nil {
		return nil, err
	}
	tags, err := NormalizeTags(req.Tags)
	if err != nil {
		return nil, err
	}
	priority, err := ParsePriority(req.Priority)
	if err != nil {
		return nil, err
	}
	metadata := req.Metadata
	if metadata == nil {
		metadata = Metadata{}
	}

	entry := Entry{
		ID:        s.newID(),
		Timestamp: s.now(),
		Agent:     req.Agent,
		Content:   req.Content,
		WordCount: words,
		Tags:      tags,
		Priority:  priority,
		Metadata:  metadata,
	}
	if _, err := s.engine.Mutate(ctx, func(st *Store) error {
		st.Entries = append(st.Entries, entry)
		return nil
	}); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListRequest narrows and arranges a listing.
type ListRequest struct {
	Agent    string
	Tags     []string
	Priority string
	Sort     string
	Limit    int
	DateFrom time.Time
	DateTo   time.Time
}

// List returns entries matching req, arranged and limited as requested.
// Chronological listings keep the newest entries when limited; other orders
// keep the top of the arranged result.
func (s *Service) List(ctx context.Context, req ListRequest) ([]Entry, error) {
	order, err := ParseSortOrder(req.Sort)
	if err != nil {
		return nil, err
	}
	filter := Filter{Agent: req.Agent, DateFrom: req.DateFrom, DateTo: req.DateTo}
	if req.Priority != "" {
		p, err := ParsePriority(req.Priority)
		if err != nil {
			return nil, err
		}
		filter.Priority = p
	}
	for _, tag := range req.Tags {
		if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
			filter.Tags = append(filter.Tags, tag)
		}
	}

	store, err := s.engine.Load(ctx)
	if err != nil {
		return nil, err
	}
	entries := FilterEntries(store.Entries, filter)
	entries = SortEntries(entries, order)
	return Clip(entries, req.Limit, order), nil
}

// Get returns the entry with the given id.
func (s *Service) Get(ctx context.Context, id string) (*Entry, error) {
	if err := ValidateEntryID(id); err != nil {
		return nil, err
	}
	store, err := s.engine.Load(ctx)
	if err != nil {
		return nil, err
	}
	e := store.Find(id)
	if e == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	out := *e
	return &out, nil
}

// UpdateRequest carries a partial update. Nil Content, Tags and Metadata
// leave the current value unchanged, as does an empty Priority. A non-nil
// empty Tags slice clears the tags.
type UpdateRequest struct {
	ID       string
	Content  *string
	Tags     []string
	Priority string
	Metadata Metadata
}

// Update applies a partial update to an existing entry and refreshes its
// update timestamp.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Entry, error) {
	if err := ValidateEntryID(req.ID); err != nil {
		return nil, err
	}
	var (
		words    int
		tags     []string
		priority Priority
		err      error
	)
	if req.Content != nil {
		if words, err = ValidateContent(*req.Content); err != nil {
			return nil, err
		}
	}
	if req.Tags != nil {
		if tags, err = NormalizeTags(req.Tags); err != nil {
			return nil, err
		}
	}
	if req.Priority != "" {
		if priority, err = ParsePriority(req.Priority); err != nil {
			return nil, err
		}
	}

	var updated Entry
	if _, err := s.engine.Mutate(ctx, func(st *Store) error {
		e := st.Find(req.ID)
		if e == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, req.ID)
		}
		if req.Content != nil {
			e.Content = *req.Content
			e.WordCount = words
		}
		if req.Tags != nil {
			e.Tags = tags
		}
		if req.Priority != "" {
			e.Priority = priority
		}
		if req.Metadata != nil {
			e.Metadata = req.Metadata
		}
		at := s.now()
		e.UpdatedAt = &at
		updated = *e
		return nil
	}); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the entry with the given id, returning how many entries
// remain.
func (s *Service) Delete(ctx context.Context, id string) (int, error) {
	if err := ValidateEntryID(id); err != nil {
		return 0, err
	}
	remaining := 0
	if _, err := s.engine.Mutate(ctx, func(st *Store) error {
		for i := range st.Entries {
			if st.Entries[i].ID == id {
				st.Entries = append(st.Entries[:i], st.Entries[i+1:]...)
				remaining = len(st.Entries)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}); err != nil {
		return 0, err
	}
	return remaining, nil
}

// SearchRequest describes a substring search over content, agent names and
// tags.
type SearchRequest struct {
	Query         string
	CaseSensitive bool
	Limit         int
}

// Search returns entries matching the query, in storage order.
func (s *Service) Search(ctx context.Context, req SearchRequest) ([]Entry, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, &ValidationError{Field: "query", Reason: "must not be empty"}
	}
	store, err := s.engine.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := SearchEntries(store.Entries, req.Query, req.CaseSensitive)
	if req.Limit > 0 && len(out) > req.Limit {
		out = out[:req.Limit]
	}
	return out, nil
}

// Stats summarizes the stored entries and the storage behind them.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	store, err := s.engine.Load(ctx)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(store.Entries)
	if inf, ok := s.engine.(Informer); ok {
		info, err := inf.Info()
		if err != nil {
			return nil, err
		}
		stats.StorageSizeBytes = info.SizeBytes
		stats.StorageSizeKB = round2(float64(info.SizeBytes) / 1024)
		stats.MaxEntries = info.MaxEntries
		if left := info.MaxEntries - stats.TotalEntries; left > 0 {
			stats.EntriesUntilRotation = left
		}
	}
	return stats, nil
}

// Clear removes every entry. It refuses to run unless confirm is set.
func (s *Service) Clear(ctx context.Context, confirm bool) (int, error) {
	if !confirm {
		return 0, ErrConfirmationRequired
	}
	removed := 0
	if _, err := s.engine.Mutate(ctx, func(st *Store) error {
		removed = len(st.Entries)
		st.Entries = st.Entries[:0]
		return nil
	}); err != nil {
		return 0, err
	}
	return removed, nil
}

// Health probes the engine if it supports health checks.
func (s *Service) Health(ctx context.Context) (*Health, error) {
	chk, ok := s.engine.(Checker)
	if !ok {
		return nil, errors.New("engine does not support health checks")
	}
	return chk.Verify(ctx), nil
}

// Backups lists backup snapshots if the engine keeps them. An empty
// pattern matches all snapshots.
func (s *Service) Backups(ctx context.Context, pattern string) ([]BackupInfo, error) {
	bl, ok := s.engine.(BackupLister)
	if !ok {
		return nil, errors.New("engine does not support backups")
	}
	return bl.Backups(ctx, pattern)
}

// Watch observes external changes to the storage if supported.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.engine.(Watchable)
	if !ok {
		return nil, errors.New("engine does not support watching")
	}
	return w.Watch(ctx)
}

// Info describes the storage behind the engine.
func (s *Service) Info() (EngineInfo, error) {
	inf, ok := s.engine.(Informer)
	if !ok {
		return EngineInfo{}, errors.New("engine does not expose storage info")
	}
	return inf.Info()
}
