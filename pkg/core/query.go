package core

import (
	"sort"
	"strings"
	"time"
)

// SortOrder selects how listed entries are arranged.
type SortOrder string

const (
	// SortChronological keeps storage order, oldest first.
	SortChronological SortOrder = "chronological"
	// SortReverse reverses storage order, newest first.
	SortReverse SortOrder = "reverse"
	// SortPriority orders high before medium before low. Entries of equal
	// priority keep their storage order.
	SortPriority SortOrder = "priority"
)

// ParseSortOrder maps a textual sort order onto a SortOrder value. The empty
// string defaults to chronological.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return SortChronological, nil
	case SortChronological, SortReverse, SortPriority:
		return o, nil
	default:
		return "", &ValidationError{Field: "sort", Reason: "must be chronological, reverse or priority"}
	}
}

// Filter narrows a listing to entries matching every set field.
type Filter struct {
	Agent    string
	Tags     []string
	Priority Priority
	DateFrom time.Time
	DateTo   time.Time
}

// Matches reports whether e satisfies every constraint set on f.
func (f Filter) Matches(e Entry) bool {
	if f.Agent != "" && e.Agent != f.Agent {
		return false
	}
	if f.Priority != "" && e.Priority != f.Priority {
		return false
	}
	for _, want := range f.Tags {
		if !hasTag(e.Tags, want) {
			return false
		}
	}
	if !f.DateFrom.IsZero() && e.Timestamp.Before(f.DateFrom) {
		return false
	}
	if !f.DateTo.IsZero() && e.Timestamp.After(f.DateTo) {
		return false
	}
	return true
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

// FilterEntries returns the entries matching f, in storage order.
func FilterEntries(entries []Entry, f Filter) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// SortEntries returns entries arranged per order. The input slice is not
// modified.
func SortEntries(entries []Entry, order SortOrder) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	switch order {
	case SortReverse:
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.weight() > out[j].Priority.weight()
		})
	}
	return out
}

// Clip limits entries to at most limit items. Chronological listings keep
// the newest tail so recent entries survive the cut; every other order keeps
// the head. A limit of zero or less means unlimited.
func Clip(entries []Entry, limit int, order SortOrder) []Entry {
	if limit <= 0 || len(entries) <= limit {
		return entries
	}
	if order == SortChronological {
		return entries[len(entries)-limit:]
	}
	return entries[:limit]
}

// SearchEntries returns entries whose content, agent name or any tag
// contains pattern, in storage order. The match is case-insensitive unless
// caseSensitive is set.
func SearchEntries(entries []Entry, pattern string, caseSensitive bool) []Entry {
	needle := pattern
	if !caseSensitive {
		needle = strings.ToLower(pattern)
	}
	out := make([]Entry, 0)
	for _, e := range entries {
		if entryMatches(e, needle, caseSensitive) {
			out = append(out, e)
		}
	}
	return out
}

func entryMatches(e Entry, needle string, caseSensitive bool) bool {
	fold := func(s string) string {
		if caseSensitive {
			return s
		}
		return strings.ToLower(s)
	}
	if strings.Contains(fold(e.Content), needle) {
		return true
	}
	if strings.Contains(fold(e.Agent), needle) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(fold(tag), needle) {
			return true
		}
	}
	return false
}
