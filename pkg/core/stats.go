package core

import (
	"math"
	"sort"
	"time"
)

// NameCount pairs a name with how often it occurs.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PriorityBreakdown counts entries per priority level.
type PriorityBreakdown struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// DateRange spans the oldest and newest entry timestamps. Both fields are
// nil for an empty store.
type DateRange struct {
	Earliest *time.Time `json:"earliest"`
	Latest   *time.Time `json:"latest"`
}

// Stats summarizes the stored entries and the storage behind them.
type Stats struct {
	TotalEntries         int               `json:"total_entries"`
	TotalWords           int               `json:"total_words"`
	AverageWords         float64           `json:"average_words_per_entry"`
	AgentActivity        map[string]int    `json:"agent_activity"`
	TopAgents            []NameCount       `json:"top_agents"`
	TagUsage             map[string]int    `json:"tag_usage"`
	TopTags              []NameCount       `json:"top_tags"`
	PriorityDistribution PriorityBreakdown `json:"priority_distribution"`
	DateRange            DateRange         `json:"date_range"`
	StorageSizeBytes     int64             `json:"storage_size_bytes"`
	StorageSizeKB        float64           `json:"storage_size_kb"`
	MaxEntries           int               `json:"max_entries"`
	EntriesUntilRotation int               `json:"entries_until_rotation"`
}

// ComputeStats derives entry statistics. Storage-level fields such as
// StorageSizeBytes and MaxEntries are left for the caller to fill in.
func ComputeStats(entries []Entry) *Stats {
	st := &Stats{
		TotalEntries:  len(entries),
		AgentActivity: make(map[string]int),
		TagUsage:      make(map[string]int),
	}
	for i := range entries {
		e := &entries[i]
		st.TotalWords += e.WordCount
		st.AgentActivity[e.Agent]++
		for _, tag := range e.Tags {
			st.TagUsage[tag]++
		}
		switch e.Priority {
		case PriorityLow:
			st.PriorityDistribution.Low++
		case PriorityHigh:
			st.PriorityDistribution.High++
		default:
			st.PriorityDistribution.Medium++
		}
		ts := e.Timestamp
		if st.DateRange.Earliest == nil || ts.Before(*st.DateRange.Earliest) {
			earliest := ts
			st.DateRange.Earliest = &earliest
		}
		if st.DateRange.Latest == nil || ts.After(*st.DateRange.Latest) {
			latest := ts
			st.DateRange.Latest = &latest
		}
	}
	if st.TotalEntries > 0 {
		st.AverageWords = round1(float64(st.TotalWords) / float64(st.TotalEntries))
	}
	st.TopAgents = topCounts(st.AgentActivity, 5)
	st.TopTags = topCounts(st.TagUsage, 10)
	return st
}

// topCounts returns the n highest counts, ties broken by name so the result
// is deterministic.
func topCounts(counts map[string]int, n int) []NameCount {
	out := make([]NameCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, NameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
