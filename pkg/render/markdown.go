package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/silo/pkg/core"
)

// Markdown renders entries as a markdown document, one section per entry.
func Markdown(entries []core.Entry) string {
	if len(entries) == 0 {
		return "No memory entries found."
	}

	lines := []string{"# Shared Memory\n"}
	lines = append(lines, fmt.Sprintf("Total entries: %d\n", len(entries)))

	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("## Entry %d: %s", i+1, e.Agent))
		lines = append(lines, fmt.Sprintf("**ID**: `%s`", e.ID))
		lines = append(lines, "**Time**: "+e.Timestamp.Format(time.RFC3339))
		if e.UpdatedAt != nil {
			lines = append(lines, "**Updated**: "+e.UpdatedAt.Format(time.RFC3339))
		}
		lines = append(lines, fmt.Sprintf("**Words**: %d/%d", e.WordCount, core.MaxContentWords))
		lines = append(lines, fmt.Sprintf("**Priority**: %s", e.Priority))
		if len(e.Tags) > 0 {
			lines = append(lines, "**Tags**: "+strings.Join(e.Tags, ", "))
		}
		lines = append(lines, "\n"+e.Content+"\n")
		lines = append(lines, "---\n")
	}

	return strings.Join(lines, "\n")
}

// StatsMarkdown renders a statistics report as markdown.
func StatsMarkdown(s *core.Stats) string {
	lines := []string{"# Memory Statistics\n"}
	lines = append(lines, fmt.Sprintf("**Total Entries**: %d", s.TotalEntries))
	lines = append(lines, "**Total Words**: "+comma(s.TotalWords))
	lines = append(lines, "**Average Words/Entry**: "+formatFloat(s.AverageWords))
	lines = append(lines, "**Storage Size**: "+formatFloat(s.StorageSizeKB)+" KB\n")

	lines = append(lines, "## Agent Activity")
	for _, agent := range s.TopAgents {
		lines = append(lines, fmt.Sprintf("- %s: %d entries", agent.Name, agent.Count))
	}
	lines = append(lines, "")

	if len(s.TopTags) > 0 {
		lines = append(lines, "## Top Tags")
		for _, tag := range s.TopTags {
			lines = append(lines, fmt.Sprintf("- %s: %d uses", tag.Name, tag.Count))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "## Priority Distribution")
	lines = append(lines, fmt.Sprintf("- Low: %d entries", s.PriorityDistribution.Low))
	lines = append(lines, fmt.Sprintf("- Medium: %d entries", s.PriorityDistribution.Medium))
	lines = append(lines, fmt.Sprintf("- High: %d entries", s.PriorityDistribution.High))

	if s.DateRange.Earliest != nil && s.DateRange.Latest != nil {
		lines = append(lines, "")
		lines = append(lines, "## Date Range")
		lines = append(lines, "- **Earliest**: "+s.DateRange.Earliest.Format(time.RFC3339))
		lines = append(lines, "- **Latest**: "+s.DateRange.Latest.Format(time.RFC3339))
	}

	return strings.Join(lines, "\n")
}

// HealthMarkdown renders a health report as markdown.
func HealthMarkdown(h *core.Health) string {
	status := "healthy"
	if !h.OK {
		status = "degraded"
	}

	lines := []string{"# Health Check\n"}
	lines = append(lines, "**Status**: "+status)
	lines = append(lines, "**Time**: "+h.Timestamp.Format(time.RFC3339))
	lines = append(lines, "**Message**: "+h.Message+"\n")

	for _, check := range h.Checks {
		lines = append(lines, fmt.Sprintf("- [%s] %s: %s", check.Status, check.Name, check.Detail))
	}

	return strings.Join(lines, "\n")
}

// formatFloat prints a float without trailing zeros.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// comma formats n with thousands separators.
func comma(n int) string {
	s := strconv.Itoa(n)
	start := 0
	if s[0] == '-' {
		start = 1
	}
	digits := s[start:]

	var b strings.Builder
	b.WriteString(s[:start])
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
