package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Validation limits for caller-supplied entry fields.
const (
	MaxAgentNameLength = 100
	MaxContentWords    = 200
	MaxTags            = 10
)

// CountWords returns the number of whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ValidateAgentName checks the owner name bounds.
func ValidateAgentName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "agent_name", Reason: "must not be empty"}
	}
	if len(name) > MaxAgentNameLength {
		return &ValidationError{
			Field:  "agent_name",
			Reason: fmt.Sprintf("must be at most %d characters, got %d", MaxAgentNameLength, len(name)),
		}
	}
	return nil
}

// ValidateContent checks the content bounds and returns the derived word
// count.
func ValidateContent(content string) (int, error) {
	if strings.TrimSpace(content) == "" {
		return 0, &ValidationError{Field: "content", Reason: "must not be empty"}
	}
	words := CountWords(content)
	if words > MaxContentWords {
		return 0, &ValidationError{
			Field:  "content",
			Reason: fmt.Sprintf("exceeds maximum of %d words, got %d", MaxContentWords, words),
		}
	}
	return words, nil
}

// NormalizeTags trims and lowercases tags, dropping empties and duplicates
// while preserving first-occurrence order. The returned slice is never nil.
func NormalizeTags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) > MaxTags {
		return nil, &ValidationError{
			Field:  "tags",
			Reason: fmt.Sprintf("at most %d tags allowed, got %d", MaxTags, len(out)),
		}
	}
	return out, nil
}

// ParsePriority maps a textual priority onto a Priority value. The empty
// string defaults to medium.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", &ValidationError{Field: "priority", Reason: "must be low, medium or high"}
	}
}

// ValidateEntryID checks that id is a well-formed entry identifier.
func ValidateEntryID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return &ValidationError{Field: "entry_id", Reason: fmt.Sprintf("malformed id %q", id)}
	}
	return nil
}
