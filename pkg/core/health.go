package core

import "time"

// Check statuses reported by engine health probes.
const (
	CheckOK      = "ok"
	CheckError   = "error"
	CheckWarning = "warning"
)

// Check is the result of a single named health probe.
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Health aggregates the probe results of a storage engine. A warning check
// does not clear OK; an error check does.
type Health struct {
	OK        bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Checks    []Check   `json:"checks"`
}
