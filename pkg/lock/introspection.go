package lock

import (
	"github.com/aretw0/introspection"
)

// ManagerState exposes internal state for observability.
type ManagerState struct {
	Path         string `json:"path"`
	Acquisitions uint64 `json:"acquisitions"`
	Contentions  uint64 `json:"contentions"`
	Timeouts     uint64 `json:"timeouts"`
}

// State implements introspection.Introspectable.
func (m *Manager) State() any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return ManagerState{
		Path:         m.path,
		Acquisitions: m.acquisitions,
		Contentions:  m.contentions,
		Timeouts:     m.timeouts,
	}
}

// ComponentType implements introspection.Component.
func (m *Manager) ComponentType() string {
	return "lock-manager"
}

var _ introspection.Introspectable = (*Manager)(nil)
var _ introspection.Component = (*Manager)(nil)

func (m *Manager) recordAcquisition(contended bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acquisitions++
	if contended {
		m.contentions++
	}
}

func (m *Manager) recordTimeout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeouts++
}
