package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	EngineType string      `json:"engine_type"`
	Storage    *EngineInfo `json:"storage,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	engineType := "engine"
	if comp, ok := s.engine.(introspection.Component); ok {
		engineType = comp.ComponentType()
	}

	state := ServiceState{EngineType: engineType}
	if inf, ok := s.engine.(Informer); ok {
		if info, err := inf.Info(); err == nil {
			state.Storage = &info
		}
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
