package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Scanner   string `json:"scanner"`
	Renderer  string `json:"renderer"`
	Documents int    `json:"documents"`
	Entries   int    `json:"entries"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scanner := "unknown"
	if s.scanner != nil {
		scanner = s.scanner.Name()
	}

	renderer := "unknown"
	if s.renderer != nil {
		renderer = "renderer"
		if comp, ok := s.renderer.(introspection.Component); ok {
			renderer = comp.ComponentType()
		}
	}

	return ServiceState{
		Scanner:   scanner,
		Renderer:  renderer,
		Documents: s.documents,
		Entries:   s.entries,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
