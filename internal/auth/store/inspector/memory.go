package inspector

import (
	"context"
	"strings"
	"sync"

	"sesaco/internal/auth/models"
	"sesaco/pkg/platform/sentinel"
)

// InMemory keeps inspectors in a map. Favors clarity over performance.
type InMemory struct {
	mu         sync.RWMutex
	inspectors map[string]models.Inspector
}

func NewInMemory() *InMemory {
	return &InMemory{inspectors: make(map[string]models.Inspector)}
}

func (s *InMemory) Save(_ context.Context, inspector models.Inspector) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inspectors[normalize(inspector.Cedula)] = inspector
	return nil
}

func (s *InMemory) FindByCedula(_ context.Context, cedula string) (models.Inspector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if inspector, ok := s.inspectors[normalize(cedula)]; ok {
		return inspector, nil
	}
	return models.Inspector{}, sentinel.ErrNotFound
}

func normalize(cedula string) string {
	return strings.TrimSpace(cedula)
}
