package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"sesaco/internal/company/models"
	"sesaco/pkg/platform/sentinel"
)

// InMemory keeps companies in a map keyed by RUC.
type InMemory struct {
	mu        sync.RWMutex
	companies map[string]models.Company
}

func NewInMemory() *InMemory {
	return &InMemory{companies: make(map[string]models.Company)}
}

// Create stores a new company. Returns sentinel.ErrConflict when the RUC is
// already registered.
func (s *InMemory) Create(_ context.Context, company models.Company) error {
	key := normalizeRUC(company.RUC)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[key]; ok {
		return sentinel.ErrConflict
	}
	s.companies[key] = company
	return nil
}

// Replace overwrites an existing company. Returns sentinel.ErrNotFound when
// the RUC is unknown.
func (s *InMemory) Replace(_ context.Context, company models.Company) error {
	key := normalizeRUC(company.RUC)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[key]; !ok {
		return sentinel.ErrNotFound
	}
	s.companies[key] = company
	return nil
}

func (s *InMemory) FindByRUC(_ context.Context, ruc string) (models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if company, ok := s.companies[normalizeRUC(ruc)]; ok {
		return company, nil
	}
	return models.Company{}, sentinel.ErrNotFound
}

// List returns all companies ordered by RUC.
func (s *InMemory) List(_ context.Context) ([]models.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Company, 0, len(s.companies))
	for _, company := range s.companies {
		out = append(out, company)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RUC < out[j].RUC })
	return out, nil
}

func normalizeRUC(ruc string) string {
	return strings.TrimSpace(ruc)
}
