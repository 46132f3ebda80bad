package store

import (
	"context"
	"strings"
	"sync"

	"sesaco/internal/submission/models"
)

// InMemory keeps submissions in a single slice so insertion order is the
// iteration order, matching what the aggregator's tie-break relies on.
type InMemory struct {
	mu          sync.RWMutex
	submissions []models.Submission
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Save(_ context.Context, submission models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions = append(s.submissions, submission)
	return nil
}

// ListByCompany returns the company's submissions in insertion order.
func (s *InMemory) ListByCompany(_ context.Context, ruc string) ([]models.Submission, error) {
	ruc = strings.TrimSpace(ruc)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Submission
	for _, submission := range s.submissions {
		if submission.CompanyRUC == ruc {
			out = append(out, submission)
		}
	}
	return out, nil
}
