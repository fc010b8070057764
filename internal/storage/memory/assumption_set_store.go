// Package memory provides in-memory storage implementations, used in
// tests and for single-process deployments without PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"

	"advisor-mc-lab/internal/domain"
	"advisor-mc-lab/internal/storage"
)

// AssumptionSetStore is an in-memory implementation of
// storage.AssumptionSetStore.
type AssumptionSetStore struct {
	mu   sync.RWMutex
	data map[string]*domain.AssumptionSet
}

// NewAssumptionSetStore creates a new in-memory assumption-set store.
func NewAssumptionSetStore() *AssumptionSetStore {
	return &AssumptionSetStore{data: make(map[string]*domain.AssumptionSet)}
}

// Compile-time interface check.
var _ storage.AssumptionSetStore = (*AssumptionSetStore)(nil)

// Insert adds a new set. Returns ErrDuplicateKey if the name exists.
func (s *AssumptionSetStore) Insert(_ context.Context, set *domain.AssumptionSet) error {
	if set == nil || set.Name == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[set.Name]; exists {
		return storage.ErrDuplicateKey
	}
	setCopy := *set
	s.data[set.Name] = &setCopy
	return nil
}

// GetByName retrieves a set. Returns ErrNotFound if it does not exist.
func (s *AssumptionSetStore) GetByName(_ context.Context, name string) (*domain.AssumptionSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.data[name]
	if !ok {
		return nil, storage.ErrNotFound
	}
	setCopy := *set
	return &setCopy, nil
}

// List returns all sets ordered by name.
func (s *AssumptionSetStore) List(_ context.Context) ([]*domain.AssumptionSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.AssumptionSet, 0, len(s.data))
	for _, set := range s.data {
		setCopy := *set
		result = append(result, &setCopy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// Delete removes a set. Returns ErrNotFound if it does not exist.
func (s *AssumptionSetStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[name]; !ok {
		return storage.ErrNotFound
	}
	delete(s.data, name)
	return nil
}
