// Package storage defines the persistence interfaces and their shared
// errors. Simulation results are never persisted; the only stored entity
// is configuration: named capital-market assumption sets.
package storage

import (
	"context"

	"advisor-mc-lab/internal/domain"
)

// AssumptionSetStore provides access to named assumption sets.
type AssumptionSetStore interface {
	// Insert adds a new set. Returns ErrDuplicateKey if the name exists.
	Insert(ctx context.Context, s *domain.AssumptionSet) error

	// GetByName retrieves a set. Returns ErrNotFound if it does not exist.
	GetByName(ctx context.Context, name string) (*domain.AssumptionSet, error)

	// List returns all sets ordered by name.
	List(ctx context.Context) ([]*domain.AssumptionSet, error)

	// Delete removes a set. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, name string) error
}
