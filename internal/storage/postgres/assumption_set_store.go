package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"advisor-mc-lab/internal/domain"
	"advisor-mc-lab/internal/storage"
)

// AssumptionSetStore implements storage.AssumptionSetStore using
// PostgreSQL. The mu/vol/corr maps are stored as JSONB.
type AssumptionSetStore struct {
	pool *Pool
}

// NewAssumptionSetStore creates a new AssumptionSetStore.
func NewAssumptionSetStore(pool *Pool) *AssumptionSetStore {
	return &AssumptionSetStore{pool: pool}
}

// Compile-time interface check.
var _ storage.AssumptionSetStore = (*AssumptionSetStore)(nil)

// Insert adds a new set. Returns ErrDuplicateKey if the name exists.
func (s *AssumptionSetStore) Insert(ctx context.Context, set *domain.AssumptionSet) error {
	if set == nil || set.Name == "" {
		return storage.ErrInvalidInput
	}

	mu, vol, corr, err := marshalAssumptions(set.Assumptions)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO assumption_sets (name, mu_ann, vol_ann, corr, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = s.pool.Exec(ctx, query, set.Name, mu, vol, corr, set.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert assumption set: %w", err)
	}
	return nil
}

// GetByName retrieves a set. Returns ErrNotFound if it does not exist.
func (s *AssumptionSetStore) GetByName(ctx context.Context, name string) (*domain.AssumptionSet, error) {
	query := `
		SELECT name, mu_ann, vol_ann, corr, created_at
		FROM assumption_sets
		WHERE name = $1
	`
	row := s.pool.QueryRow(ctx, query, name)

	set, err := scanAssumptionSet(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get assumption set: %w", err)
	}
	return set, nil
}

// List returns all sets ordered by name.
func (s *AssumptionSetStore) List(ctx context.Context) ([]*domain.AssumptionSet, error) {
	query := `
		SELECT name, mu_ann, vol_ann, corr, created_at
		FROM assumption_sets
		ORDER BY name
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list assumption sets: %w", err)
	}
	defer rows.Close()

	var result []*domain.AssumptionSet
	for rows.Next() {
		set, err := scanAssumptionSet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assumption set: %w", err)
		}
		result = append(result, set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assumption sets: %w", err)
	}
	return result, nil
}

// Delete removes a set. Returns ErrNotFound if it does not exist.
func (s *AssumptionSetStore) Delete(ctx context.Context, name string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM assumption_sets WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete assumption set: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssumptionSet(row rowScanner) (*domain.AssumptionSet, error) {
	var (
		set           domain.AssumptionSet
		mu, vol, corr []byte
	)
	if err := row.Scan(&set.Name, &mu, &vol, &corr, &set.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(mu, &set.Assumptions.Mu); err != nil {
		return nil, fmt.Errorf("decode mu_ann: %w", err)
	}
	if err := json.Unmarshal(vol, &set.Assumptions.Vol); err != nil {
		return nil, fmt.Errorf("decode vol_ann: %w", err)
	}
	if err := json.Unmarshal(corr, &set.Assumptions.Corr); err != nil {
		return nil, fmt.Errorf("decode corr: %w", err)
	}
	return &set, nil
}

func marshalAssumptions(a domain.Assumptions) (mu, vol, corr []byte, err error) {
	if mu, err = json.Marshal(a.Mu); err != nil {
		return nil, nil, nil, fmt.Errorf("encode mu_ann: %w", err)
	}
	if vol, err = json.Marshal(a.Vol); err != nil {
		return nil, nil, nil, fmt.Errorf("encode vol_ann: %w", err)
	}
	if corr, err = json.Marshal(a.Corr); err != nil {
		return nil, nil, nil, fmt.Errorf("encode corr: %w", err)
	}
	return mu, vol, corr, nil
}
