package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"advisor-mc-lab/internal/domain"
	"advisor-mc-lab/internal/storage"
)

func sampleSet(name string) *domain.AssumptionSet {
	return &domain.AssumptionSet{
		Name: name,
		Assumptions: domain.Assumptions{
			Mu:  map[domain.AssetClass]float64{domain.EquityUS: 0.07},
			Vol: map[domain.AssetClass]float64{domain.EquityUS: 0.16},
			Corr: map[domain.AssetClass]map[domain.AssetClass]float64{
				domain.EquityUS: {domain.EquityUS: 1},
			},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestAssumptionSetStore_InsertAndGet(t *testing.T) {
	store := NewAssumptionSetStore()
	ctx := context.Background()

	set := sampleSet("conservative")
	require.NoError(t, store.Insert(ctx, set))

	got, err := store.GetByName(ctx, "conservative")
	require.NoError(t, err)
	require.Equal(t, set.Name, got.Name)
	require.Equal(t, set.Assumptions.Mu, got.Assumptions.Mu)
}

func TestAssumptionSetStore_InsertDuplicate(t *testing.T) {
	store := NewAssumptionSetStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, sampleSet("base")))
	err := store.Insert(ctx, sampleSet("base"))
	require.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestAssumptionSetStore_InsertInvalid(t *testing.T) {
	store := NewAssumptionSetStore()
	ctx := context.Background()

	require.ErrorIs(t, store.Insert(ctx, nil), storage.ErrInvalidInput)
	require.ErrorIs(t, store.Insert(ctx, &domain.AssumptionSet{}), storage.ErrInvalidInput)
}

func TestAssumptionSetStore_GetMissing(t *testing.T) {
	store := NewAssumptionSetStore()

	_, err := store.GetByName(context.Background(), "nope")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAssumptionSetStore_ListOrdered(t *testing.T) {
	store := NewAssumptionSetStore()
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, store.Insert(ctx, sampleSet(name)))
	}

	sets, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, sets, 3)
	require.Equal(t, "alpha", sets[0].Name)
	require.Equal(t, "mid", sets[1].Name)
	require.Equal(t, "zeta", sets[2].Name)
}

func TestAssumptionSetStore_Delete(t *testing.T) {
	store := NewAssumptionSetStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, sampleSet("gone")))
	require.NoError(t, store.Delete(ctx, "gone"))

	_, err := store.GetByName(ctx, "gone")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.ErrorIs(t, store.Delete(ctx, "gone"), storage.ErrNotFound)
}

func TestAssumptionSetStore_GetReturnsCopy(t *testing.T) {
	store := NewAssumptionSetStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, sampleSet("shared")))

	got, err := store.GetByName(ctx, "shared")
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := store.GetByName(ctx, "shared")
	require.NoError(t, err)
	require.Equal(t, "shared", again.Name)
}
