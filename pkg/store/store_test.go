package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// memRepo is an in-memory CartRepository with fault injection.
type memRepo struct {
	carts     map[string]types.Cart
	saveErr   error
	loadErr   error
	saveCalls int
}

func newMemRepo() *memRepo {
	return &memRepo{carts: map[string]types.Cart{}}
}

func (r *memRepo) SaveCart(pageID string, cart *types.Cart) error {
	r.saveCalls++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.carts[pageID] = cart.Clone()
	return nil
}

func (r *memRepo) LoadCart(pageID string) (*types.Cart, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	if c, ok := r.carts[pageID]; ok {
		clone := c.Clone()
		return &clone, nil
	}
	return types.NewCart(), nil
}

func TestStoreMutationsPersist(t *testing.T) {
	repo := newMemRepo()
	s := New("page-1", repo)

	s.Add(types.ItemInput{ID: "b1", Title: "Widget", UnitPrice: 1000, Quantity: 1})
	s.Add(types.ItemInput{ID: "b1", Quantity: 2})
	s.SetQuantity(0, 5)

	persisted := repo.carts["page-1"]
	require.Len(t, persisted.Items, 1)
	assert.Equal(t, 5, persisted.Items[0].Quantity)
	assert.Equal(t, 5000.0, persisted.GrandTotal)
	assert.Equal(t, 3, repo.saveCalls, "every mutation persists")
}

func TestStoreHydratesFromRepository(t *testing.T) {
	repo := newMemRepo()
	seed := types.NewCart()
	seed.Add(types.ItemInput{Title: "Widget", UnitPrice: 1000, Quantity: 2})
	repo.carts["page-1"] = seed.Clone()

	s := New("page-1", repo)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2000.0, s.GrandTotal())
}

func TestStoreHydrationRecomputesStaleTotal(t *testing.T) {
	repo := newMemRepo()
	repo.carts["page-1"] = types.Cart{
		Items: []types.LineItem{{Title: "Widget", UnitPrice: 500, Quantity: 1, LineTotal: 500}},
	}

	s := New("page-1", repo)
	assert.Equal(t, 500.0, s.GrandTotal())
}

func TestStoreHydrationFailureDegradesToEmpty(t *testing.T) {
	repo := newMemRepo()
	repo.loadErr = errors.New("disk on fire")

	core, logs := observer.New(zap.WarnLevel)
	s := New("page-1", repo, WithLogger(zap.New(core)))

	assert.Equal(t, 0, s.Len())
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "hydration failed")
}

func TestStoreSaveFailureKeepsMutation(t *testing.T) {
	repo := newMemRepo()
	repo.saveErr = errors.New("storage full")

	core, logs := observer.New(zap.ErrorLevel)
	s := New("page-1", repo, WithLogger(zap.New(core)))

	s.Add(types.ItemInput{Title: "Widget", UnitPrice: 1000, Quantity: 1})

	// The in-memory mutation survives even though persistence failed.
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1000.0, s.GrandTotal())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "cart persistence failed", logs.All()[0].Message)
}

func TestStoreClearIdempotentAndPersisted(t *testing.T) {
	repo := newMemRepo()
	s := New("page-1", repo)
	s.Add(types.ItemInput{Title: "Widget", UnitPrice: 1000, Quantity: 2})

	s.Clear()
	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0.0, s.GrandTotal())
	persisted := repo.carts["page-1"]
	assert.Empty(t, persisted.Items)
	assert.Equal(t, 0.0, persisted.GrandTotal)
}

func TestStoreSnapshotIsDetached(t *testing.T) {
	repo := newMemRepo()
	s := New("page-1", repo)
	s.Add(types.ItemInput{Title: "Widget", UnitPrice: 1000, Quantity: 2})

	snap := s.Snapshot()
	s.Clear()

	assert.Len(t, snap.Items, 1)
	assert.Equal(t, 2000.0, snap.GrandTotal)
	assert.Equal(t, 0, s.Len())
}

func TestStoreRemoveOutOfRange(t *testing.T) {
	repo := newMemRepo()
	s := New("page-1", repo)
	s.Add(types.ItemInput{Title: "Widget", UnitPrice: 1000, Quantity: 1})

	s.Remove(5)
	s.Remove(-1)

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1000.0, s.GrandTotal())
}
