package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestfit/nestfit/pkg/types"
)

func TestLowPricedFurniture(t *testing.T) {
	store := newFakeStore()
	store.furniture[1] = types.Furniture{ID: 1, Price: 100, Stock: 1}
	svc := newTestService(store)

	items, err := svc.LowPricedFurniture(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// Only in-stock rows qualify for the listing.
	assert.Equal(t, []Predicate{Available{}}, store.lastQueryPreds)
	assert.Equal(t, OrderPriceAsc, store.lastOrder)
	assert.Equal(t, int64(lowPricedLimit), store.lastLimit)
}

func TestLowPricedRentals(t *testing.T) {
	store := newFakeStore()
	store.rentals = []types.Rental{{ID: 1, Rent: 40000}}
	svc := newTestService(store)

	rentals, err := svc.LowPricedRentals(context.Background())
	require.NoError(t, err)
	assert.Len(t, rentals, 1)

	assert.Nil(t, store.lastQueryPreds)
	assert.Equal(t, OrderRentAsc, store.lastOrder)
	assert.Equal(t, int64(lowPricedLimit), store.lastLimit)
}

func TestGetFurniture(t *testing.T) {
	store := newFakeStore()
	store.furniture[1] = types.Furniture{ID: 1, Name: "pine table", Stock: 2}
	store.furniture[2] = types.Furniture{ID: 2, Name: "sold-out sofa", Stock: 0}
	svc := newTestService(store)

	t.Run("in stock", func(t *testing.T) {
		item, err := svc.GetFurniture(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "pine table", item.Name)
	})

	t.Run("exhausted stock reads as missing", func(t *testing.T) {
		_, err := svc.GetFurniture(context.Background(), 2)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := svc.GetFurniture(context.Background(), 404)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestGetListingStorageFailure(t *testing.T) {
	store := newFakeStore()
	store.furniture[1] = types.Furniture{ID: 1, Stock: 1}
	store.rentals = []types.Rental{{ID: 5}}
	store.getErr = errors.New("connection reset")
	svc := newTestService(store)

	// Lookup failures that are not the caller's fault surface as storage
	// errors, not as a missing row.
	_, err := svc.GetFurniture(context.Background(), 1)
	assert.ErrorIs(t, err, types.ErrStorageUnavailable)
	assert.NotErrorIs(t, err, types.ErrNotFound)

	_, err = svc.GetRental(context.Background(), 5)
	assert.ErrorIs(t, err, types.ErrStorageUnavailable)
	assert.NotErrorIs(t, err, types.ErrNotFound)
}

func TestGetRental(t *testing.T) {
	store := newFakeStore()
	store.rentals = []types.Rental{{ID: 5, Name: "garden flat"}}
	svc := newTestService(store)

	rental, err := svc.GetRental(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "garden flat", rental.Name)

	_, err = svc.GetRental(context.Background(), 404)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestRequestRentalDocs(t *testing.T) {
	store := newFakeStore()
	store.rentals = []types.Rental{{ID: 5}}
	svc := newTestService(store)

	t.Run("issues a parseable reference", func(t *testing.T) {
		ref, err := svc.RequestRentalDocs(context.Background(), 5)
		require.NoError(t, err)
		_, err = uuid.Parse(ref)
		assert.NoError(t, err)
	})

	t.Run("references are unique per request", func(t *testing.T) {
		a, err := svc.RequestRentalDocs(context.Background(), 5)
		require.NoError(t, err)
		b, err := svc.RequestRentalDocs(context.Background(), 5)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("unknown rental", func(t *testing.T) {
		_, err := svc.RequestRentalDocs(context.Background(), 404)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}
