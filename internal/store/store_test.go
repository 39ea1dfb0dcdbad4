package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestfit/nestfit/internal/catalog"
	"github.com/nestfit/nestfit/pkg/types"
)

// newTestStore opens a sqlite store in a temp directory with the schema
// applied.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.Config{
		Driver: types.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.InitSchema(context.Background()))
	return s
}

func seedFurniture(t *testing.T, s *Store, rows ...types.Furniture) {
	t.Helper()
	require.NoError(t, s.InsertFurniture(context.Background(), rows))
}

func seedRentals(t *testing.T, s *Store, rows ...types.Rental) {
	t.Helper()
	require.NoError(t, s.InsertRentals(context.Background(), rows))
}

func TestOpen_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     types.Config
		wantErr error
	}{
		{"empty driver", types.Config{DSN: "x"}, types.ErrDriverEmpty},
		{"unknown driver", types.Config{Driver: "oracle", DSN: "x"}, types.ErrDriverUnknown},
		{"empty dsn", types.Config{Driver: types.DriverSQLite}, types.ErrDSNEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.cfg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInitSchema_Idempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.InitSchema(context.Background()))
}

func TestCountAndQueryFurniture_HalfOpenBuckets(t *testing.T) {
	s := newTestStore(t)
	seedFurniture(t, s,
		types.Furniture{ID: 1, Name: "below", Price: 99, Stock: 1},
		types.Furniture{ID: 2, Name: "at lower bound", Price: 100, Stock: 1},
		types.Furniture{ID: 3, Name: "inside", Price: 199, Stock: 1},
		types.Furniture{ID: 4, Name: "at upper bound", Price: 200, Stock: 1},
	)

	// Bucket [100, 200): lower bound inclusive, upper exclusive.
	preds := []catalog.Predicate{
		catalog.Range{Field: "price", Op: catalog.OpGreaterEqual, Bound: 100},
		catalog.Range{Field: "price", Op: catalog.OpLessThan, Bound: 200},
	}

	count, err := s.Count(context.Background(), catalog.KindFurniture, preds)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	items, err := s.QueryFurniture(context.Background(), preds, catalog.OrderPopularity, 10, 0)
	require.NoError(t, err)
	ids := furnitureIDs(items)
	assert.Equal(t, []int64{2, 3}, ids)
}

func TestQueryFurniture_AvailabilityAndOrdering(t *testing.T) {
	s := newTestStore(t)
	seedFurniture(t, s,
		types.Furniture{ID: 1, Popularity: 50, Stock: 1},
		types.Furniture{ID: 2, Popularity: 90, Stock: 0},
		types.Furniture{ID: 3, Popularity: 70, Stock: 2},
		types.Furniture{ID: 4, Popularity: 70, Stock: 2},
	)

	items, err := s.QueryFurniture(context.Background(),
		[]catalog.Predicate{catalog.Available{}}, catalog.OrderPopularity, 10, 0)
	require.NoError(t, err)

	// Out-of-stock row excluded; equal popularity breaks ties by id ASC.
	assert.Equal(t, []int64{3, 4, 1}, furnitureIDs(items))
}

func TestQueryFurniture_Window(t *testing.T) {
	s := newTestStore(t)
	for i := int64(1); i <= 5; i++ {
		seedFurniture(t, s, types.Furniture{ID: i, Price: i * 100, Stock: 1})
	}

	items, err := s.QueryFurniture(context.Background(), nil, catalog.OrderPriceAsc, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4}, furnitureIDs(items))
}

func TestQueryFurniture_FeatureContains(t *testing.T) {
	s := newTestStore(t)
	seedFurniture(t, s,
		types.Furniture{ID: 1, Features: "foldable,with casters", Stock: 1},
		types.Furniture{ID: 2, Features: "with drawers", Stock: 1},
	)

	items, err := s.QueryFurniture(context.Background(), []catalog.Predicate{
		catalog.Contains{Field: "features", Token: "with casters"},
	}, catalog.OrderPopularity, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, furnitureIDs(items))
}

func TestGetFurniture(t *testing.T) {
	s := newTestStore(t)
	seedFurniture(t, s, types.Furniture{ID: 1, Name: "oak desk", Stock: 0})

	// The store returns the row regardless of stock; withholding exhausted
	// rows from detail views is the service's concern.
	item, err := s.GetFurniture(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "oak desk", item.Name)

	_, err = s.GetFurniture(context.Background(), 404)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestQueryRentals_OpeningAdmits(t *testing.T) {
	s := newTestStore(t)
	seedRentals(t, s,
		types.Rental{ID: 1, DoorWidth: 120, DoorHeight: 200, Popularity: 10},
		types.Rental{ID: 2, DoorWidth: 60, DoorHeight: 60, Popularity: 90},
		types.Rental{ID: 3, DoorWidth: 200, DoorHeight: 120, Popularity: 50},
	)

	// Item 100 wide, 180 tall in some orientation. Rental 2's door admits
	// nothing; rentals 1 and 3 each admit one orientation.
	preds := []catalog.Predicate{catalog.OpeningAdmits{Pairs: [][2]int64{
		{100, 180}, {180, 100},
	}}}

	rentals, err := s.QueryRentals(context.Background(), preds, catalog.OrderPopularity, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, rentalIDs(rentals))
}

func TestRentalsInBoundingBox(t *testing.T) {
	s := newTestStore(t)
	seedRentals(t, s,
		types.Rental{ID: 1, Latitude: 5, Longitude: 5, Popularity: 10},
		types.Rental{ID: 2, Latitude: 10, Longitude: 10, Popularity: 90},
		types.Rental{ID: 3, Latitude: 11, Longitude: 5, Popularity: 50},
	)

	box := types.BoundingBox{MinLatitude: 0, MaxLatitude: 10, MinLongitude: 0, MaxLongitude: 10}
	rentals, err := s.RentalsInBoundingBox(context.Background(), box)
	require.NoError(t, err)

	// Bounds are inclusive: the corner point at (10, 10) is in.
	assert.Equal(t, []int64{2, 1}, rentalIDs(rentals))
}

func TestCoordinateInPolygon(t *testing.T) {
	s := newTestStore(t)
	seedRentals(t, s,
		types.Rental{ID: 1, Latitude: 2, Longitude: 2},
		types.Rental{ID: 2, Latitude: 9, Longitude: 9},
		types.Rental{ID: 3, Latitude: 5, Longitude: 0},
	)

	triangle := []types.Coordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: 10, Longitude: 0},
		{Latitude: 0, Longitude: 10},
	}

	ok, err := s.CoordinateInPolygon(context.Background(), 1, triangle)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.CoordinateInPolygon(context.Background(), 2, triangle)
	require.NoError(t, err)
	assert.False(t, ok)

	// Boundary points count as contained.
	ok, err = s.CoordinateInPolygon(context.Background(), 3, triangle)
	require.NoError(t, err)
	assert.True(t, ok)

	// A vanished row is simply not contained.
	ok, err = s.CoordinateInPolygon(context.Background(), 404, triangle)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetRental(t *testing.T) {
	s := newTestStore(t)
	seedRentals(t, s, types.Rental{ID: 7, Name: "garden flat", Latitude: 1.5, Longitude: 2.5})

	rental, err := s.GetRental(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "garden flat", rental.Name)
	assert.Equal(t, 1.5, rental.Latitude)

	_, err = s.GetRental(context.Background(), 404)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestWithTransaction_Reservation(t *testing.T) {
	s := newTestStore(t)
	seedFurniture(t, s, types.Furniture{ID: 1, Stock: 2})

	err := s.WithTransaction(context.Background(), func(tx catalog.Tx) error {
		item, ok, err := tx.FurnitureInStockForUpdate(context.Background(), 1)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(2), item.Stock)
		return tx.DecrementStock(context.Background(), 1)
	})
	require.NoError(t, err)

	item, err := s.GetFurniture(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.Stock)
}

func TestWithTransaction_RollbackOnError(t *testing.T) {
	s := newTestStore(t)
	seedFurniture(t, s, types.Furniture{ID: 1, Stock: 2})

	err := s.WithTransaction(context.Background(), func(tx catalog.Tx) error {
		if err := tx.DecrementStock(context.Background(), 1); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	item, err := s.GetFurniture(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), item.Stock, "a failed transaction must decrement nothing")
}

func TestWithTransaction_ExhaustedStock(t *testing.T) {
	s := newTestStore(t)
	seedFurniture(t, s, types.Furniture{ID: 1, Stock: 0})

	err := s.WithTransaction(context.Background(), func(tx catalog.Tx) error {
		_, ok, err := tx.FurnitureInStockForUpdate(context.Background(), 1)
		require.NoError(t, err)
		assert.False(t, ok, "an exhausted row must not be offered for update")
		return nil
	})
	require.NoError(t, err)
}

func TestWithTransaction_ConcurrentLastUnit(t *testing.T) {
	s := newTestStore(t)
	seedFurniture(t, s, types.Furniture{ID: 1, Stock: 1})

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.WithTransaction(context.Background(), func(tx catalog.Tx) error {
				_, ok, err := tx.FurnitureInStockForUpdate(context.Background(), 1)
				if err != nil {
					return err
				}
				if !ok {
					return types.ErrOutOfStock
				}
				return tx.DecrementStock(context.Background(), 1)
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded, "exactly one reservation may win the last unit")

	item, err := s.GetFurniture(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), item.Stock)
}

func TestInsertFurniture_AllOrNothing(t *testing.T) {
	s := newTestStore(t)
	seedFurniture(t, s, types.Furniture{ID: 1, Stock: 1})

	// The duplicate id fails the batch; the valid row must not survive.
	err := s.InsertFurniture(context.Background(), []types.Furniture{
		{ID: 2, Stock: 1},
		{ID: 1, Stock: 1},
	})
	require.Error(t, err)

	count, err := s.Count(context.Background(), catalog.KindFurniture, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func furnitureIDs(items []types.Furniture) []int64 {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func rentalIDs(rentals []types.Rental) []int64 {
	ids := make([]int64, 0, len(rentals))
	for _, r := range rentals {
		ids = append(ids, r.ID)
	}
	return ids
}
