package catalog

import (
	"context"
	"sync"

	"github.com/nestfit/nestfit/pkg/types"
)

// fakeStore is an in-memory Store for service tests. It records the
// arguments of the last count and query calls so tests can assert on the
// predicate sets and windows the service passes down.
type fakeStore struct {
	mu sync.Mutex

	furniture map[int64]types.Furniture
	rentals   []types.Rental

	// containment maps rental id to the polygon-containment answer.
	containment map[int64]bool

	countErr   error
	queryErr   error
	containErr error
	getErr     error
	txErr      error

	lastCountKind  EntityKind
	lastCountPreds []Predicate
	lastQueryPreds []Predicate
	lastOrder      Order
	lastLimit      int64
	lastOffset     int64
	lastBox        types.BoundingBox

	insertedFurniture []types.Furniture
	insertedRentals   []types.Rental
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		furniture:   make(map[int64]types.Furniture),
		containment: make(map[int64]bool),
	}
}

func (f *fakeStore) Count(_ context.Context, kind EntityKind, preds []Predicate) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.countErr != nil {
		return 0, f.countErr
	}
	f.lastCountKind = kind
	f.lastCountPreds = preds
	if kind == KindFurniture {
		return int64(len(f.furniture)), nil
	}
	return int64(len(f.rentals)), nil
}

func (f *fakeStore) QueryFurniture(_ context.Context, preds []Predicate, order Order, limit, offset int64) ([]types.Furniture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	f.lastQueryPreds = preds
	f.lastOrder = order
	f.lastLimit = limit
	f.lastOffset = offset
	var out []types.Furniture
	for _, item := range f.furniture {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeStore) QueryRentals(_ context.Context, preds []Predicate, order Order, limit, offset int64) ([]types.Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	f.lastQueryPreds = preds
	f.lastOrder = order
	f.lastLimit = limit
	f.lastOffset = offset
	return f.rentals, nil
}

func (f *fakeStore) RentalsInBoundingBox(_ context.Context, box types.BoundingBox) ([]types.Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	f.lastBox = box
	return f.rentals, nil
}

func (f *fakeStore) CoordinateInPolygon(_ context.Context, rentalID int64, _ []types.Coordinate) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.containErr != nil {
		return false, f.containErr
	}
	return f.containment[rentalID], nil
}

func (f *fakeStore) GetFurniture(_ context.Context, id int64) (types.Furniture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return types.Furniture{}, f.getErr
	}
	item, ok := f.furniture[id]
	if !ok {
		return types.Furniture{}, types.ErrNotFound
	}
	return item, nil
}

func (f *fakeStore) GetRental(_ context.Context, id int64) (types.Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return types.Rental{}, f.getErr
	}
	for _, r := range f.rentals {
		if r.ID == id {
			return r, nil
		}
	}
	return types.Rental{}, types.ErrNotFound
}

// WithTransaction serializes transactions with the store mutex, mirroring a
// row lock: concurrent reservations on the same row run one at a time.
// Decrements apply only when fn succeeds.
func (f *fakeStore) WithTransaction(_ context.Context, fn func(Tx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.txErr != nil {
		return f.txErr
	}
	tx := &fakeTx{store: f}
	if err := fn(tx); err != nil {
		return err
	}
	for _, id := range tx.decremented {
		item := f.furniture[id]
		item.Stock--
		f.furniture[id] = item
	}
	return nil
}

func (f *fakeStore) InsertFurniture(_ context.Context, rows []types.Furniture) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertedFurniture = append(f.insertedFurniture, rows...)
	return nil
}

func (f *fakeStore) InsertRentals(_ context.Context, rows []types.Rental) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertedRentals = append(f.insertedRentals, rows...)
	return nil
}

type fakeTx struct {
	store       *fakeStore
	decremented []int64
}

func (t *fakeTx) FurnitureInStockForUpdate(_ context.Context, id int64) (types.Furniture, bool, error) {
	item, ok := t.store.furniture[id]
	if !ok || item.Stock <= 0 {
		return types.Furniture{}, false, nil
	}
	return item, true, nil
}

func (t *fakeTx) DecrementStock(_ context.Context, id int64) error {
	t.decremented = append(t.decremented, id)
	return nil
}

var _ Store = (*fakeStore)(nil)
