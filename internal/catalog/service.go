// Package catalog implements the Nestfit search and reservation engine:
// predicate construction from filter selections, paginated catalog search,
// polygon area search, furniture-to-door orientation matching, and the
// transactional stock reservation protocol. Storage is delegated to a Store
// implementation; the package holds no mutable shared state beyond the
// read-only condition fixtures.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nestfit/nestfit/pkg/types"
)

// EntityKind selects one of the two catalogs.
type EntityKind string

// Catalog entity kinds.
const (
	KindFurniture EntityKind = "furniture"
	KindRental    EntityKind = "rental"
)

// Order is a fixed result ordering. Orderings are an enumerated contract, not
// free-form, so count and data queries can never disagree.
type Order int

const (
	// OrderPopularity sorts popularity DESC, id ASC. The id tie-break keeps
	// pagination stable across repeated calls over unchanged data.
	OrderPopularity Order = iota
	// OrderPriceAsc sorts price ASC, id ASC (furniture only).
	OrderPriceAsc
	// OrderRentAsc sorts rent ASC, id ASC (rentals only).
	OrderRentAsc
)

// Store is the storage collaborator consumed by the service. Implementations
// translate predicates to their native query form; every call is blocking
// I/O and honors context cancellation.
type Store interface {
	// Count returns how many rows of the kind match the predicates.
	Count(ctx context.Context, kind EntityKind, preds []Predicate) (int64, error)

	// QueryFurniture returns matching furniture rows with the given ordering
	// and window. Predicates and their bind order must match Count exactly.
	QueryFurniture(ctx context.Context, preds []Predicate, order Order, limit, offset int64) ([]types.Furniture, error)

	// QueryRentals is QueryFurniture for the rental catalog.
	QueryRentals(ctx context.Context, preds []Predicate, order Order, limit, offset int64) ([]types.Rental, error)

	// RentalsInBoundingBox returns rentals whose coordinate lies inside the
	// box (bounds inclusive), ordered popularity DESC, id ASC.
	RentalsInBoundingBox(ctx context.Context, box types.BoundingBox) ([]types.Rental, error)

	// CoordinateInPolygon evaluates the exact containment predicate for one
	// rental: does its coordinate lie inside the polygon, boundary included.
	CoordinateInPolygon(ctx context.Context, rentalID int64, polygon []types.Coordinate) (bool, error)

	// GetFurniture returns the furniture row by id regardless of stock.
	// A missing id reports types.ErrNotFound.
	GetFurniture(ctx context.Context, id int64) (types.Furniture, error)

	// GetRental returns the rental row by id. A missing id reports
	// types.ErrNotFound.
	GetRental(ctx context.Context, id int64) (types.Rental, error)

	// WithTransaction runs fn inside a storage transaction. A non-nil error
	// from fn rolls the transaction back and is returned unchanged.
	WithTransaction(ctx context.Context, fn func(Tx) error) error

	// InsertFurniture bulk-inserts catalog rows, all-or-nothing.
	InsertFurniture(ctx context.Context, rows []types.Furniture) error

	// InsertRentals bulk-inserts catalog rows, all-or-nothing.
	InsertRentals(ctx context.Context, rows []types.Rental) error
}

// Tx is the transactional surface used by the reservation protocol.
type Tx interface {
	// FurnitureInStockForUpdate reads the row under a row-level write lock,
	// filtered to stock > 0. ok is false when the id is missing or the stock
	// is exhausted; the two cases are not distinguished.
	FurnitureInStockForUpdate(ctx context.Context, id int64) (f types.Furniture, ok bool, err error)

	// DecrementStock decrements the row's stock by exactly one.
	DecrementStock(ctx context.Context, id int64) error
}

// Service exposes the catalog operations. It is safe for concurrent use; the
// only shared state is the store handle and the immutable condition
// fixtures.
type Service struct {
	store     Store
	furniture *types.FurnitureConditions
	rentals   *types.RentalConditions
	logger    *slog.Logger
	metrics   *Metrics
}

// Options carries optional service collaborators.
type Options struct {
	// Logger receives operational logs. Nil discards them.
	Logger *slog.Logger
	// Metrics receives operation counters. Nil disables recording.
	Metrics *Metrics
}

// NewService constructs a catalog service over the given store and condition
// fixtures.
func NewService(store Store, furniture *types.FurnitureConditions, rentals *types.RentalConditions, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		store:     store,
		furniture: furniture,
		rentals:   rentals,
		logger:    logger,
		metrics:   opts.Metrics,
	}
}

// FurnitureConditions returns the loaded furniture search-condition fixture.
func (s *Service) FurnitureConditions() *types.FurnitureConditions { return s.furniture }

// RentalConditions returns the loaded rental search-condition fixture.
func (s *Service) RentalConditions() *types.RentalConditions { return s.rentals }

// storeFailure wraps a storage error so boundaries can match
// types.ErrStorageUnavailable while logs keep the cause.
func storeFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, types.ErrStorageUnavailable, err)
}

// isClientError reports whether err is one of the typed client-error kinds
// that must pass through unchanged rather than being wrapped as a storage
// failure.
func isClientError(err error) bool {
	return errors.Is(err, types.ErrNotFound) ||
		errors.Is(err, types.ErrInvalidFilter) ||
		errors.Is(err, types.ErrNoSearchCriteria) ||
		errors.Is(err, types.ErrEmptyPolygon) ||
		errors.Is(err, types.ErrReferenceNotFound) ||
		errors.Is(err, types.ErrOutOfStock)
}
