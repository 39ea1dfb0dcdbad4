package catalog

import (
	"context"

	"github.com/nestfit/nestfit/pkg/types"
)

// PageCursor selects one result window. Offset is Page * PerPage; no upper
// bound is enforced, a window past the end returns empty items with a valid
// count.
type PageCursor struct {
	Page    int64
	PerPage int64
}

// Offset returns the row offset of the window.
func (c PageCursor) Offset() int64 { return c.Page * c.PerPage }

// FurnitureSearchResult is one page of furniture results plus the total
// match count across all pages.
type FurnitureSearchResult struct {
	Count     int64             `json:"count"`
	Furniture []types.Furniture `json:"furniture"`
}

// RentalSearchResult is one page of rental results plus the total match
// count.
type RentalSearchResult struct {
	Count   int64          `json:"count"`
	Rentals []types.Rental `json:"rentals"`
}

// SearchFurniture runs a filtered, paginated furniture search. The count and
// data queries share one predicate set so the count stays consistent with
// what paging would enumerate; both reads still see independent snapshots
// under concurrent writes, an accepted trade-off.
func (s *Service) SearchFurniture(ctx context.Context, filter FurnitureFilter, cursor PageCursor) (FurnitureSearchResult, error) {
	preds, err := BuildFurniturePredicates(s.furniture, filter)
	if err != nil {
		s.metrics.searchRejected(KindFurniture)
		return FurnitureSearchResult{}, err
	}

	count, err := s.store.Count(ctx, KindFurniture, preds)
	if err != nil {
		return FurnitureSearchResult{}, storeFailure("count furniture", err)
	}
	items, err := s.store.QueryFurniture(ctx, preds, OrderPopularity, cursor.PerPage, cursor.Offset())
	if err != nil {
		return FurnitureSearchResult{}, storeFailure("query furniture", err)
	}

	s.metrics.searchServed(KindFurniture)
	s.logger.Debug("furniture search", "count", count, "page", cursor.Page, "perPage", cursor.PerPage)
	return FurnitureSearchResult{Count: count, Furniture: items}, nil
}

// SearchRentals runs a filtered, paginated rental search.
func (s *Service) SearchRentals(ctx context.Context, filter RentalFilter, cursor PageCursor) (RentalSearchResult, error) {
	preds, err := BuildRentalPredicates(s.rentals, filter)
	if err != nil {
		s.metrics.searchRejected(KindRental)
		return RentalSearchResult{}, err
	}

	count, err := s.store.Count(ctx, KindRental, preds)
	if err != nil {
		return RentalSearchResult{}, storeFailure("count rentals", err)
	}
	items, err := s.store.QueryRentals(ctx, preds, OrderPopularity, cursor.PerPage, cursor.Offset())
	if err != nil {
		return RentalSearchResult{}, storeFailure("query rentals", err)
	}

	s.metrics.searchServed(KindRental)
	s.logger.Debug("rental search", "count", count, "page", cursor.Page, "perPage", cursor.PerPage)
	return RentalSearchResult{Count: count, Rentals: items}, nil
}
