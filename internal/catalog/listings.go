package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nestfit/nestfit/pkg/types"
)

// lowPricedLimit is the fixed size of the low-priced listings.
const lowPricedLimit = 20

// LowPricedFurniture returns the cheapest in-stock furniture, price ASC with
// id ASC tie-break.
func (s *Service) LowPricedFurniture(ctx context.Context) ([]types.Furniture, error) {
	items, err := s.store.QueryFurniture(ctx, []Predicate{Available{}}, OrderPriceAsc, lowPricedLimit, 0)
	if err != nil {
		return nil, storeFailure("query low priced furniture", err)
	}
	return items, nil
}

// LowPricedRentals returns the cheapest rentals, rent ASC with id ASC
// tie-break.
func (s *Service) LowPricedRentals(ctx context.Context) ([]types.Rental, error) {
	rentals, err := s.store.QueryRentals(ctx, nil, OrderRentAsc, lowPricedLimit, 0)
	if err != nil {
		return nil, storeFailure("query low priced rentals", err)
	}
	return rentals, nil
}

// GetFurniture returns one furniture item. Items whose stock is exhausted
// are withheld from detail views and report types.ErrNotFound, same as a
// missing id.
func (s *Service) GetFurniture(ctx context.Context, id int64) (types.Furniture, error) {
	item, err := s.store.GetFurniture(ctx, id)
	if err != nil {
		if isClientError(err) {
			return types.Furniture{}, err
		}
		return types.Furniture{}, storeFailure("get furniture", err)
	}
	if item.Stock <= 0 {
		return types.Furniture{}, fmt.Errorf("furniture %d: %w", id, types.ErrNotFound)
	}
	return item, nil
}

// GetRental returns one rental.
func (s *Service) GetRental(ctx context.Context, id int64) (types.Rental, error) {
	rental, err := s.store.GetRental(ctx, id)
	if err != nil {
		if isClientError(err) {
			return types.Rental{}, err
		}
		return types.Rental{}, storeFailure("get rental", err)
	}
	return rental, nil
}

// RequestRentalDocs verifies the rental exists and issues a document-request
// reference for it. The reference is a UUID v7 so references sort by issue
// time.
func (s *Service) RequestRentalDocs(ctx context.Context, rentalID int64) (string, error) {
	if _, err := s.GetRental(ctx, rentalID); err != nil {
		return "", err
	}
	ref := newReference()
	s.logger.Info("rental documents requested", "rental", rentalID, "reference", ref)
	return ref, nil
}

// newReference generates a UUID v7 reference, falling back to v4 if v7
// generation fails.
func newReference() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
