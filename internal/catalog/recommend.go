package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/nestfit/nestfit/pkg/types"
)

// orientationPairs enumerates the six ordered 2-of-3 axis pairings of a
// furniture item's (width, height, depth) dimensions. Rotating the item
// presents any pairing as its (width, height) footprint, so a door admits
// the item iff door width >= first and door height >= second for at least
// one pairing. A constant table keeps the OR-of-six query trivially
// extensible should a dimension ever be added.
var orientationPairs = [6][2]int{
	{0, 1}, // width, height
	{0, 2}, // width, depth
	{1, 0}, // height, width
	{1, 2}, // height, depth
	{2, 0}, // depth, width
	{2, 1}, // depth, height
}

// RecommendRentals returns up to limit rentals whose door admits the
// referenced furniture item in any orientation, most popular first. An
// unresolvable furniture id fails with types.ErrReferenceNotFound so callers
// can distinguish bad input from an empty match.
func (s *Service) RecommendRentals(ctx context.Context, furnitureID int64, limit int64) ([]types.Rental, error) {
	item, err := s.store.GetFurniture(ctx, furnitureID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, fmt.Errorf("furniture %d: %w", furnitureID, types.ErrReferenceNotFound)
		}
		return nil, storeFailure("get furniture", err)
	}

	dims := item.Dimensions()
	pairs := make([][2]int64, 0, len(orientationPairs))
	for _, p := range orientationPairs {
		pairs = append(pairs, [2]int64{dims[p[0]], dims[p[1]]})
	}

	preds := []Predicate{OpeningAdmits{Pairs: pairs}}
	rentals, err := s.store.QueryRentals(ctx, preds, OrderPopularity, limit, 0)
	if err != nil {
		return nil, storeFailure("query admitting rentals", err)
	}

	s.logger.Debug("rental recommendation", "furniture", furnitureID, "matched", len(rentals))
	return rentals, nil
}
