package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nestfit/nestfit/pkg/types"
)

// areaResultCap bounds an area search result. The cap applies after
// containment filtering and ordering, so it keeps the most popular contained
// rentals rather than the first bounding-box candidates.
const areaResultCap = 50

// areaCheckConcurrency bounds the parallel containment checks per request.
const areaCheckConcurrency = 8

// SearchRentalsInArea returns the rentals whose coordinate lies inside the
// polygon, most popular first, capped at areaResultCap.
//
// The storage work is two-staged: a cheap bounding-box query narrows the
// candidates to points that could possibly match, then the exact containment
// predicate runs per candidate. Candidates are checked concurrently but the
// surviving rows keep the popularity order the bounding-box query
// established; nothing re-sorts after that stage.
func (s *Service) SearchRentalsInArea(ctx context.Context, polygon []types.Coordinate) (RentalSearchResult, error) {
	if len(polygon) == 0 {
		return RentalSearchResult{}, types.ErrEmptyPolygon
	}

	box := types.BoundingBoxOf(polygon)
	candidates, err := s.store.RentalsInBoundingBox(ctx, box)
	if err != nil {
		return RentalSearchResult{}, storeFailure("query bounding box", err)
	}

	contained := make([]bool, len(candidates))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(areaCheckConcurrency)
	for i, candidate := range candidates {
		group.Go(func() error {
			ok, err := s.store.CoordinateInPolygon(groupCtx, candidate.ID, polygon)
			if err != nil {
				return err
			}
			contained[i] = ok
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return RentalSearchResult{}, storeFailure("containment check", err)
	}

	rentals := make([]types.Rental, 0, areaResultCap)
	for i, candidate := range candidates {
		if !contained[i] {
			continue
		}
		rentals = append(rentals, candidate)
		if len(rentals) == areaResultCap {
			break
		}
	}

	s.metrics.areaSearch(len(candidates), len(rentals))
	s.logger.Debug("area search", "vertices", len(polygon), "candidates", len(candidates), "matched", len(rentals))
	return RentalSearchResult{Count: int64(len(rentals)), Rentals: rentals}, nil
}
