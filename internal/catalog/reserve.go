package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/nestfit/nestfit/pkg/types"
)

// ReserveFurniture reserves one unit of the furniture item's stock.
//
// The check and the decrement run inside a single storage transaction: the
// row is read under a row-level write lock filtered to stock > 0, so two
// concurrent reservations on the same row serialize and at most one can
// observe the last unit. A missing id and exhausted stock both report
// types.ErrOutOfStock; the protocol does not distinguish them. Any failure
// at any step rolls the transaction back — no lock outlives the call.
func (s *Service) ReserveFurniture(ctx context.Context, furnitureID int64) error {
	err := s.store.WithTransaction(ctx, func(tx Tx) error {
		_, ok, err := tx.FurnitureInStockForUpdate(ctx, furnitureID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("furniture %d: %w", furnitureID, types.ErrOutOfStock)
		}
		return tx.DecrementStock(ctx, furnitureID)
	})
	if err != nil {
		if errors.Is(err, types.ErrOutOfStock) {
			s.metrics.reservation("rejected")
			return err
		}
		s.metrics.reservation("error")
		return storeFailure("reserve furniture", err)
	}

	s.metrics.reservation("reserved")
	s.logger.Info("furniture reserved", "furniture", furnitureID)
	return nil
}
