package store

import (
	"context"
	"fmt"

	"github.com/nestfit/nestfit/pkg/types"
)

const (
	insertFurnitureSQL = "INSERT INTO furniture (" + furnitureColumnList + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	insertRentalSQL    = "INSERT INTO rental (" + rentalColumnList + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
)

// InsertFurniture inserts the rows in one transaction; any failure inserts
// nothing.
func (s *Store) InsertFurniture(ctx context.Context, rows []types.Furniture) error {
	return s.bulkInsert(ctx, insertFurnitureSQL, len(rows), func(i int) []any {
		f := rows[i]
		return []any{f.ID, f.Name, f.Description, f.Thumbnail, f.Price, f.Height,
			f.Width, f.Depth, f.Color, f.Features, f.Kind, f.Popularity, f.Stock}
	})
}

// InsertRentals inserts the rows in one transaction; any failure inserts
// nothing.
func (s *Store) InsertRentals(ctx context.Context, rows []types.Rental) error {
	return s.bulkInsert(ctx, insertRentalSQL, len(rows), func(i int) []any {
		r := rows[i]
		return []any{r.ID, r.Name, r.Description, r.Thumbnail, r.Address, r.Latitude,
			r.Longitude, r.Rent, r.DoorHeight, r.DoorWidth, r.Features, r.Popularity}
	})
}

func (s *Store) bulkInsert(ctx context.Context, query string, n int, argsAt func(int) []any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.dialect.rebind(query))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range n {
		if _, err := stmt.ExecContext(ctx, argsAt(i)...); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	return nil
}
