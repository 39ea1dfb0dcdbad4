package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nestfit/nestfit/internal/catalog"
	"github.com/nestfit/nestfit/pkg/types"
)

const furnitureColumnList = "id, name, description, thumbnail, price, height, width, depth, color, features, kind, popularity, stock"

// Count returns how many rows of the kind match the predicates.
func (s *Store) Count(ctx context.Context, kind catalog.EntityKind, preds []catalog.Predicate) (int64, error) {
	table, columns, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	where, args, err := buildWhere(columns, preds)
	if err != nil {
		return 0, err
	}
	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var count int64
	if err := s.db.QueryRowContext(ctx, s.dialect.rebind(query), args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return count, nil
}

// QueryFurniture returns matching furniture rows with the given ordering and
// window.
func (s *Store) QueryFurniture(ctx context.Context, preds []catalog.Predicate, order catalog.Order, limit, offset int64) ([]types.Furniture, error) {
	where, args, err := buildWhere(furnitureColumns, preds)
	if err != nil {
		return nil, err
	}
	orderBy, err := orderClause(order)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + furnitureColumnList + " FROM furniture"
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY " + orderBy + " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query furniture: %w", err)
	}
	defer rows.Close()

	var out []types.Furniture
	for rows.Next() {
		f, err := scanFurniture(rows)
		if err != nil {
			return nil, fmt.Errorf("scan furniture: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate furniture: %w", err)
	}
	return out, nil
}

// GetFurniture returns the furniture row by id regardless of stock.
func (s *Store) GetFurniture(ctx context.Context, id int64) (types.Furniture, error) {
	query := s.dialect.rebind("SELECT " + furnitureColumnList + " FROM furniture WHERE id = ?")
	f, err := scanFurniture(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Furniture{}, fmt.Errorf("furniture %d: %w", id, types.ErrNotFound)
		}
		return types.Furniture{}, fmt.Errorf("get furniture %d: %w", id, err)
	}
	return f, nil
}

// scanner abstracts sql.Row and sql.Rows for the scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanFurniture(row scanner) (types.Furniture, error) {
	var f types.Furniture
	err := row.Scan(&f.ID, &f.Name, &f.Description, &f.Thumbnail, &f.Price, &f.Height,
		&f.Width, &f.Depth, &f.Color, &f.Features, &f.Kind, &f.Popularity, &f.Stock)
	return f, err
}
