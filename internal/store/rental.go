package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nestfit/nestfit/internal/catalog"
	"github.com/nestfit/nestfit/pkg/types"
)

const rentalColumnList = "id, name, description, thumbnail, address, latitude, longitude, rent, door_height, door_width, features, popularity"

// QueryRentals returns matching rental rows with the given ordering and
// window.
func (s *Store) QueryRentals(ctx context.Context, preds []catalog.Predicate, order catalog.Order, limit, offset int64) ([]types.Rental, error) {
	where, args, err := buildWhere(rentalColumns, preds)
	if err != nil {
		return nil, err
	}
	orderBy, err := orderClause(order)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + rentalColumnList + " FROM rental"
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY " + orderBy + " LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	return s.queryRentals(ctx, query, args)
}

// RentalsInBoundingBox returns rentals whose coordinate lies inside the box,
// bounds inclusive, most popular first. The box strictly contains whatever
// polygon it was derived from, so this coarse pass may include points
// outside the polygon but never excludes points inside it.
func (s *Store) RentalsInBoundingBox(ctx context.Context, box types.BoundingBox) ([]types.Rental, error) {
	query := "SELECT " + rentalColumnList + " FROM rental" +
		" WHERE latitude >= ? AND latitude <= ? AND longitude >= ? AND longitude <= ?" +
		" ORDER BY popularity DESC, id ASC"
	args := []any{box.MinLatitude, box.MaxLatitude, box.MinLongitude, box.MaxLongitude}
	return s.queryRentals(ctx, query, args)
}

// CoordinateInPolygon re-reads the rental's coordinate and evaluates the
// exact containment predicate, boundary points counted as contained. A
// vanished row is simply not contained.
func (s *Store) CoordinateInPolygon(ctx context.Context, rentalID int64, polygon []types.Coordinate) (bool, error) {
	var c types.Coordinate
	query := s.dialect.rebind("SELECT latitude, longitude FROM rental WHERE id = ?")
	err := s.db.QueryRowContext(ctx, query, rentalID).Scan(&c.Latitude, &c.Longitude)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("get rental coordinate %d: %w", rentalID, err)
	}
	return polygonContains(polygon, c), nil
}

// GetRental returns the rental row by id.
func (s *Store) GetRental(ctx context.Context, id int64) (types.Rental, error) {
	query := s.dialect.rebind("SELECT " + rentalColumnList + " FROM rental WHERE id = ?")
	r, err := scanRental(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Rental{}, fmt.Errorf("rental %d: %w", id, types.ErrNotFound)
		}
		return types.Rental{}, fmt.Errorf("get rental %d: %w", id, err)
	}
	return r, nil
}

func (s *Store) queryRentals(ctx context.Context, query string, args []any) ([]types.Rental, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query rentals: %w", err)
	}
	defer rows.Close()

	var out []types.Rental
	for rows.Next() {
		r, err := scanRental(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rental: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rentals: %w", err)
	}
	return out, nil
}

func scanRental(row scanner) (types.Rental, error) {
	var r types.Rental
	err := row.Scan(&r.ID, &r.Name, &r.Description, &r.Thumbnail, &r.Address, &r.Latitude,
		&r.Longitude, &r.Rent, &r.DoorHeight, &r.DoorWidth, &r.Features, &r.Popularity)
	return r, err
}
