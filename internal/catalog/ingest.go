package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/nestfit/nestfit/pkg/types"
)

// Column counts of the catalog CSV formats.
const (
	furnitureCSVColumns = 13
	rentalCSVColumns    = 12
)

// ImportFurnitureCSV parses furniture rows from r and inserts them in a
// single transaction; a malformed record or failed insert imports nothing.
// Returns the number of rows imported.
//
// Column order: id, name, description, thumbnail, price, height, width,
// depth, color, features, kind, popularity, stock.
func (s *Service) ImportFurnitureCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = furnitureCSVColumns

	var rows []types.Furniture
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read furniture record: %w", err)
		}
		row, err := parseFurnitureRecord(record)
		if err != nil {
			return 0, err
		}
		rows = append(rows, row)
	}

	if err := s.store.InsertFurniture(ctx, rows); err != nil {
		return 0, storeFailure("insert furniture", err)
	}

	batch := newReference()
	s.logger.Info("furniture imported", "rows", len(rows), "batch", batch)
	return len(rows), nil
}

// ImportRentalCSV parses rental rows from r and inserts them in a single
// transaction.
//
// Column order: id, name, description, thumbnail, address, latitude,
// longitude, rent, door_height, door_width, features, popularity.
func (s *Service) ImportRentalCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = rentalCSVColumns

	var rows []types.Rental
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read rental record: %w", err)
		}
		row, err := parseRentalRecord(record)
		if err != nil {
			return 0, err
		}
		rows = append(rows, row)
	}

	if err := s.store.InsertRentals(ctx, rows); err != nil {
		return 0, storeFailure("insert rentals", err)
	}

	batch := newReference()
	s.logger.Info("rentals imported", "rows", len(rows), "batch", batch)
	return len(rows), nil
}

func parseFurnitureRecord(record []string) (types.Furniture, error) {
	var (
		f   types.Furniture
		err error
	)
	f.Name, f.Description, f.Thumbnail = record[1], record[2], record[3]
	f.Color, f.Features, f.Kind = record[8], record[9], record[10]
	for _, field := range []struct {
		dst *int64
		raw string
		col string
	}{
		{&f.ID, record[0], "id"},
		{&f.Price, record[4], "price"},
		{&f.Height, record[5], "height"},
		{&f.Width, record[6], "width"},
		{&f.Depth, record[7], "depth"},
		{&f.Popularity, record[11], "popularity"},
		{&f.Stock, record[12], "stock"},
	} {
		if *field.dst, err = strconv.ParseInt(field.raw, 10, 64); err != nil {
			return types.Furniture{}, fmt.Errorf("parse furniture %s %q: %w", field.col, field.raw, err)
		}
	}
	return f, nil
}

func parseRentalRecord(record []string) (types.Rental, error) {
	var (
		r   types.Rental
		err error
	)
	r.Name, r.Description, r.Thumbnail, r.Address = record[1], record[2], record[3], record[4]
	r.Features = record[10]
	if r.Latitude, err = strconv.ParseFloat(record[5], 64); err != nil {
		return types.Rental{}, fmt.Errorf("parse rental latitude %q: %w", record[5], err)
	}
	if r.Longitude, err = strconv.ParseFloat(record[6], 64); err != nil {
		return types.Rental{}, fmt.Errorf("parse rental longitude %q: %w", record[6], err)
	}
	for _, field := range []struct {
		dst *int64
		raw string
		col string
	}{
		{&r.ID, record[0], "id"},
		{&r.Rent, record[7], "rent"},
		{&r.DoorHeight, record[8], "door_height"},
		{&r.DoorWidth, record[9], "door_width"},
		{&r.Popularity, record[11], "popularity"},
	} {
		if *field.dst, err = strconv.ParseInt(field.raw, 10, 64); err != nil {
			return types.Rental{}, fmt.Errorf("parse rental %s %q: %w", field.col, field.raw, err)
		}
	}
	return r, nil
}
