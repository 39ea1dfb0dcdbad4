package types

import (
	"encoding/json"
	"fmt"
	"os"
)

// RangeBucket is one selectable interval of a range field. Min and Max are
// half-open bounds; -1 on either side means unbounded. Bucket ids are the
// zero-based position in the field's ordered bucket list.
type RangeBucket struct {
	ID  int64 `json:"id"`
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// RangeField groups the buckets of one numeric field together with display
// metadata. Prefix and Suffix are presentation strings only and never affect
// filtering.
type RangeField struct {
	Prefix string        `json:"prefix"`
	Suffix string        `json:"suffix"`
	Ranges []RangeBucket `json:"ranges"`
}

// Lookup returns the bucket with the given id. Ids outside
// [0, len(Ranges)) return ErrNotFound; the boundary maps that to a client
// error, never a server error.
func (f RangeField) Lookup(id int64) (RangeBucket, error) {
	if id < 0 || id >= int64(len(f.Ranges)) {
		return RangeBucket{}, fmt.Errorf("range bucket %d: %w", id, ErrNotFound)
	}
	return f.Ranges[id], nil
}

// ListField is a closed vocabulary field (kinds, colors, feature names).
// The list feeds UI form construction; searches match raw values verbatim.
type ListField struct {
	List []string `json:"list"`
}

// FurnitureConditions is the full search-condition fixture for the furniture
// catalog. Loaded once at startup and shared read-only across requests.
type FurnitureConditions struct {
	Price   RangeField `json:"price"`
	Height  RangeField `json:"height"`
	Width   RangeField `json:"width"`
	Depth   RangeField `json:"depth"`
	Kind    ListField  `json:"kind"`
	Color   ListField  `json:"color"`
	Feature ListField  `json:"feature"`
}

// RentalConditions is the full search-condition fixture for the rental
// catalog.
type RentalConditions struct {
	DoorHeight RangeField `json:"doorHeight"`
	DoorWidth  RangeField `json:"doorWidth"`
	Rent       RangeField `json:"rent"`
	Feature    ListField  `json:"feature"`
}

// LoadFurnitureConditions reads and validates the furniture condition
// fixture from the given JSON file.
func LoadFurnitureConditions(path string) (*FurnitureConditions, error) {
	var cond FurnitureConditions
	if err := loadConditionFile(path, &cond); err != nil {
		return nil, err
	}
	for name, field := range map[string]RangeField{
		"price":  cond.Price,
		"height": cond.Height,
		"width":  cond.Width,
		"depth":  cond.Depth,
	} {
		if err := validateRangeField(name, field); err != nil {
			return nil, err
		}
	}
	return &cond, nil
}

// LoadRentalConditions reads and validates the rental condition fixture from
// the given JSON file.
func LoadRentalConditions(path string) (*RentalConditions, error) {
	var cond RentalConditions
	if err := loadConditionFile(path, &cond); err != nil {
		return nil, err
	}
	for name, field := range map[string]RangeField{
		"doorHeight": cond.DoorHeight,
		"doorWidth":  cond.DoorWidth,
		"rent":       cond.Rent,
	} {
		if err := validateRangeField(name, field); err != nil {
			return nil, err
		}
	}
	return &cond, nil
}

func loadConditionFile(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read condition fixture: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse condition fixture %s: %w", path, err)
	}
	return nil
}

// validateRangeField checks that bucket ids match their position, so Lookup
// can index directly.
func validateRangeField(name string, field RangeField) error {
	if len(field.Ranges) == 0 {
		return fmt.Errorf("condition field %s has no ranges", name)
	}
	for i, bucket := range field.Ranges {
		if bucket.ID != int64(i) {
			return fmt.Errorf("condition field %s: bucket at position %d has id %d", name, i, bucket.ID)
		}
	}
	return nil
}
