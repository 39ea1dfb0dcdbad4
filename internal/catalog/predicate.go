package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nestfit/nestfit/pkg/types"
)

// RangeOp is a comparison operator used by range predicates.
type RangeOp string

// Range predicate operators. Buckets are half-open: the lower bound is
// inclusive and the upper bound exclusive, so adjacent buckets never overlap
// at the boundary value.
const (
	OpGreaterEqual RangeOp = ">="
	OpLessThan     RangeOp = "<"
)

// Predicate is one search condition. Predicates carry logical field names and
// bound values; translating them to the store's native query form happens in
// exactly one place, inside the store, so the builder never concatenates
// query fragments.
type Predicate interface {
	isPredicate()
}

// Range constrains a numeric field against a bucket bound.
type Range struct {
	Field string
	Op    RangeOp
	Bound int64
}

// Equals constrains a string field to an exact value.
type Equals struct {
	Field string
	Value string
}

// Contains requires the field to contain the token as a substring. Tokens are
// matched verbatim; no trimming or case folding.
type Contains struct {
	Field string
	Token string
}

// Available restricts furniture to rows with remaining stock.
type Available struct{}

// OpeningAdmits matches rentals whose door admits any of the ordered
// (first, second) dimension pairs: door width >= first AND door height >=
// second for at least one pair.
type OpeningAdmits struct {
	Pairs [][2]int64
}

func (Range) isPredicate()         {}
func (Equals) isPredicate()        {}
func (Contains) isPredicate()      {}
func (Available) isPredicate()     {}
func (OpeningAdmits) isPredicate() {}

// FurnitureFilter holds the raw furniture search selections as received from
// the caller. Empty string means "not specified".
type FurnitureFilter struct {
	PriceRangeID  string
	HeightRangeID string
	WidthRangeID  string
	DepthRangeID  string
	Kind          string
	Color         string
	Features      string
}

// RentalFilter holds the raw rental search selections.
type RentalFilter struct {
	DoorHeightRangeID string
	DoorWidthRangeID  string
	RentRangeID       string
	Features          string
}

// BuildFurniturePredicates resolves the filter against the furniture
// condition fixture. An unresolvable bucket id fails the whole request with
// types.ErrInvalidFilter; an all-empty filter fails with
// types.ErrNoSearchCriteria before any storage call. The mandatory
// availability predicate is appended last and does not count as a criterion.
func BuildFurniturePredicates(cond *types.FurnitureConditions, filter FurnitureFilter) ([]Predicate, error) {
	var preds []Predicate

	ranges := []struct {
		name  string
		field types.RangeField
		raw   string
	}{
		{"price", cond.Price, filter.PriceRangeID},
		{"height", cond.Height, filter.HeightRangeID},
		{"width", cond.Width, filter.WidthRangeID},
		{"depth", cond.Depth, filter.DepthRangeID},
	}
	for _, r := range ranges {
		p, err := rangePredicates(r.name, r.field, r.raw)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p...)
	}

	if filter.Kind != "" {
		preds = append(preds, Equals{Field: "kind", Value: filter.Kind})
	}
	if filter.Color != "" {
		preds = append(preds, Equals{Field: "color", Value: filter.Color})
	}
	preds = append(preds, featurePredicates(filter.Features)...)

	if len(preds) == 0 {
		return nil, types.ErrNoSearchCriteria
	}
	return append(preds, Available{}), nil
}

// BuildRentalPredicates resolves the filter against the rental condition
// fixture. Rentals carry no availability predicate.
func BuildRentalPredicates(cond *types.RentalConditions, filter RentalFilter) ([]Predicate, error) {
	var preds []Predicate

	ranges := []struct {
		name  string
		field types.RangeField
		raw   string
	}{
		{"doorHeight", cond.DoorHeight, filter.DoorHeightRangeID},
		{"doorWidth", cond.DoorWidth, filter.DoorWidthRangeID},
		{"rent", cond.Rent, filter.RentRangeID},
	}
	for _, r := range ranges {
		p, err := rangePredicates(r.name, r.field, r.raw)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p...)
	}

	preds = append(preds, featurePredicates(filter.Features)...)

	if len(preds) == 0 {
		return nil, types.ErrNoSearchCriteria
	}
	return preds, nil
}

// rangePredicates resolves one raw bucket selection into zero, one, or two
// bound predicates. An empty raw value contributes nothing.
func rangePredicates(field string, rangeField types.RangeField, raw string) ([]Predicate, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s range id %q: %w", field, raw, types.ErrInvalidFilter)
	}
	bucket, err := rangeField.Lookup(id)
	if err != nil {
		return nil, fmt.Errorf("%s range id %d: %w", field, id, types.ErrInvalidFilter)
	}
	var preds []Predicate
	if bucket.Min != -1 {
		preds = append(preds, Range{Field: field, Op: OpGreaterEqual, Bound: bucket.Min})
	}
	if bucket.Max != -1 {
		preds = append(preds, Range{Field: field, Op: OpLessThan, Bound: bucket.Max})
	}
	return preds, nil
}

// featurePredicates splits the raw comma-separated feature list into one
// Contains predicate per token. The empty string contributes nothing.
func featurePredicates(raw string) []Predicate {
	if raw == "" {
		return nil
	}
	var preds []Predicate
	for _, token := range strings.Split(raw, ",") {
		preds = append(preds, Contains{Field: "features", Token: token})
	}
	return preds
}
