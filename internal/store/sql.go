package store

import (
	"fmt"
	"strings"

	"github.com/nestfit/nestfit/internal/catalog"
)

// Logical predicate field → column, per catalog. The whitelist is the single
// point where predicate fields meet SQL identifiers; an unknown field is a
// programming error, not bad input.
var (
	furnitureColumns = map[string]string{
		"price":    "price",
		"height":   "height",
		"width":    "width",
		"depth":    "depth",
		"kind":     "kind",
		"color":    "color",
		"features": "features",
	}
	rentalColumns = map[string]string{
		"doorHeight": "door_height",
		"doorWidth":  "door_width",
		"rent":       "rent",
		"features":   "features",
	}
)

func tableFor(kind catalog.EntityKind) (string, map[string]string, error) {
	switch kind {
	case catalog.KindFurniture:
		return "furniture", furnitureColumns, nil
	case catalog.KindRental:
		return "rental", rentalColumns, nil
	default:
		return "", nil, fmt.Errorf("unknown entity kind %q", kind)
	}
}

// buildWhere translates a predicate set into a WHERE clause body and its
// bound values, in predicate order. An empty predicate set yields an empty
// clause. This is the only translation site; count and data queries both go
// through it, so their clause and bind order always agree.
func buildWhere(columns map[string]string, preds []catalog.Predicate) (string, []any, error) {
	var (
		conditions []string
		args       []any
	)
	for _, pred := range preds {
		switch p := pred.(type) {
		case catalog.Range:
			column, ok := columns[p.Field]
			if !ok {
				return "", nil, fmt.Errorf("unknown range field %q", p.Field)
			}
			switch p.Op {
			case catalog.OpGreaterEqual:
				conditions = append(conditions, column+" >= ?")
			case catalog.OpLessThan:
				conditions = append(conditions, column+" < ?")
			default:
				return "", nil, fmt.Errorf("unknown range op %q", p.Op)
			}
			args = append(args, p.Bound)
		case catalog.Equals:
			column, ok := columns[p.Field]
			if !ok {
				return "", nil, fmt.Errorf("unknown equals field %q", p.Field)
			}
			conditions = append(conditions, column+" = ?")
			args = append(args, p.Value)
		case catalog.Contains:
			column, ok := columns[p.Field]
			if !ok {
				return "", nil, fmt.Errorf("unknown contains field %q", p.Field)
			}
			conditions = append(conditions, column+" LIKE '%' || ? || '%'")
			args = append(args, p.Token)
		case catalog.Available:
			conditions = append(conditions, "stock > 0")
		case catalog.OpeningAdmits:
			clauses := make([]string, 0, len(p.Pairs))
			for _, pair := range p.Pairs {
				clauses = append(clauses, "(door_width >= ? AND door_height >= ?)")
				args = append(args, pair[0], pair[1])
			}
			conditions = append(conditions, "("+strings.Join(clauses, " OR ")+")")
		default:
			return "", nil, fmt.Errorf("unknown predicate type %T", pred)
		}
	}
	return strings.Join(conditions, " AND "), args, nil
}

// orderClause maps the enumerated orderings to SQL. Every ordering carries
// the id ASC tie-break that keeps pagination stable.
func orderClause(order catalog.Order) (string, error) {
	switch order {
	case catalog.OrderPopularity:
		return "popularity DESC, id ASC", nil
	case catalog.OrderPriceAsc:
		return "price ASC, id ASC", nil
	case catalog.OrderRentAsc:
		return "rent ASC, id ASC", nil
	default:
		return "", fmt.Errorf("unknown order %d", order)
	}
}
