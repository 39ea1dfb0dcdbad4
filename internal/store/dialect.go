package store

import (
	"strconv"
	"strings"
)

// dialect captures the per-driver SQL differences: placeholder style and
// row-lock syntax. Queries are written with ? placeholders and rebound on
// the way out.
type dialect struct {
	name      string
	forUpdate string
}

var (
	// sqliteDialect carries no FOR UPDATE clause; the store serializes
	// writers through a single pooled connection instead.
	sqliteDialect = dialect{name: "sqlite"}

	postgresDialect = dialect{name: "postgres", forUpdate: " FOR UPDATE"}
)

// rebind rewrites ? placeholders into the dialect's native form. Queries
// contain no literal question marks, so a plain scan suffices.
func (d dialect) rebind(query string) string {
	if d.name != "postgres" {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
