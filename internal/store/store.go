// Package store implements the catalog storage collaborator over
// database/sql, with a sqlite driver for local use and tests and a postgres
// driver for deployments that want true row-level locking.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"

	"github.com/nestfit/nestfit/internal/catalog"
	"github.com/nestfit/nestfit/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Compile-time contract assertion ensuring the store satisfies the catalog
// interface.
var _ catalog.Store = (*Store)(nil)

// Store is a SQL-backed implementation of the catalog's Store interface.
type Store struct {
	db      *sql.DB
	dialect dialect
}

// Open connects to the configured database and returns a store.
//
// The sqlite driver caps the pool at one connection: sqlite has no row-level
// locks, so the single writer-serializing connection stands in for FOR
// UPDATE and gives the reservation protocol the same at-most-one guarantee.
func Open(cfg types.Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Driver {
	case types.DriverSQLite:
		db, err := sql.Open("sqlite", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		db.SetMaxOpenConns(1)
		return &Store{db: db, dialect: sqliteDialect}, nil
	case types.DriverPostgres:
		db, err := sql.Open("pgx", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		return &Store{db: db, dialect: postgresDialect}, nil
	default:
		return nil, types.ErrDriverUnknown
	}
}

// InitSchema creates the catalog tables and indexes if they do not exist.
func (s *Store) InitSchema(ctx context.Context) error {
	for _, stmt := range splitStatements(schemaSQL) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute ddl: %w", err)
		}
	}
	return nil
}

// DB exposes the underlying sql.DB for integration-test hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// splitStatements breaks a DDL script into single statements. The pgx
// driver's extended protocol rejects multi-statement commands.
func splitStatements(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
