package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nestfit/nestfit/internal/catalog"
	"github.com/nestfit/nestfit/pkg/types"
)

// WithTransaction runs fn inside a database transaction. A non-nil error
// from fn — or from commit — rolls everything back, so a failure at any step
// never leaves a lock held.
func (s *Store) WithTransaction(ctx context.Context, fn func(catalog.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&storeTx{tx: tx, dialect: s.dialect}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// storeTx implements catalog.Tx over an open database transaction.
type storeTx struct {
	tx      *sql.Tx
	dialect dialect
}

// FurnitureInStockForUpdate reads the furniture row under the dialect's row
// lock, filtered to stock > 0. Missing id and exhausted stock are
// indistinguishable here on purpose.
func (t *storeTx) FurnitureInStockForUpdate(ctx context.Context, id int64) (types.Furniture, bool, error) {
	query := t.dialect.rebind("SELECT "+furnitureColumnList+" FROM furniture WHERE id = ? AND stock > 0") +
		t.dialect.forUpdate
	f, err := scanFurniture(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Furniture{}, false, nil
		}
		return types.Furniture{}, false, fmt.Errorf("select furniture %d for update: %w", id, err)
	}
	return f, true, nil
}

// DecrementStock decrements the locked row's stock by exactly one.
func (t *storeTx) DecrementStock(ctx context.Context, id int64) error {
	query := t.dialect.rebind("UPDATE furniture SET stock = stock - 1 WHERE id = ?")
	if _, err := t.tx.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("decrement stock %d: %w", id, err)
	}
	return nil
}
