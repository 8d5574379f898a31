// Package db holds helpers shared by the sqlite-backed stores.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// WithTx runs fn in a transaction. It commits when fn succeeds and rolls
// back otherwise; a failed rollback is joined to fn's error.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rerr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NullInt returns n as an int, or 0 when it is NULL.
func NullInt(n sql.NullInt64) int {
	if !n.Valid {
		return 0
	}
	return int(n.Int64)
}

// NullString returns n, or "" when it is NULL.
func NullString(n sql.NullString) string {
	if !n.Valid {
		return ""
	}
	return n.String
}
