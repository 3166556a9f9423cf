package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Domain-level errors bubbled up from repository implementations.
// ErrAlreadyExists and ErrConflict come from the memory store's fixture loaders.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflict")
	ErrReadOnly      = errors.New("read-only transaction")
)

// MapPgError translates the Postgres codes the read paths can hit; everything else passes through.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ReadOnlySQLTransaction {
		return fmt.Errorf("%w: %s", ErrReadOnly, pgErr.Message)
	}
	return err
}
