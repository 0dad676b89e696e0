package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// wrapQueryErr traduce la cancelación por statement_timeout (57014) a context.DeadlineExceeded
// para que el llamador la trate igual que un timeout de contexto.
func wrapQueryErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "57014" {
		return fmt.Errorf("%s: %w: %s", op, context.DeadlineExceeded, pgErr.Message)
	}
	return fmt.Errorf("%s: %w", op, err)
}
