package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/vidtube/internal/domain/repository"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
	invalidTextRep      = "22P02"
)

// mapErr translates driver errors into the repository sentinels. The
// original error stays in the chain for logging.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		return repository.ErrConflict
	case foreignKeyViolation:
		return fmt.Errorf("%w: %s", repository.ErrNotFound, pgErr.ConstraintName)
	case checkViolation, invalidTextRep:
		return fmt.Errorf("%w: %w", repository.ErrInvalid, err)
	}
	return err
}

func offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
