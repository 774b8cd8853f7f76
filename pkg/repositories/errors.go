package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xemob/coopnet/pkg/apperrors"
	"github.com/xemob/coopnet/pkg/database"
)

// PostgreSQL SQLSTATE codes translated into application errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var errNoScope = errors.New("no database scope in context")

// scopeFrom returns the request-scoped connection set by database.WithScopeContext.
func scopeFrom(ctx context.Context) (*database.Scope, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, errNoScope
	}
	return scope, nil
}

// translateError maps driver errors onto apperrors sentinels. Constraint
// violations keep the *pgconn.PgError in the chain so callers can inspect it
// with ViolatedConstraint.
func translateError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %w", apperrors.ErrConflict, pgErr)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %w", apperrors.ErrInvalidReference, pgErr)
		}
	}
	return err
}

// ViolatedConstraint returns the constraint named by a unique or foreign key
// violation in err's chain, or "" when there is none.
func ViolatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
