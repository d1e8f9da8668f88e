package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/gridvolt/stationd/internal/domain"
	"github.com/gridvolt/stationd/internal/observability/telemetry"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// isIntegrityViolation reports whether err is a unique or foreign-key conflict
// raised by Postgres at commit time, as opposed to any other driver failure.
func isIntegrityViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation || pgErr.Code == pgForeignKeyViolation
	}
	return false
}

// translateError maps Store failures to the typed error the service layer
// expects: integrity conflicts become IntegrityViolation with the generic
// user-facing message, anything else passes through untouched for the caller
// to wrap.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if isIntegrityViolation(err) {
		telemetry.IntegrityViolationsTotal.Inc()
		return domain.NewIntegrityViolation("The provided data violates the database's integrity.")
	}
	return err
}
