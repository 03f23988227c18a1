package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/TheReasonWePlay/FTVN-sub001/apperrors"
)

type op string

const (
	opRead   op = "read"
	opWrite  op = "write"
	opDelete op = "delete"
)

// classify maps a store error to the application taxonomy.
// AppErrors pass through untouched.
func classify(err error, entity string, o op) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.IsAppError(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("%s not found", entity)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return apperrors.Conflict("%s already exists", entity).WithCause(err)
		case "23503":
			return foreignKeyError(entity, o).WithCause(err)
		case "23502":
			return apperrors.Validation("%s is required", pgErr.ColumnName).WithCause(err)
		case "23514":
			return apperrors.Validation("%s violates %s", entity, pgErr.ConstraintName).WithCause(err)
		case "22001":
			return apperrors.Validation("value too long for %s", entity).WithCause(err)
		case "22P02", "22007", "22008":
			return apperrors.Validation("invalid value for %s", entity).WithCause(err)
		}
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Conflict("%s already exists", entity).WithCause(err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return foreignKeyError(entity, o).WithCause(err)
	}

	return apperrors.Database(err, string(o)+" "+entity+" failed")
}

func foreignKeyError(entity string, o op) *apperrors.AppError {
	if o == opDelete {
		return apperrors.Conflict("%s is still referenced", entity)
	}
	return apperrors.Validation("%s references a record that does not exist", entity)
}
