package repositories

import (
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "maintenance-system/pkg/errors"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// mapWriteError переводит нарушения ограничений Postgres в ValidationError.
func mapWriteError(err error, entity string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return apperrors.NewValidationError("%s с таким значением уже существует (%s)", entity, pgErr.ConstraintName)
		case "23514": // check_violation
			return apperrors.NewValidationError("недопустимое значение поля (%s)", pgErr.ConstraintName)
		case "23502": // not_null_violation
			return apperrors.NewValidationError("поле %s обязательно", pgErr.ColumnName)
		}
	}
	return fmt.Errorf("ошибка записи %s: %w", entity, err)
}

func mapNoRows(err error, format string, args ...interface{}) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NotFoundf(format, args...)
	}
	return err
}
