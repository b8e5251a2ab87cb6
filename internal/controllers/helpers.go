package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "maintenance-system/pkg/errors"
)

// bindAndValidate разбирает тело запроса и прогоняет его через валидатор echo.
func bindAndValidate(ctx echo.Context, payload interface{}) error {
	if err := ctx.Bind(payload); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil)
	}
	return ctx.Validate(payload)
}

// parseOptionalID читает необязательный числовой query-параметр.
func parseOptionalID(ctx echo.Context, name string) (uint64, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("параметр %s должен быть числом", name)
	}
	return id, nil
}
