package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "maintenance-system/pkg/errors"
)

func TestParseFilterFromQuery(t *testing.T) {
	values, err := url.ParseQuery("search=pump&sort[scheduledDate]=desc&sort[bad]=sideways&filter[team]=1&filter[team]=2&limit=10&page=3&withPagination=true")
	require.NoError(t, err)

	f := ParseFilterFromQuery(values)

	assert.Equal(t, "pump", f.Search)
	assert.Equal(t, map[string]string{"scheduledDate": "desc"}, f.Sort)
	assert.Equal(t, "1", f.Filter["team"])
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, 20, f.Offset)
	assert.True(t, f.WithPagination)
}

func TestParseFilterFromQueryDefaults(t *testing.T) {
	f := ParseFilterFromQuery(url.Values{"limit": {"100000"}})

	assert.Equal(t, MaxLimit, f.Limit)
	assert.Equal(t, 1, f.Page)
	assert.False(t, f.WithPagination)
}

func TestParseDateParam(t *testing.T) {
	d, err := ParseDateParam("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())

	_, err = ParseDateParam("2024-03-01T10:00:00Z")
	require.NoError(t, err)

	_, err = ParseDateParam("yesterday")
	assert.True(t, apperrors.IsValidationError(err))
}

func TestErrorResponseStatusCodes(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{apperrors.NewValidationError("плохо"), http.StatusBadRequest},
		{apperrors.NotFoundf("заявка %d", 7), http.StatusNotFound},
		{fmt.Errorf("обёртка: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{apperrors.ErrInvalidToken, http.StatusUnauthorized},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{apperrors.ErrAccountLocked, http.StatusTooManyRequests},
		{apperrors.NewHttpError(http.StatusConflict, "конфликт", nil, nil), http.StatusConflict},
		{fmt.Errorf("pool closed"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		require.NoError(t, ErrorResponse(ctx, tc.err, zap.NewNop()))
		assert.Equal(t, tc.code, rec.Code, tc.err.Error())

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, false, body["status"])
		assert.NotEmpty(t, body["error"])
	}
}

func TestErrorResponseHidesInternalDetails(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, ErrorResponse(ctx, fmt.Errorf("password=secret"), zap.NewNop()))
	assert.NotContains(t, rec.Body.String(), "secret")
}
