package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HealthCheck: проверка одной зависимости (Postgres, Redis).
type HealthCheck func(ctx context.Context) error

type HealthController struct {
	checks map[string]HealthCheck
	logger *zap.Logger
}

func NewHealthController(checks map[string]HealthCheck, logger *zap.Logger) *HealthController {
	return &HealthController{checks: checks, logger: logger}
}

// Health отвечает 503, если хотя бы одна зависимость недоступна.
func (c *HealthController) Health(ctx echo.Context) error {
	reqCtx, cancel := context.WithTimeout(ctx.Request().Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	components := make(map[string]string, len(c.checks))
	for name, check := range c.checks {
		if err := check(reqCtx); err != nil {
			c.logger.Warn("Health: зависимость недоступна", zap.String("component", name), zap.Error(err))
			components[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		components[name] = "up"
	}

	return ctx.JSON(status, map[string]interface{}{
		"status":     status == http.StatusOK,
		"components": components,
	})
}
