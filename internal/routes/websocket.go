package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/pkg/service"
	appwebsocket "maintenance-system/pkg/websocket"
)

// Токен проверяет сам контроллер: браузерный WebSocket не передаёт Authorization.
func runWebSocketRouter(e *echo.Echo, hub *appwebsocket.Hub, jwtSvc service.JWTService, logger *zap.Logger) {
	wsCtrl := controllers.NewWebSocketController(hub, jwtSvc, logger)
	e.GET("/ws/board", wsCtrl.ServeBoard)
}
