package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/middleware"
	"maintenance-system/pkg/service"
	appwebsocket "maintenance-system/pkg/websocket"
)

type Loggers struct {
	Main      *zap.Logger
	Auth      *zap.Logger
	Request   *zap.Logger
	Report    *zap.Logger
	WebSocket *zap.Logger
}

// Dependencies собирается в main: сервисы уже связаны с репозиториями и шиной событий.
type Dependencies struct {
	JWT          service.JWTService
	Hub          *appwebsocket.Hub
	HealthChecks map[string]controllers.HealthCheck

	AuthService       services.AuthServiceInterface
	TeamService       services.TeamServiceInterface
	TechnicianService services.TechnicianServiceInterface
	EquipmentService  services.EquipmentServiceInterface
	RequestService    services.RequestServiceInterface
	ReportService     services.ReportServiceInterface
}

func InitRouter(e *echo.Echo, deps *Dependencies, loggers *Loggers) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	authMW := middleware.NewAuthMiddleware(deps.JWT, loggers.Auth)

	healthController := controllers.NewHealthController(deps.HealthChecks, loggers.Main)
	e.GET("/health", healthController.Health)

	api := e.Group("/api")
	runAuthRouter(api, deps.AuthService, loggers.Auth, authMW)

	secureGroup := api.Group("", authMW.Auth)
	runTeamRouter(secureGroup, deps.TeamService, loggers.Main, authMW)
	runTechnicianRouter(secureGroup, deps.TechnicianService, loggers.Main, authMW)
	runEquipmentRouter(secureGroup, deps.EquipmentService, loggers.Main, authMW)
	runRequestRouter(secureGroup, deps.RequestService, loggers.Request, authMW)
	runReportRouter(secureGroup, deps.ReportService, loggers.Report)

	runWebSocketRouter(e, deps.Hub, deps.JWT, loggers.WebSocket)

	loggers.Main.Info("INIT_ROUTER: Создание маршрутов завершено")
}
