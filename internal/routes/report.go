package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/services"
)

func runReportRouter(secureGroup *echo.Group, reportService services.ReportServiceInterface, logger *zap.Logger) {
	reportCtrl := controllers.NewReportController(reportService, logger)

	reports := secureGroup.Group("/reports")
	reports.GET("/dashboard", reportCtrl.Dashboard)
	reports.GET("/by-team", reportCtrl.ByTeam)
	reports.GET("/by-category", reportCtrl.ByCategory)
	reports.GET("/by-stage", reportCtrl.ByStage)
	reports.GET("/completion-time", reportCtrl.CompletionTime)
	reports.GET("/requests", reportCtrl.ExportRequests)
}
