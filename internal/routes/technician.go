package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/middleware"
)

func runTechnicianRouter(secureGroup *echo.Group, technicianService services.TechnicianServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	technicianCtrl := controllers.NewTechnicianController(technicianService, logger)

	technicians := secureGroup.Group("/technicians")
	technicians.GET("", technicianCtrl.GetTechnicians)
	technicians.GET("/:id", technicianCtrl.FindTechnician)
	technicians.POST("", technicianCtrl.CreateTechnician)
	technicians.PATCH("/:id", technicianCtrl.UpdateTechnician)
	technicians.DELETE("/:id", technicianCtrl.DeleteTechnician, authMW.RequireRole(entities.RoleManager))
}
