package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/middleware"
)

func runEquipmentRouter(secureGroup *echo.Group, equipmentService services.EquipmentServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)

	equipment := secureGroup.Group("/equipment")
	equipment.GET("", equipmentCtrl.GetEquipments)
	equipment.GET("/:id", equipmentCtrl.FindEquipment)
	equipment.GET("/:id/requests", equipmentCtrl.GetMaintenanceHistory)
	equipment.GET("/:id/requests/count", equipmentCtrl.CountOpenRequests)
	equipment.POST("", equipmentCtrl.CreateEquipment)
	equipment.PATCH("/:id", equipmentCtrl.UpdateEquipment)
	equipment.DELETE("/:id", equipmentCtrl.DeleteEquipment, authMW.RequireRole(entities.RoleManager))
}
