package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/middleware"
)

func runRequestRouter(secureGroup *echo.Group, requestService services.RequestServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	requestCtrl := controllers.NewRequestController(requestService, logger)

	requests := secureGroup.Group("/requests")
	requests.GET("", requestCtrl.GetRequests)
	// Статический путь регистрируется раньше /:id, иначе "type" уйдёт в параметр.
	requests.GET("/type/preventive", requestCtrl.GetPreventiveCalendar)
	requests.GET("/:id", requestCtrl.FindRequest)
	requests.POST("", requestCtrl.CreateRequest)
	requests.PATCH("/:id", requestCtrl.UpdateRequest)
	requests.PATCH("/:id/stage", requestCtrl.UpdateStage)
	requests.PATCH("/:id/assign", requestCtrl.AssignTechnician)
	requests.DELETE("/:id", requestCtrl.DeleteRequest, authMW.RequireRole(entities.RoleManager))
}
