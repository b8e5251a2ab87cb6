package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/middleware"
)

func runTeamRouter(secureGroup *echo.Group, teamService services.TeamServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	teamCtrl := controllers.NewTeamController(teamService, logger)
	managerOnly := authMW.RequireRole(entities.RoleManager)

	teams := secureGroup.Group("/teams")
	teams.GET("", teamCtrl.GetTeams)
	teams.GET("/:id", teamCtrl.FindTeam)
	teams.POST("", teamCtrl.CreateTeam, managerOnly)
	teams.PATCH("/:id", teamCtrl.UpdateTeam, managerOnly)
	teams.DELETE("/:id", teamCtrl.DeleteTeam, managerOnly)
}
