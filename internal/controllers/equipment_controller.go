package controllers

import (
	"net/http"
	"strconv"

	"github.com/aarondl/null/v8"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/services"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"
)

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	logger           *zap.Logger
}

func NewEquipmentController(equipmentService services.EquipmentServiceInterface, logger *zap.Logger) *EquipmentController {
	return &EquipmentController{equipmentService: equipmentService, logger: logger}
}

// parseEquipmentFilter: department=All означает «без фильтра».
func parseEquipmentFilter(ctx echo.Context) (entities.EquipmentFilter, error) {
	filter := entities.EquipmentFilter{Filter: utils.ParseFilterFromQuery(ctx.Request().URL.Query())}

	if department := ctx.QueryParam("department"); department != "" && department != "All" {
		filter.Department = entities.Department(department)
		if !filter.Department.IsValid() {
			return filter, apperrors.NewValidationError("недопустимый отдел %q", department)
		}
	}
	if category := ctx.QueryParam("category"); category != "" {
		filter.Category = entities.EquipmentCategory(category)
		if !filter.Category.IsValid() {
			return filter, apperrors.NewValidationError("недопустимая категория %q", category)
		}
	}
	if status := ctx.QueryParam("status"); status != "" {
		filter.Status = entities.EquipmentStatus(status)
		if !filter.Status.IsValid() {
			return filter, apperrors.NewValidationError("недопустимый статус %q", status)
		}
	}
	if raw := ctx.QueryParam("isScrapped"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, apperrors.NewValidationError("параметр isScrapped должен быть true или false")
		}
		filter.IsScrapped = null.BoolFrom(v)
	}

	teamID, err := parseOptionalID(ctx, "teamId")
	if err != nil {
		return filter, err
	}
	filter.TeamID = teamID
	return filter, nil
}

func (c *EquipmentController) GetEquipments(ctx echo.Context) error {
	filter, err := parseEquipmentFilter(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, total, err := c.equipmentService.GetEquipments(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список оборудования успешно получен", http.StatusOK, total)
}

func (c *EquipmentController) FindEquipment(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.FindEquipment(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Оборудование успешно найдено", http.StatusOK)
}

// GetMaintenanceHistory: GET /equipment/:id/requests
func (c *EquipmentController) GetMaintenanceHistory(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.GetMaintenanceHistory(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "История обслуживания успешно получена", http.StatusOK)
}

// CountOpenRequests: GET /equipment/:id/requests/count
func (c *EquipmentController) CountOpenRequests(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.CountOpenRequests(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Количество открытых заявок получено", http.StatusOK)
}

func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	var payload dto.CreateEquipmentDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.CreateEquipment(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Оборудование успешно создано", http.StatusCreated)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateEquipmentDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.UpdateEquipment(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Оборудование успешно обновлено", http.StatusOK)
}

func (c *EquipmentController) DeleteEquipment(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.equipmentService.DeleteEquipment(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Оборудование успешно удалено", http.StatusOK)
}
