package controllers

import (
	"net/http"

	"github.com/aarondl/null/v8"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/services"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"
)

type RequestController struct {
	requestService services.RequestServiceInterface
	logger         *zap.Logger
}

func NewRequestController(requestService services.RequestServiceInterface, logger *zap.Logger) *RequestController {
	return &RequestController{requestService: requestService, logger: logger}
}

// parseRequestFilter разбирает stage, type, equipmentId, technicianId, teamId и диапазон startDate/endDate.
func parseRequestFilter(ctx echo.Context) (entities.RequestFilter, error) {
	filter := entities.RequestFilter{Filter: utils.ParseFilterFromQuery(ctx.Request().URL.Query())}

	if stage := ctx.QueryParam("stage"); stage != "" {
		filter.Stage = entities.Stage(stage)
		if !filter.Stage.IsValid() {
			return filter, apperrors.NewValidationError("недопустимая стадия %q", stage)
		}
	}
	if requestType := ctx.QueryParam("type"); requestType != "" {
		filter.Type = entities.RequestType(requestType)
		if !filter.Type.IsValid() {
			return filter, apperrors.NewValidationError("недопустимый тип заявки %q", requestType)
		}
	}

	var err error
	if filter.EquipmentID, err = parseOptionalID(ctx, "equipmentId"); err != nil {
		return filter, err
	}
	if filter.TechnicianID, err = parseOptionalID(ctx, "technicianId"); err != nil {
		return filter, err
	}
	if filter.TeamID, err = parseOptionalID(ctx, "teamId"); err != nil {
		return filter, err
	}

	if raw := ctx.QueryParam("startDate"); raw != "" {
		start, err := utils.ParseDateParam(raw)
		if err != nil {
			return filter, err
		}
		filter.StartDate = null.TimeFrom(start)
	}
	if raw := ctx.QueryParam("endDate"); raw != "" {
		end, err := utils.ParseDateParam(raw)
		if err != nil {
			return filter, err
		}
		filter.EndDate = null.TimeFrom(end)
	}
	return filter, nil
}

func (c *RequestController) GetRequests(ctx echo.Context) error {
	filter, err := parseRequestFilter(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, total, err := c.requestService.GetRequests(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список заявок успешно получен", http.StatusOK, total)
}

// GetPreventiveCalendar: GET /requests/type/preventive
func (c *RequestController) GetPreventiveCalendar(ctx echo.Context) error {
	filter, err := parseRequestFilter(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, total, err := c.requestService.GetPreventiveCalendar(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Календарь плановых работ успешно получен", http.StatusOK, total)
}

func (c *RequestController) FindRequest(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.FindRequest(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заявка успешно найдена", http.StatusOK)
}

func (c *RequestController) CreateRequest(ctx echo.Context) error {
	var payload dto.CreateRequestDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.CreateRequest(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заявка успешно создана", http.StatusCreated)
}

func (c *RequestController) UpdateRequest(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateRequestDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.UpdateRequest(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заявка успешно обновлена", http.StatusOK)
}

// UpdateStage: перетаскивание карточки на канбан-доске.
func (c *RequestController) UpdateStage(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateStageDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.UpdateStage(ctx.Request().Context(), id, payload.Stage)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Стадия заявки обновлена", http.StatusOK)
}

func (c *RequestController) AssignTechnician(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.AssignTechnicianDTO
	if err := bindAndValidate(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.AssignTechnician(ctx.Request().Context(), id, payload.TechnicianID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Техник назначен на заявку", http.StatusOK)
}

func (c *RequestController) DeleteRequest(ctx echo.Context) error {
	id, err := utils.ParseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.requestService.DeleteRequest(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Заявка успешно удалена", http.StatusOK)
}
