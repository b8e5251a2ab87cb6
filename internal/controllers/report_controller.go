package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/services"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) Dashboard(ctx echo.Context) error {
	res, err := c.reportService.Dashboard(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Сводка успешно получена", http.StatusOK)
}

func (c *ReportController) ByTeam(ctx echo.Context) error {
	res, err := c.reportService.ByTeam(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Отчёт по командам успешно сформирован", http.StatusOK)
}

func (c *ReportController) ByCategory(ctx echo.Context) error {
	res, err := c.reportService.ByCategory(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Отчёт по категориям успешно сформирован", http.StatusOK)
}

func (c *ReportController) ByStage(ctx echo.Context) error {
	res, err := c.reportService.ByStage(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Отчёт по стадиям успешно сформирован", http.StatusOK)
}

func (c *ReportController) CompletionTime(ctx echo.Context) error {
	res, err := c.reportService.CompletionTime(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Среднее время выполнения получено", http.StatusOK)
}

// ExportRequests: GET /reports/requests?format=xlsx. Без format отдаёт JSON.
func (c *ReportController) ExportRequests(ctx echo.Context) error {
	filter, err := parseRequestFilter(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	format := strings.ToLower(ctx.QueryParam("format"))
	c.logger.Debug("Выгрузка заявок", zap.Any("filter", filter), zap.String("format", format))

	data, err := c.reportService.ExportRequests(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	switch format {
	case "", "json":
		return utils.SuccessResponse(ctx, data, "Выгрузка заявок успешно сформирована", http.StatusOK)
	case "xlsx":
		return c.respondWithXLSX(ctx, data)
	default:
		return utils.ErrorResponse(ctx, apperrors.NewValidationError("неподдерживаемый формат %q", format), c.logger)
	}
}

var reportHeaders = []string{
	"ID", "Тема", "Оборудование", "Серийный номер", "Тип", "Приоритет", "Стадия", "Команда",
	"Категория", "Исполнитель", "Плановая дата", "Дата выполнения", "Длительность (ч)", "Просрочена", "Примечание",
}

func rowToSlice(item dto.RequestDTO) []interface{} {
	const dateFmt = "02.01.2006"
	var technician, completed, overdue string
	if item.AssignedTechnician != nil {
		technician = item.AssignedTechnician.Name
	}
	if item.CompletedDate.Valid {
		completed = item.CompletedDate.Time.Format(dateFmt)
	}
	if item.IsOverdue {
		overdue = "да"
	}

	return []interface{}{
		item.ID, item.Subject, item.Equipment.Name, item.Equipment.SerialNumber, string(item.Type),
		string(item.Priority), string(item.Stage), item.Team.Name, string(item.Category), technician,
		item.ScheduledDate.Format(dateFmt), completed, item.Duration, overdue, item.Notes,
	}
}

// buildRequestsWorkbook собирает книгу с одним листом заявок.
func buildRequestsWorkbook(data []dto.RequestDTO) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Заявки"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &reportHeaders); err != nil {
		return nil, err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(reportHeaders), 1)
	_ = f.SetCellStyle(sheet, "A1", lastHeader, style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := rowToSlice(item)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	_ = f.SetColWidth(sheet, "B", "C", 30)
	_ = f.SetColWidth(sheet, "D", "J", 18)
	_ = f.SetColWidth(sheet, "O", "O", 40)
	return f, nil
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []dto.RequestDTO) error {
	f, err := buildRequestsWorkbook(data)
	if err != nil {
		return utils.ErrorResponse(ctx, fmt.Errorf("не удалось сформировать xlsx: %w", err), c.logger)
	}
	defer f.Close()

	fileName := fmt.Sprintf("requests_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
