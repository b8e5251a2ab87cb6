package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/events"
	"maintenance-system/internal/lifecycle"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/eventbus"
	"maintenance-system/pkg/utils"
)

type RequestServiceInterface interface {
	GetRequests(ctx context.Context, filter entities.RequestFilter) ([]dto.RequestDTO, uint64, error)
	GetPreventiveCalendar(ctx context.Context, filter entities.RequestFilter) ([]dto.RequestDTO, uint64, error)
	FindRequest(ctx context.Context, id uint64) (*dto.RequestDTO, error)
	CreateRequest(ctx context.Context, payload dto.CreateRequestDTO) (*dto.RequestDTO, error)
	UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateRequestDTO) (*dto.RequestDTO, error)
	UpdateStage(ctx context.Context, id uint64, stage entities.Stage) (*dto.RequestDTO, error)
	AssignTechnician(ctx context.Context, id uint64, technicianID uint64) (*dto.RequestDTO, error)
	DeleteRequest(ctx context.Context, id uint64) error
}

// ReportInvalidator сбрасывает закешированные отчёты после записи заявки.
type ReportInvalidator interface {
	InvalidateReports(ctx context.Context)
}

type RequestService struct {
	requestRepo    repositories.RequestRepositoryInterface
	equipmentRepo  repositories.EquipmentRepositoryInterface
	technicianRepo repositories.TechnicianRepositoryInterface
	txManager      repositories.TxManagerInterface
	reports        ReportInvalidator
	publisher      eventbus.Publisher
	engine         *lifecycle.Engine
	logger         *zap.Logger
}

func NewRequestService(
	requestRepo repositories.RequestRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	technicianRepo repositories.TechnicianRepositoryInterface,
	txManager repositories.TxManagerInterface,
	reports ReportInvalidator,
	publisher eventbus.Publisher,
	engine *lifecycle.Engine,
	logger *zap.Logger,
) RequestServiceInterface {
	return &RequestService{
		requestRepo:    requestRepo,
		equipmentRepo:  equipmentRepo,
		technicianRepo: technicianRepo,
		txManager:      txManager,
		reports:        reports,
		publisher:      publisher,
		engine:         engine,
		logger:         logger,
	}
}

func (s *RequestService) GetRequests(ctx context.Context, filter entities.RequestFilter) ([]dto.RequestDTO, uint64, error) {
	list, total, err := s.requestRepo.GetRequests(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return requestsToDTO(s.engine.DeriveAll(list)), total, nil
}

// GetPreventiveCalendar: плановые заявки по возрастанию даты для календаря.
func (s *RequestService) GetPreventiveCalendar(ctx context.Context, filter entities.RequestFilter) ([]dto.RequestDTO, uint64, error) {
	filter.Type = entities.RequestPreventive
	filter.Sort = map[string]string{"scheduledDate": "asc"}
	return s.GetRequests(ctx, filter)
}

func (s *RequestService) FindRequest(ctx context.Context, id uint64) (*dto.RequestDTO, error) {
	r, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	out := requestToDTO(s.engine.Derive(*r))
	return &out, nil
}

func (s *RequestService) CreateRequest(ctx context.Context, payload dto.CreateRequestDTO) (*dto.RequestDTO, error) {
	createdBy, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		if !payload.CreatedBy.Valid {
			return nil, apperrors.NewValidationError("createdBy обязателен")
		}
		createdBy = payload.CreatedBy.Uint64
	}

	var equipment *entities.Equipment
	equipment, err = s.equipmentRepo.FindEquipment(ctx, payload.EquipmentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		equipment = nil
	}

	if payload.AssignedTechnicianID.Valid {
		if _, err := requireTechnician(ctx, s.technicianRepo, payload.AssignedTechnicianID.Uint64); err != nil {
			return nil, err
		}
	}

	draft := entities.Request{
		Subject:              payload.Subject,
		Description:          payload.Description,
		EquipmentID:          payload.EquipmentID,
		Type:                 payload.Type,
		Priority:             payload.Priority,
		Stage:                payload.Stage,
		AssignedTechnicianID: payload.AssignedTechnicianID,
		ScheduledDate:        payload.ScheduledDate.Time,
		Duration:             payload.Duration,
		TeamID:               payload.TeamID.Uint64,
		Category:             payload.Category,
		CreatedBy:            createdBy,
		Notes:                payload.Notes,
	}

	request, err := s.engine.Create(draft, equipment)
	if err != nil {
		return nil, err
	}
	if err := s.requestRepo.CreateRequest(ctx, &request); err != nil {
		return nil, err
	}
	s.logger.Info("Создана заявка",
		zap.Uint64("requestID", request.ID),
		zap.Uint64("equipmentID", request.EquipmentID),
		zap.String("type", string(request.Type)),
	)

	return s.afterWrite(ctx, request.ID, events.RequestCreated, "")
}

// mutate выполняет изменение заявки под блокировкой строки.
func (s *RequestService) mutate(ctx context.Context, id uint64, change func(current entities.Request) (entities.Request, error)) (entities.Request, entities.Request, error) {
	var before, after entities.Request
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.requestRepo.FindRequestForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		next, err := change(*current)
		if err != nil {
			return err
		}
		if err := s.requestRepo.UpdateRequest(ctx, tx, &next); err != nil {
			return err
		}
		before, after = *current, next
		return nil
	})
	return before, after, err
}

func (s *RequestService) UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateRequestDTO) (*dto.RequestDTO, error) {
	if payload.AssignedTechnicianID != nil && *payload.AssignedTechnicianID != 0 {
		if _, err := requireTechnician(ctx, s.technicianRepo, *payload.AssignedTechnicianID); err != nil {
			return nil, err
		}
	}

	patch := lifecycle.Patch{
		Subject:              payload.Subject,
		Description:          payload.Description,
		Type:                 payload.Type,
		Priority:             payload.Priority,
		Stage:                payload.Stage,
		AssignedTechnicianID: payload.AssignedTechnicianID,
		ScheduledDate:        payload.ScheduledDate.TimePtr(),
		CompletedDate:        payload.CompletedDate.TimePtr(),
		Duration:             payload.Duration,
		Notes:                payload.Notes,
	}

	before, after, err := s.mutate(ctx, id, func(current entities.Request) (entities.Request, error) {
		return s.engine.Update(current, patch)
	})
	if err != nil {
		return nil, err
	}

	kind := events.RequestUpdated
	switch {
	case after.AssignedTechnicianID.Valid && after.AssignedTechnicianID != before.AssignedTechnicianID:
		kind = events.RequestAssigned
	case after.Stage != before.Stage:
		kind = events.RequestStageChanged
	}
	return s.afterWrite(ctx, id, kind, before.Stage)
}

func (s *RequestService) UpdateStage(ctx context.Context, id uint64, stage entities.Stage) (*dto.RequestDTO, error) {
	before, _, err := s.mutate(ctx, id, func(current entities.Request) (entities.Request, error) {
		return s.engine.SetStage(current, stage)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Стадия заявки изменена",
		zap.Uint64("requestID", id),
		zap.String("from", string(before.Stage)),
		zap.String("to", string(stage)),
	)
	return s.afterWrite(ctx, id, events.RequestStageChanged, before.Stage)
}

func (s *RequestService) AssignTechnician(ctx context.Context, id uint64, technicianID uint64) (*dto.RequestDTO, error) {
	if technicianID == 0 {
		return nil, apperrors.NewValidationError("technicianId обязателен")
	}
	if _, err := requireTechnician(ctx, s.technicianRepo, technicianID); err != nil {
		return nil, err
	}

	before, _, err := s.mutate(ctx, id, func(current entities.Request) (entities.Request, error) {
		return s.engine.Assign(current, technicianID)
	})
	if err != nil {
		return nil, err
	}
	return s.afterWrite(ctx, id, events.RequestAssigned, before.Stage)
}

func (s *RequestService) DeleteRequest(ctx context.Context, id uint64) error {
	if err := s.requestRepo.DeleteRequest(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Заявка удалена", zap.Uint64("requestID", id))

	s.reports.InvalidateReports(ctx)
	actorID, _ := utils.GetUserIDFromCtx(ctx)
	s.publisher.Publish(ctx, events.RequestEvent{Kind: events.RequestDeleted, RequestID: id, ActorID: actorID})
	return nil
}

// afterWrite перечитывает заявку с JOIN-ами, сбрасывает отчёты и публикует событие для доски.
func (s *RequestService) afterWrite(ctx context.Context, id uint64, kind string, previous entities.Stage) (*dto.RequestDTO, error) {
	s.reports.InvalidateReports(ctx)

	r, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	out := requestToDTO(s.engine.Derive(*r))

	event := events.RequestEvent{
		Kind:          kind,
		RequestID:     id,
		Request:       &out,
		PreviousStage: previous,
	}
	event.ActorID, _ = utils.GetUserIDFromCtx(ctx)
	if kind == events.RequestAssigned && r.AssignedTechnicianID.Valid {
		if tc, err := s.technicianRepo.FindTechnician(ctx, r.AssignedTechnicianID.Uint64); err == nil && tc.UserID.Valid {
			event.TechnicianUserID = tc.UserID.Uint64
		}
	}
	s.publisher.Publish(ctx, event)

	return &out, nil
}
