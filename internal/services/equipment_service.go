package services

import (
	"context"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/lifecycle"
	"maintenance-system/internal/repositories"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter entities.EquipmentFilter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	GetMaintenanceHistory(ctx context.Context, id uint64) ([]dto.RequestDTO, error)
	CountOpenRequests(ctx context.Context, id uint64) (*dto.CountDTO, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	equipmentRepo  repositories.EquipmentRepositoryInterface
	requestRepo    repositories.RequestRepositoryInterface
	teamRepo       repositories.TeamRepositoryInterface
	technicianRepo repositories.TechnicianRepositoryInterface
	engine         *lifecycle.Engine
	logger         *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	requestRepo repositories.RequestRepositoryInterface,
	teamRepo repositories.TeamRepositoryInterface,
	technicianRepo repositories.TechnicianRepositoryInterface,
	engine *lifecycle.Engine,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo:  equipmentRepo,
		requestRepo:    requestRepo,
		teamRepo:       teamRepo,
		technicianRepo: technicianRepo,
		engine:         engine,
		logger:         logger,
	}
}

func (s *EquipmentService) toDTO(e entities.Equipment) dto.EquipmentDTO {
	return equipmentToDTO(e, e.UnderWarranty(s.engine.Now()))
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter entities.EquipmentFilter) ([]dto.EquipmentDTO, uint64, error) {
	list, total, err := s.equipmentRepo.GetEquipments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.EquipmentDTO, 0, len(list))
	for _, e := range list {
		out = append(out, s.toDTO(e))
	}
	return out, total, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	e, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	out := s.toDTO(*e)
	return &out, nil
}

// GetMaintenanceHistory: все заявки по оборудованию, новые сверху.
func (s *EquipmentService) GetMaintenanceHistory(ctx context.Context, id uint64) ([]dto.RequestDTO, error) {
	if _, err := s.equipmentRepo.FindEquipment(ctx, id); err != nil {
		return nil, err
	}
	list, _, err := s.requestRepo.GetRequests(ctx, entities.RequestFilter{EquipmentID: id})
	if err != nil {
		return nil, err
	}
	return requestsToDTO(s.engine.DeriveAll(list)), nil
}

func (s *EquipmentService) CountOpenRequests(ctx context.Context, id uint64) (*dto.CountDTO, error) {
	if _, err := s.equipmentRepo.FindEquipment(ctx, id); err != nil {
		return nil, err
	}
	count, err := s.requestRepo.CountOpenByEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CountDTO{Count: count}, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if err := requireTeam(ctx, s.teamRepo, payload.TeamID); err != nil {
		return nil, err
	}
	if payload.DefaultTechnicianID.Valid {
		if _, err := requireTechnician(ctx, s.technicianRepo, payload.DefaultTechnicianID.Uint64); err != nil {
			return nil, err
		}
	}

	e := entities.Equipment{
		Name:                payload.Name,
		SerialNumber:        payload.SerialNumber,
		Department:          payload.Department,
		AssignedTo:          payload.AssignedTo,
		MaintenanceTeamID:   payload.TeamID,
		DefaultTechnicianID: payload.DefaultTechnicianID,
		Location:            payload.Location,
		PurchaseDate:        null.TimeFromPtr(payload.PurchaseDate.TimePtr()),
		WarrantyExpiry:      null.TimeFromPtr(payload.WarrantyExpiry.TimePtr()),
		Category:            payload.Category,
		Status:              payload.Status,
		Notes:               payload.Notes,
	}
	if e.Status == "" {
		e.Status = entities.EquipmentActive
	}
	s.applyScrapState(&e, "")

	if err := s.equipmentRepo.CreateEquipment(ctx, &e); err != nil {
		return nil, err
	}
	s.logger.Info("Создано оборудование", zap.Uint64("equipmentID", e.ID), zap.String("serial", e.SerialNumber))

	return s.FindEquipment(ctx, e.ID)
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	e, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	previousStatus := e.Status

	if payload.TeamID != nil && *payload.TeamID != e.MaintenanceTeamID {
		if err := requireTeam(ctx, s.teamRepo, *payload.TeamID); err != nil {
			return nil, err
		}
		e.MaintenanceTeamID = *payload.TeamID
	}
	if payload.DefaultTechnicianID != nil {
		if *payload.DefaultTechnicianID == 0 {
			e.DefaultTechnicianID = null.Uint64{}
		} else {
			if _, err := requireTechnician(ctx, s.technicianRepo, *payload.DefaultTechnicianID); err != nil {
				return nil, err
			}
			e.DefaultTechnicianID = null.Uint64From(*payload.DefaultTechnicianID)
		}
	}
	if payload.Name != nil {
		e.Name = *payload.Name
	}
	if payload.SerialNumber != nil {
		e.SerialNumber = *payload.SerialNumber
	}
	if payload.Department != nil {
		e.Department = *payload.Department
	}
	if payload.AssignedTo != nil {
		e.AssignedTo = *payload.AssignedTo
	}
	if payload.Location != nil {
		e.Location = *payload.Location
	}
	if payload.PurchaseDate != nil {
		e.PurchaseDate = null.TimeFrom(payload.PurchaseDate.Time)
	}
	if payload.WarrantyExpiry != nil {
		e.WarrantyExpiry = null.TimeFrom(payload.WarrantyExpiry.Time)
	}
	if payload.Category != nil {
		e.Category = *payload.Category
	}
	if payload.Status != nil {
		e.Status = *payload.Status
	}
	if payload.ScrapReason != nil {
		e.ScrapReason = *payload.ScrapReason
	}
	if payload.Notes != nil {
		e.Notes = *payload.Notes
	}
	s.applyScrapState(e, previousStatus)

	if err := s.equipmentRepo.UpdateEquipment(ctx, e); err != nil {
		return nil, err
	}
	if previousStatus != e.Status {
		s.logger.Info("Статус оборудования изменён",
			zap.Uint64("equipmentID", id),
			zap.String("from", string(previousStatus)),
			zap.String("to", string(e.Status)),
		)
	}
	return s.FindEquipment(ctx, id)
}

// applyScrapState держит isScrapped/scrapDate в соответствии со статусом.
// Изменения оборудования на уже созданные заявки не влияют.
func (s *EquipmentService) applyScrapState(e *entities.Equipment, previous entities.EquipmentStatus) {
	switch {
	case e.Status == entities.EquipmentScrapped:
		e.IsScrapped = true
		if !e.ScrapDate.Valid {
			e.ScrapDate = null.TimeFrom(s.engine.Now())
		}
	case previous == entities.EquipmentScrapped:
		e.IsScrapped = false
		e.ScrapDate = null.Time{}
	}
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	if err := s.equipmentRepo.DeleteEquipment(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Оборудование удалено", zap.Uint64("equipmentID", id))
	return nil
}
