package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/types"
)

type TechnicianServiceInterface interface {
	GetTechnicians(ctx context.Context, teamID uint64, filter types.Filter) ([]dto.TechnicianDTO, error)
	FindTechnician(ctx context.Context, id uint64) (*dto.TechnicianDTO, error)
	CreateTechnician(ctx context.Context, payload dto.CreateTechnicianDTO) (*dto.TechnicianDTO, error)
	UpdateTechnician(ctx context.Context, id uint64, payload dto.UpdateTechnicianDTO) (*dto.TechnicianDTO, error)
	DeleteTechnician(ctx context.Context, id uint64) error
}

type TechnicianService struct {
	technicianRepo repositories.TechnicianRepositoryInterface
	teamRepo       repositories.TeamRepositoryInterface
	logger         *zap.Logger
}

func NewTechnicianService(
	technicianRepo repositories.TechnicianRepositoryInterface,
	teamRepo repositories.TeamRepositoryInterface,
	logger *zap.Logger,
) TechnicianServiceInterface {
	return &TechnicianService{technicianRepo: technicianRepo, teamRepo: teamRepo, logger: logger}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeTags: колонка specialization NOT NULL, пустой набор хранится как '{}'.
func normalizeTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// GetTechnicians: только активные, по имени. teamID == 0 значит «все команды».
func (s *TechnicianService) GetTechnicians(ctx context.Context, teamID uint64, filter types.Filter) ([]dto.TechnicianDTO, error) {
	list, err := s.technicianRepo.GetTechnicians(ctx, repositories.TechnicianFilter{
		TeamID:     teamID,
		OnlyActive: true,
		Filter:     filter,
	})
	if err != nil {
		return nil, err
	}
	return techniciansToDTO(list), nil
}

func (s *TechnicianService) FindTechnician(ctx context.Context, id uint64) (*dto.TechnicianDTO, error) {
	tc, err := s.technicianRepo.FindTechnician(ctx, id)
	if err != nil {
		return nil, err
	}
	out := technicianToDTO(*tc)
	return &out, nil
}

func (s *TechnicianService) CreateTechnician(ctx context.Context, payload dto.CreateTechnicianDTO) (*dto.TechnicianDTO, error) {
	if err := requireTeam(ctx, s.teamRepo, payload.TeamID); err != nil {
		return nil, err
	}

	tc := entities.Technician{
		Name:           strings.TrimSpace(payload.Name),
		Email:          normalizeEmail(payload.Email),
		Phone:          payload.Phone,
		TeamID:         payload.TeamID,
		Specialization: normalizeTags(payload.Specialization),
		IsActive:       true,
	}
	tc.Avatar = entities.Initials(tc.Name)
	if payload.IsActive != nil {
		tc.IsActive = *payload.IsActive
	}

	if err := s.technicianRepo.CreateTechnician(ctx, &tc); err != nil {
		return nil, err
	}
	s.logger.Info("Создан техник", zap.Uint64("technicianID", tc.ID), zap.Uint64("teamID", tc.TeamID))

	// Перечитываем, чтобы отдать название команды.
	return s.FindTechnician(ctx, tc.ID)
}

// UpdateTechnician не пересчитывает аватар при смене имени.
func (s *TechnicianService) UpdateTechnician(ctx context.Context, id uint64, payload dto.UpdateTechnicianDTO) (*dto.TechnicianDTO, error) {
	tc, err := s.technicianRepo.FindTechnician(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.TeamID != nil && *payload.TeamID != tc.TeamID {
		if err := requireTeam(ctx, s.teamRepo, *payload.TeamID); err != nil {
			return nil, err
		}
		tc.TeamID = *payload.TeamID
	}
	if payload.Name != nil {
		tc.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Email != nil {
		tc.Email = normalizeEmail(*payload.Email)
	}
	if payload.Phone != nil {
		tc.Phone = *payload.Phone
	}
	if payload.Specialization != nil {
		tc.Specialization = normalizeTags(payload.Specialization)
	}
	if payload.IsActive != nil {
		tc.IsActive = *payload.IsActive
	}

	if err := s.technicianRepo.UpdateTechnician(ctx, tc); err != nil {
		return nil, err
	}
	return s.FindTechnician(ctx, id)
}

func (s *TechnicianService) DeleteTechnician(ctx context.Context, id uint64) error {
	if err := s.technicianRepo.DeleteTechnician(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Техник удалён", zap.Uint64("technicianID", id))
	return nil
}
