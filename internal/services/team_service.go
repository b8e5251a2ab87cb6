package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/types"
)

type TeamServiceInterface interface {
	GetTeams(ctx context.Context, filter types.Filter) ([]dto.TeamDTO, error)
	FindTeam(ctx context.Context, id uint64) (*dto.TeamWithMembersDTO, error)
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamDTO, error)
	UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*dto.TeamDTO, error)
	DeleteTeam(ctx context.Context, id uint64) error
}

type TeamService struct {
	teamRepo       repositories.TeamRepositoryInterface
	technicianRepo repositories.TechnicianRepositoryInterface
	logger         *zap.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepositoryInterface,
	technicianRepo repositories.TechnicianRepositoryInterface,
	logger *zap.Logger,
) TeamServiceInterface {
	return &TeamService{teamRepo: teamRepo, technicianRepo: technicianRepo, logger: logger}
}

// GetTeams отдаёт только активные команды.
func (s *TeamService) GetTeams(ctx context.Context, filter types.Filter) ([]dto.TeamDTO, error) {
	teams, err := s.teamRepo.GetTeams(ctx, filter, true)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TeamDTO, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamToDTO(t))
	}
	return out, nil
}

func (s *TeamService) FindTeam(ctx context.Context, id uint64) (*dto.TeamWithMembersDTO, error) {
	team, err := s.teamRepo.FindTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	members, err := s.technicianRepo.GetTechnicians(ctx, repositories.TechnicianFilter{TeamID: id, OnlyActive: true})
	if err != nil {
		return nil, err
	}
	return &dto.TeamWithMembersDTO{TeamDTO: teamToDTO(*team), Members: techniciansToDTO(members)}, nil
}

func (s *TeamService) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamDTO, error) {
	team := entities.Team{
		Name:           payload.Name,
		Description:    payload.Description,
		Specialization: payload.Specialization,
		IsActive:       true,
	}
	if team.Specialization == "" {
		team.Specialization = entities.SpecializationGeneral
	}
	if payload.IsActive != nil {
		team.IsActive = *payload.IsActive
	}

	if err := s.teamRepo.CreateTeam(ctx, &team); err != nil {
		return nil, err
	}
	s.logger.Info("Создана команда", zap.Uint64("teamID", team.ID), zap.String("name", team.Name))

	out := teamToDTO(team)
	return &out, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*dto.TeamDTO, error) {
	team, err := s.teamRepo.FindTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name != nil {
		team.Name = *payload.Name
	}
	if payload.Description != nil {
		team.Description = *payload.Description
	}
	if payload.Specialization != nil {
		team.Specialization = *payload.Specialization
	}
	if payload.IsActive != nil {
		team.IsActive = *payload.IsActive
	}

	if err := s.teamRepo.UpdateTeam(ctx, team); err != nil {
		return nil, err
	}
	out := teamToDTO(*team)
	return &out, nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, id uint64) error {
	if err := s.teamRepo.DeleteTeam(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Команда удалена", zap.Uint64("teamID", id))
	return nil
}

// requireTeam: ссылка на несуществующую команду в теле запроса даёт 400, а не 404.
func requireTeam(ctx context.Context, repo repositories.TeamRepositoryInterface, id uint64) error {
	if _, err := repo.FindTeam(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationError("команда %d не найдена", id)
		}
		return err
	}
	return nil
}

func requireTechnician(ctx context.Context, repo repositories.TechnicianRepositoryInterface, id uint64) (*entities.Technician, error) {
	tc, err := repo.FindTechnician(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("техник %d не найден", id)
		}
		return nil, err
	}
	return tc, nil
}
