package dto

import (
	"time"

	"maintenance-system/internal/entities"
)

type CreateTeamDTO struct {
	Name           string                      `json:"name" validate:"required,max=255"`
	Description    string                      `json:"description" validate:"max=2000"`
	Specialization entities.TeamSpecialization `json:"specialization" validate:"omitempty,team_specialization"`
	IsActive       *bool                       `json:"isActive"`
}

type UpdateTeamDTO struct {
	Name           *string                      `json:"name" validate:"omitempty,min=1,max=255"`
	Description    *string                      `json:"description" validate:"omitempty,max=2000"`
	Specialization *entities.TeamSpecialization `json:"specialization" validate:"omitempty,team_specialization"`
	IsActive       *bool                        `json:"isActive"`
}

type TeamDTO struct {
	ID             uint64                      `json:"id"`
	Name           string                      `json:"name"`
	Description    string                      `json:"description"`
	Specialization entities.TeamSpecialization `json:"specialization"`
	IsActive       bool                        `json:"isActive"`
	MembersCount   uint64                      `json:"membersCount"`
	CreatedAt      time.Time                   `json:"createdAt"`
	UpdatedAt      time.Time                   `json:"updatedAt"`
}

type TeamWithMembersDTO struct {
	TeamDTO
	Members []TechnicianDTO `json:"members"`
}

type ShortTeamDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}
