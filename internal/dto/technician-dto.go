package dto

import "time"

type CreateTechnicianDTO struct {
	Name           string   `json:"name" validate:"required,max=255"`
	Email          string   `json:"email" validate:"required,email"`
	Phone          string   `json:"phone" validate:"max=64"`
	TeamID         uint64   `json:"team" validate:"required,gt=0"`
	Specialization []string `json:"specialization" validate:"omitempty,dive,required,max=64"`
	IsActive       *bool    `json:"isActive"`
}

type UpdateTechnicianDTO struct {
	Name           *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Email          *string  `json:"email" validate:"omitempty,email"`
	Phone          *string  `json:"phone" validate:"omitempty,max=64"`
	TeamID         *uint64  `json:"team" validate:"omitempty,gt=0"`
	Specialization []string `json:"specialization" validate:"omitempty,dive,required,max=64"`
	IsActive       *bool    `json:"isActive"`
}

type TechnicianDTO struct {
	ID             uint64        `json:"id"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	Team           *ShortTeamDTO `json:"team"`
	Specialization []string      `json:"specialization"`
	Avatar         string        `json:"avatar"`
	IsActive       bool          `json:"isActive"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

type ShortTechnicianDTO struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}
