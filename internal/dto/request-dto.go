package dto

import (
	"time"

	"github.com/aarondl/null/v8"

	"maintenance-system/internal/entities"
	"maintenance-system/pkg/types"
)

type CreateRequestDTO struct {
	Subject              string                     `json:"subject" validate:"required,max=255"`
	Description          string                     `json:"description"`
	EquipmentID          uint64                     `json:"equipment" validate:"required,gt=0"`
	Type                 entities.RequestType       `json:"type" validate:"required,request_type"`
	Priority             entities.Priority          `json:"priority" validate:"omitempty,request_priority"`
	Stage                entities.Stage             `json:"stage" validate:"omitempty,request_stage"`
	AssignedTechnicianID null.Uint64                `json:"assignedTechnician" validate:"omitempty,gt=0"`
	ScheduledDate        types.Date                 `json:"scheduledDate" validate:"required"`
	Duration             float64                    `json:"duration" validate:"gte=0"`
	TeamID               null.Uint64                `json:"team" validate:"omitempty,gt=0"`
	Category             entities.EquipmentCategory `json:"category" validate:"omitempty,equipment_category"`
	// Берётся из токена; поле из тела используется только без аутентификации.
	CreatedBy null.Uint64 `json:"createdBy" validate:"omitempty,gt=0"`
	Notes     string      `json:"notes"`
}

type UpdateRequestDTO struct {
	Subject     *string               `json:"subject" validate:"omitempty,min=1,max=255"`
	Description *string               `json:"description"`
	Type        *entities.RequestType `json:"type" validate:"omitempty,request_type"`
	Priority    *entities.Priority    `json:"priority" validate:"omitempty,request_priority"`
	Stage       *entities.Stage       `json:"stage" validate:"omitempty,request_stage"`
	// 0 снимает исполнителя.
	AssignedTechnicianID *uint64     `json:"assignedTechnician"`
	ScheduledDate        *types.Date `json:"scheduledDate"`
	CompletedDate        *types.Date `json:"completedDate"`
	Duration             *float64    `json:"duration" validate:"omitempty,gte=0"`
	Notes                *string     `json:"notes"`
}

type UpdateStageDTO struct {
	Stage entities.Stage `json:"stage" validate:"required,request_stage"`
}

type AssignTechnicianDTO struct {
	TechnicianID uint64 `json:"technicianId" validate:"required,gt=0"`
}

type RequestDTO struct {
	ID                 uint64                     `json:"id"`
	Subject            string                     `json:"subject"`
	Description        string                     `json:"description"`
	Equipment          ShortEquipmentDTO          `json:"equipment"`
	Type               entities.RequestType       `json:"type"`
	Priority           entities.Priority          `json:"priority"`
	Stage              entities.Stage             `json:"stage"`
	AssignedTechnician *ShortTechnicianDTO        `json:"assignedTechnician"`
	ScheduledDate      time.Time                  `json:"scheduledDate"`
	CompletedDate      null.Time                  `json:"completedDate"`
	Duration           float64                    `json:"duration"`
	Team               ShortTeamDTO               `json:"team"`
	Category           entities.EquipmentCategory `json:"category"`
	CreatedBy          ShortUserDTO               `json:"createdBy"`
	Notes              string                     `json:"notes"`
	IsOverdue          bool                       `json:"isOverdue"`
	CreatedAt          time.Time                  `json:"createdAt"`
	UpdatedAt          time.Time                  `json:"updatedAt"`
}
