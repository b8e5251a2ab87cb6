package dto

import (
	"time"

	"github.com/aarondl/null/v8"

	"maintenance-system/internal/entities"
	"maintenance-system/pkg/types"
)

type CreateEquipmentDTO struct {
	Name                string                     `json:"name" validate:"required,max=255"`
	SerialNumber        string                     `json:"serialNumber" validate:"required,max=128"`
	Department          entities.Department        `json:"department" validate:"required,equipment_department"`
	AssignedTo          string                     `json:"assignedTo" validate:"max=255"`
	TeamID              uint64                     `json:"team" validate:"required,gt=0"`
	DefaultTechnicianID null.Uint64                `json:"defaultTechnician" validate:"omitempty,gt=0"`
	Location            string                     `json:"location" validate:"required,max=255"`
	PurchaseDate        *types.Date                `json:"purchaseDate"`
	WarrantyExpiry      *types.Date                `json:"warrantyExpiry"`
	Category            entities.EquipmentCategory `json:"category" validate:"required,equipment_category"`
	Status              entities.EquipmentStatus   `json:"status" validate:"omitempty,equipment_status"`
	Notes               string                     `json:"notes"`
}

type UpdateEquipmentDTO struct {
	Name         *string              `json:"name" validate:"omitempty,min=1,max=255"`
	SerialNumber *string              `json:"serialNumber" validate:"omitempty,min=1,max=128"`
	Department   *entities.Department `json:"department" validate:"omitempty,equipment_department"`
	AssignedTo   *string              `json:"assignedTo" validate:"omitempty,max=255"`
	TeamID       *uint64              `json:"team" validate:"omitempty,gt=0"`
	// 0 снимает техника по умолчанию.
	DefaultTechnicianID *uint64                     `json:"defaultTechnician"`
	Location            *string                     `json:"location" validate:"omitempty,min=1,max=255"`
	PurchaseDate        *types.Date                 `json:"purchaseDate"`
	WarrantyExpiry      *types.Date                 `json:"warrantyExpiry"`
	Category            *entities.EquipmentCategory `json:"category" validate:"omitempty,equipment_category"`
	Status              *entities.EquipmentStatus   `json:"status" validate:"omitempty,equipment_status"`
	ScrapReason         *string                     `json:"scrapReason"`
	Notes               *string                     `json:"notes"`
}

type EquipmentDTO struct {
	ID                uint64                     `json:"id"`
	Name              string                     `json:"name"`
	SerialNumber      string                     `json:"serialNumber"`
	Department        entities.Department        `json:"department"`
	AssignedTo        string                     `json:"assignedTo"`
	Team              *ShortTeamDTO              `json:"team"`
	DefaultTechnician *ShortTechnicianDTO        `json:"defaultTechnician"`
	Location          string                     `json:"location"`
	PurchaseDate      null.Time                  `json:"purchaseDate"`
	WarrantyExpiry    null.Time                  `json:"warrantyExpiry"`
	UnderWarranty     bool                       `json:"underWarranty"`
	Category          entities.EquipmentCategory `json:"category"`
	Status            entities.EquipmentStatus   `json:"status"`
	IsScrapped        bool                       `json:"isScrapped"`
	ScrapDate         null.Time                  `json:"scrapDate"`
	ScrapReason       string                     `json:"scrapReason,omitempty"`
	Notes             string                     `json:"notes"`
	CreatedAt         time.Time                  `json:"createdAt"`
	UpdatedAt         time.Time                  `json:"updatedAt"`
}

type ShortEquipmentDTO struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	SerialNumber string `json:"serialNumber,omitempty"`
}

type CountDTO struct {
	Count uint64 `json:"count"`
}
