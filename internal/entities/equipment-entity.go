package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"maintenance-system/pkg/types"
)

type Equipment struct {
	ID                  uint64
	Name                string
	SerialNumber        string
	Department          Department
	AssignedTo          string
	MaintenanceTeamID   uint64
	DefaultTechnicianID null.Uint64
	Location            string
	PurchaseDate        null.Time
	WarrantyExpiry      null.Time
	Category            EquipmentCategory
	Status              EquipmentStatus
	IsScrapped          bool
	ScrapDate           null.Time
	ScrapReason         string
	Notes               string

	types.BaseEntity

	// Подтягиваются JOIN-ом для ответа.
	TeamName              null.String
	DefaultTechnicianName null.String
}

// UnderWarranty: гарантия ещё действует на момент now.
func (e Equipment) UnderWarranty(now time.Time) bool {
	return e.WarrantyExpiry.Valid && e.WarrantyExpiry.Time.After(now)
}

type EquipmentFilter struct {
	Department Department
	Category   EquipmentCategory
	Status     EquipmentStatus
	TeamID     uint64
	IsScrapped null.Bool

	types.Filter
}
