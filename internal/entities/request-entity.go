package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"maintenance-system/pkg/types"
)

type Request struct {
	ID                   uint64
	Subject              string
	Description          string
	EquipmentID          uint64
	Type                 RequestType
	Priority             Priority
	Stage                Stage
	AssignedTechnicianID null.Uint64
	ScheduledDate        time.Time
	CompletedDate        null.Time
	Duration             float64
	TeamID               uint64
	Category             EquipmentCategory
	CreatedBy            uint64
	Notes                string

	types.BaseEntity

	// Вычисляется при чтении, в БД не хранится.
	IsOverdue bool

	EquipmentName    null.String
	EquipmentSerial  null.String
	TechnicianName   null.String
	TechnicianAvatar null.String
	TeamName         null.String
	CreatedByName    null.String
}

type RequestFilter struct {
	Stage        Stage
	Type         RequestType
	EquipmentID  uint64
	TechnicianID uint64
	TeamID       uint64
	StartDate    null.Time
	EndDate      null.Time

	// search, sort[...] и пагинация из query-строки.
	types.Filter
}
