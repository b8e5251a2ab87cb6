package entities

import "maintenance-system/pkg/types"

type Team struct {
	ID             uint64
	Name           string
	Description    string
	Specialization TeamSpecialization
	IsActive       bool

	types.BaseEntity

	// Не колонка: сколько техников числится в команде.
	MembersCount uint64
}
