package entities

import "maintenance-system/pkg/types"

type User struct {
	ID           uint64
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole

	types.BaseEntity
}
