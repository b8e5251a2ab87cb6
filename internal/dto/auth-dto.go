package dto

import "maintenance-system/internal/entities"

type RegisterDTO struct {
	Name     string            `json:"name" validate:"required,max=255"`
	Email    string            `json:"email" validate:"required,email"`
	Password string            `json:"password" validate:"required,min=6,max=72"`
	Role     entities.UserRole `json:"role" validate:"omitempty,oneof=Employee Technician"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type AuthResponseDTO struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	User         UserDTO `json:"user"`
}

type UserDTO struct {
	ID    uint64            `json:"id"`
	Name  string            `json:"name"`
	Email string            `json:"email"`
	Role  entities.UserRole `json:"role"`
}

type ShortUserDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name,omitempty"`
}
