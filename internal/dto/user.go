package dto

import (
	"time"

	"github.com/hireboard/hireboard/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      models.Role `json:"role"`
	IsActive  bool        `json:"is_active"`
	LastLogin *time.Time  `json:"last_login"`
	CreatedAt time.Time   `json:"created_at"`
}

// SessionDTO is returned after registration and login
type SessionDTO struct {
	User     UserDTO `json:"user"`
	Redirect string  `json:"redirect"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		IsActive:  user.IsActive,
		LastLogin: user.LastLogin,
		CreatedAt: user.CreatedAt,
	}
}

func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, u := range users {
		out[i] = ToUserDTO(u)
	}
	return out
}
