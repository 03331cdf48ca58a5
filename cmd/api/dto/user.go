package dto

import (
	"time"

	"car-blog/models"
)

// UserProfileDTO is the public view of an account. The password hash never leaves the service.
type UserProfileDTO struct {
	ID        string    `json:"id" example:"665f1c2e9b1e8a3d4c5b6a71"`
	Username  string    `json:"username" example:"carlos"`
	Email     string    `json:"email" example:"carlos@example.com"`
	Role      string    `json:"role" example:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserProfileDTO(u models.User) UserProfileDTO {
	return UserProfileDTO{
		ID:        u.ID.Hex(),
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type SignupRequest struct {
	Username string `json:"username" form:"username" binding:"required,min=2,max=50"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}
