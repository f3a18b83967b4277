package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/timelessstrands/storefront-backend/pkg/db/models"
)

// LoginRequest carries back-office credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh token exchanged for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AdminDTO is the admin user payload returned after login.
type AdminDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse carries the minted token pair and the admin profile.
type LoginResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	Admin        AdminDTO `json:"admin"`
}

// RefreshResponse carries the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// FromModel maps the persisted admin to its DTO.
func FromModel(admin *models.AdminUser) AdminDTO {
	return AdminDTO{
		ID:        admin.ID,
		Email:     admin.Email,
		Role:      string(admin.Role),
		CreatedAt: admin.CreatedAt,
	}
}
