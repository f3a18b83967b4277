package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/timelessstrands/storefront-backend/pkg/db/models"
)

// AdminRepository defines persistence for back-office users.
type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
	Create(ctx context.Context, admin *models.AdminUser) (*models.AdminUser, error)
}

// Repository wires admin user persistence to GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByEmail loads an admin by lowercase email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := r.db.WithContext(ctx).
		First(&admin, "email = ?", strings.ToLower(strings.TrimSpace(email))).
		Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindByID loads an admin row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := r.db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// Create inserts a new admin row.
func (r *Repository) Create(ctx context.Context, admin *models.AdminUser) (*models.AdminUser, error) {
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}
