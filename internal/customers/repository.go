package customers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/timelessstrands/storefront-backend/pkg/db/models"
	"github.com/timelessstrands/storefront-backend/pkg/pagination"
)

// CustomerRepository defines persistence for storefront customers.
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*models.Customer, error)
	UpsertByPhone(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	List(ctx context.Context, params pagination.Params) ([]models.Customer, string, error)
	OrderStats(ctx context.Context, customerID uuid.UUID) (*OrderStats, error)
}

// OrderStats aggregates a customer's order history.
type OrderStats struct {
	OrderCount  int64      `json:"order_count"`
	TotalSpent  string     `json:"total_spent"`
	LastOrderAt *time.Time `json:"last_order_at,omitempty"`
}

// Repository wires customer persistence to GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a customer row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByPhone loads a customer by phone number.
func (r *Repository) FindByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "phone = ?", phone).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpsertByPhone inserts the customer or refreshes name and email on the
// existing row with the same phone number.
func (r *Repository) UpsertByPhone(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "updated_at"}),
		}).
		Create(customer).
		Error
	if err != nil {
		return nil, err
	}
	// re-read so the caller gets the canonical row id on conflict
	return r.FindByPhone(ctx, customer.Phone)
}

// List pages customers newest-first with a keyset cursor.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.Customer, string, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)
	if limitWithBuffer <= pageSize {
		limitWithBuffer = pageSize + 1
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := r.db.WithContext(ctx).Model(&models.Customer{})
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Customer
	if err := qb.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer).Find(&rows).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	return rows, nextCursor, nil
}

// OrderStats aggregates order count, lifetime spend and recency for the customer.
func (r *Repository) OrderStats(ctx context.Context, customerID uuid.UUID) (*OrderStats, error) {
	var row struct {
		OrderCount  int64
		TotalSpent  *string
		LastOrderAt *time.Time
	}
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("COUNT(*) AS order_count, SUM(total) AS total_spent, MAX(created_at) AS last_order_at").
		Where("customer_id = ?", customerID).
		Scan(&row).
		Error
	if err != nil {
		return nil, err
	}

	stats := &OrderStats{
		OrderCount:  row.OrderCount,
		TotalSpent:  "0",
		LastOrderAt: row.LastOrderAt,
	}
	if row.TotalSpent != nil {
		stats.TotalSpent = *row.TotalSpent
	}
	return stats, nil
}
