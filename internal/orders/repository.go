package orders

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/timelessstrands/storefront-backend/pkg/db/models"
	"github.com/timelessstrands/storefront-backend/pkg/enums"
	"github.com/timelessstrands/storefront-backend/pkg/pagination"
)

// OrderRepository defines persistence for orders and their line items.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) (*models.Order, error)
	List(ctx context.Context, input ListOrdersInput) ([]models.Order, string, error)
	StatusCounts(ctx context.Context) (map[enums.OrderStatus]int64, error)
}

// ListOrdersInput captures the back-office order list filters.
type ListOrdersInput struct {
	Status     *enums.OrderStatus
	Query      string
	Pagination pagination.Params
}

// Repository wires order persistence to GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts the order with its line items.
func (r *Repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// FindByID loads the order with line items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber loads the order with line items by its public number.
func (r *Repository) FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "order_number = ?", orderNumber).
		Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Update persists mutations to the order row.
func (r *Repository) Update(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Omit("Items").Save(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// List pages orders newest-first with a keyset cursor.
func (r *Repository) List(ctx context.Context, input ListOrdersInput) ([]models.Order, string, error) {
	pageSize := pagination.NormalizeLimit(input.Pagination.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(input.Pagination.Limit)
	if limitWithBuffer <= pageSize {
		limitWithBuffer = pageSize + 1
	}

	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := r.db.WithContext(ctx).Model(&models.Order{}).Preload("Items")
	if input.Status != nil {
		qb = qb.Where("status = ?", *input.Status)
	}
	if search := strings.TrimSpace(input.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where(
			"(LOWER(order_number) LIKE ? OR LOWER(customer_name) LIKE ? OR customer_phone LIKE ?)",
			pattern, pattern, "%"+search+"%",
		)
	}
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Order
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

// StatusCounts tallies orders per status for the back-office dashboard.
func (r *Repository) StatusCounts(ctx context.Context) (map[enums.OrderStatus]int64, error) {
	var rows []struct {
		Status enums.OrderStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	counts := make(map[enums.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
