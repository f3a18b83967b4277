package customers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/timelessstrands/storefront-backend/pkg/db/models"
	pkgerrors "github.com/timelessstrands/storefront-backend/pkg/errors"
	"github.com/timelessstrands/storefront-backend/pkg/pagination"
)

var phoneRe = regexp.MustCompile(`^\+?[0-9]{9,15}$`)

// CustomerDTO is the customer payload returned to the back office.
type CustomerDTO struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Email     string      `json:"email,omitempty"`
	Stats     *OrderStats `json:"stats,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// CustomerListResult pairs a page of customers with its continuation cursor.
type CustomerListResult struct {
	Customers  []CustomerDTO `json:"customers"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// UpsertInput carries the contact details captured at checkout.
type UpsertInput struct {
	Name  string
	Phone string
	Email string
}

// Service exposes customer management for checkout and the back office.
type Service interface {
	Upsert(ctx context.Context, input UpsertInput) (*models.Customer, error)
	Get(ctx context.Context, id uuid.UUID) (*CustomerDTO, error)
	List(ctx context.Context, params pagination.Params) (*CustomerListResult, error)
}

// service implements the customer service.
type service struct {
	repo CustomerRepository
}

// NewService constructs a customer service instance.
func NewService(repo CustomerRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

// NormalizePhone strips separators so the same number always hits the same
// customer row.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s *service) Upsert(ctx context.Context, input UpsertInput) (*models.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}

	phone := NormalizePhone(input.Phone)
	if !phoneRe.MatchString(phone) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a valid phone number is required")
	}

	customer := &models.Customer{
		Name:  name,
		Phone: phone,
		Email: strings.TrimSpace(input.Email),
	}
	saved, err := s.repo.UpsertByPhone(ctx, customer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving customer")
	}
	return saved, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*CustomerDTO, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading customer")
	}

	dto := newCustomerDTO(customer)
	if stats, err := s.repo.OrderStats(ctx, id); err == nil {
		dto.Stats = stats
	}
	return &dto, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*CustomerListResult, error) {
	rows, nextCursor, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing customers")
	}

	out := make([]CustomerDTO, 0, len(rows))
	for i := range rows {
		out = append(out, newCustomerDTO(&rows[i]))
	}
	return &CustomerListResult{Customers: out, NextCursor: nextCursor}, nil
}

func newCustomerDTO(customer *models.Customer) CustomerDTO {
	return CustomerDTO{
		ID:        customer.ID,
		Name:      customer.Name,
		Phone:     customer.Phone,
		Email:     customer.Email,
		CreatedAt: customer.CreatedAt,
	}
}
