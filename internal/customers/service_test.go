package customers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/timelessstrands/storefront-backend/pkg/db/models"
	pkgerrors "github.com/timelessstrands/storefront-backend/pkg/errors"
	"github.com/timelessstrands/storefront-backend/pkg/pagination"
)

type stubCustomerRepo struct {
	byPhone map[string]*models.Customer
	byID    map[uuid.UUID]*models.Customer
	stats   map[uuid.UUID]*OrderStats
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{
		byPhone: map[string]*models.Customer{},
		byID:    map[uuid.UUID]*models.Customer{},
		stats:   map[uuid.UUID]*OrderStats{},
	}
}

func (s *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Customer, error) {
	if c, ok := s.byID[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCustomerRepo) FindByPhone(_ context.Context, phone string) (*models.Customer, error) {
	if c, ok := s.byPhone[phone]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCustomerRepo) UpsertByPhone(_ context.Context, customer *models.Customer) (*models.Customer, error) {
	if existing, ok := s.byPhone[customer.Phone]; ok {
		existing.Name = customer.Name
		existing.Email = customer.Email
		return existing, nil
	}
	customer.ID = uuid.New()
	s.byPhone[customer.Phone] = customer
	s.byID[customer.ID] = customer
	return customer, nil
}

func (s *stubCustomerRepo) List(_ context.Context, _ pagination.Params) ([]models.Customer, string, error) {
	out := make([]models.Customer, 0, len(s.byID))
	for _, c := range s.byID {
		out = append(out, *c)
	}
	return out, "", nil
}

func (s *stubCustomerRepo) OrderStats(_ context.Context, customerID uuid.UUID) (*OrderStats, error) {
	if st, ok := s.stats[customerID]; ok {
		return st, nil
	}
	return &OrderStats{TotalSpent: "0"}, nil
}

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "+254712345678", NormalizePhone(" +254 712-345 678 "))
	assert.Equal(t, "0712345678", NormalizePhone("0712 345 678"))
	assert.Equal(t, "254712345678", NormalizePhone("254+712345678"))
}

func TestUpsertCreatesThenRefreshes(t *testing.T) {
	t.Parallel()

	repo := newStubCustomerRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	first, err := svc.Upsert(context.Background(), UpsertInput{
		Name:  "Amina Odhiambo",
		Phone: "0712 345 678",
		Email: "amina@example.com",
	})
	require.NoError(t, err)

	second, err := svc.Upsert(context.Background(), UpsertInput{
		Name:  "Amina A. Odhiambo",
		Phone: "0712345678",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Amina A. Odhiambo", second.Name)
}

func TestUpsertValidation(t *testing.T) {
	t.Parallel()

	svc, err := NewService(newStubCustomerRepo())
	require.NoError(t, err)

	_, err = svc.Upsert(context.Background(), UpsertInput{Phone: "0712345678"})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())

	_, err = svc.Upsert(context.Background(), UpsertInput{Name: "Amina", Phone: "12"})
	coded = pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestGetIncludesStats(t *testing.T) {
	t.Parallel()

	repo := newStubCustomerRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	customer, err := svc.Upsert(context.Background(), UpsertInput{Name: "Amina", Phone: "0712345678"})
	require.NoError(t, err)
	repo.stats[customer.ID] = &OrderStats{OrderCount: 3, TotalSpent: "9000"}

	dto, err := svc.Get(context.Background(), customer.ID)
	require.NoError(t, err)
	require.NotNil(t, dto.Stats)
	assert.Equal(t, int64(3), dto.Stats.OrderCount)
	assert.Equal(t, "9000", dto.Stats.TotalSpent)
}

func TestGetNotFound(t *testing.T) {
	t.Parallel()

	svc, err := NewService(newStubCustomerRepo())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New())
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}
