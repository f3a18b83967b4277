package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/timelessstrands/storefront-backend/pkg/db/models"
	"github.com/timelessstrands/storefront-backend/pkg/enums"
	pkgerrors "github.com/timelessstrands/storefront-backend/pkg/errors"
)

type stubOrderRepo struct {
	byID     map[uuid.UUID]*models.Order
	byNumber map[string]*models.Order
	updates  int
}

func newStubOrderRepo(rows ...*models.Order) *stubOrderRepo {
	repo := &stubOrderRepo{
		byID:     map[uuid.UUID]*models.Order{},
		byNumber: map[string]*models.Order{},
	}
	for _, row := range rows {
		repo.byID[row.ID] = row
		repo.byNumber[row.OrderNumber] = row
	}
	return repo
}

func (s *stubOrderRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	s.byID[order.ID] = order
	s.byNumber[order.OrderNumber] = order
	return order, nil
}

func (s *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	if order, ok := s.byID[id]; ok {
		return order, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	if order, ok := s.byNumber[orderNumber]; ok {
		return order, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) Update(_ context.Context, order *models.Order) (*models.Order, error) {
	s.updates++
	s.byID[order.ID] = order
	return order, nil
}

func (s *stubOrderRepo) List(_ context.Context, input ListOrdersInput) ([]models.Order, string, error) {
	out := make([]models.Order, 0, len(s.byID))
	for _, order := range s.byID {
		if input.Status != nil && order.Status != *input.Status {
			continue
		}
		out = append(out, *order)
	}
	return out, "", nil
}

func (s *stubOrderRepo) StatusCounts(_ context.Context) (map[enums.OrderStatus]int64, error) {
	counts := map[enums.OrderStatus]int64{}
	for _, order := range s.byID {
		counts[order.Status]++
	}
	return counts, nil
}

func orderFixture(status enums.OrderStatus) *models.Order {
	return &models.Order{
		ID:            uuid.New(),
		OrderNumber:   "TS-481275",
		CustomerID:    uuid.New(),
		CustomerName:  "Amina Odhiambo",
		CustomerPhone: "+254712345678",
		CountyName:    "Nairobi",
		Status:        status,
		Subtotal:      decimal.NewFromInt(6000),
		Total:         decimal.NewFromInt(6000),
		Items: []models.OrderLineItem{{
			ID:          uuid.New(),
			ProductID:   uuid.New(),
			VariantID:   uuid.New(),
			ProductName: "Silky Straight",
			Style:       "Straight",
			Colour:      "Black",
			Inch:        "14",
			Density:     "180%",
			LaceSize:    "4x4",
			UnitPrice:   decimal.NewFromInt(3000),
			Quantity:    2,
			LineTotal:   decimal.NewFromInt(6000),
		}},
	}
}

func newOrderService(t *testing.T, repo OrderRepository) Service {
	t.Helper()
	svc, err := NewService(repo, nil)
	require.NoError(t, err)
	return svc
}

func TestTrackNormalizesOrderNumber(t *testing.T) {
	t.Parallel()

	order := orderFixture(enums.OrderStatusPending)
	svc := newOrderService(t, newStubOrderRepo(order))

	dto, err := svc.Track(context.Background(), "  ts-481275 ")
	require.NoError(t, err)
	assert.Equal(t, "TS-481275", dto.OrderNumber)
	assert.Equal(t, "pending", dto.Status)
	require.Len(t, dto.Items, 1)
	assert.Equal(t, "Silky Straight", dto.Items[0].ProductName)
}

func TestTrackUnknownOrder(t *testing.T) {
	t.Parallel()

	svc := newOrderService(t, newStubOrderRepo())

	_, err := svc.Track(context.Background(), "TS-000000")
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestUpdateStatusForwardTransition(t *testing.T) {
	t.Parallel()

	order := orderFixture(enums.OrderStatusConfirmed)
	repo := newStubOrderRepo(order)
	svc := newOrderService(t, repo)

	dto, err := svc.UpdateStatus(context.Background(), order.ID, enums.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, "processing", dto.Status)
	assert.Equal(t, 1, repo.updates)
}

func TestUpdateStatusBackwardRejected(t *testing.T) {
	t.Parallel()

	order := orderFixture(enums.OrderStatusShipped)
	svc := newOrderService(t, newStubOrderRepo(order))

	_, err := svc.UpdateStatus(context.Background(), order.ID, enums.OrderStatusProcessing)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeStateConflict, coded.Code())
}

func TestUpdateStatusCancelFromNonTerminal(t *testing.T) {
	t.Parallel()

	order := orderFixture(enums.OrderStatusProcessing)
	svc := newOrderService(t, newStubOrderRepo(order))

	dto, err := svc.UpdateStatus(context.Background(), order.ID, enums.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", dto.Status)
}

func TestUpdateStatusFromTerminalRejected(t *testing.T) {
	t.Parallel()

	order := orderFixture(enums.OrderStatusDelivered)
	svc := newOrderService(t, newStubOrderRepo(order))

	_, err := svc.UpdateStatus(context.Background(), order.ID, enums.OrderStatusCancelled)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeStateConflict, coded.Code())
}

func TestConfirmPaymentFromPending(t *testing.T) {
	t.Parallel()

	order := orderFixture(enums.OrderStatusPending)
	svc := newOrderService(t, newStubOrderRepo(order))

	dto, err := svc.ConfirmPayment(context.Background(), order.ID, " sfe9k2m1qx ")
	require.NoError(t, err)
	assert.True(t, dto.PaymentConfirmed)
	require.NotNil(t, dto.TransactionCode)
	assert.Equal(t, "SFE9K2M1QX", *dto.TransactionCode)
	assert.Equal(t, "confirmed", dto.Status)
}

func TestConfirmPaymentKeepsLaterStatus(t *testing.T) {
	t.Parallel()

	order := orderFixture(enums.OrderStatusProcessing)
	svc := newOrderService(t, newStubOrderRepo(order))

	dto, err := svc.ConfirmPayment(context.Background(), order.ID, "SFE9K2M1QX")
	require.NoError(t, err)
	assert.Equal(t, "processing", dto.Status)
	assert.True(t, dto.PaymentConfirmed)
}

func TestConfirmPaymentTwiceRejected(t *testing.T) {
	t.Parallel()

	order := orderFixture(enums.OrderStatusConfirmed)
	order.PaymentConfirmed = true
	svc := newOrderService(t, newStubOrderRepo(order))

	_, err := svc.ConfirmPayment(context.Background(), order.ID, "SFE9K2M1QX")
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeStateConflict, coded.Code())
}

func TestConfirmPaymentRequiresCode(t *testing.T) {
	t.Parallel()

	order := orderFixture(enums.OrderStatusPending)
	svc := newOrderService(t, newStubOrderRepo(order))

	_, err := svc.ConfirmPayment(context.Background(), order.ID, "  ")
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestAdminListRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	svc := newOrderService(t, newStubOrderRepo())

	bogus := enums.OrderStatus("archived")
	_, err := svc.AdminList(context.Background(), ListOrdersInput{Status: &bogus})
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestStatusCounts(t *testing.T) {
	t.Parallel()

	a := orderFixture(enums.OrderStatusPending)
	b := orderFixture(enums.OrderStatusPending)
	b.ID = uuid.New()
	b.OrderNumber = "TS-481276"
	c := orderFixture(enums.OrderStatusDelivered)
	c.ID = uuid.New()
	c.OrderNumber = "TS-481277"

	svc := newOrderService(t, newStubOrderRepo(a, b, c))

	counts, err := svc.StatusCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[enums.OrderStatusPending])
	assert.Equal(t, int64(1), counts[enums.OrderStatusDelivered])
}
