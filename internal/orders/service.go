package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/timelessstrands/storefront-backend/pkg/db/models"
	"github.com/timelessstrands/storefront-backend/pkg/enums"
	pkgerrors "github.com/timelessstrands/storefront-backend/pkg/errors"
	"github.com/timelessstrands/storefront-backend/pkg/logger"
)

// Service exposes public order tracking plus back-office order management.
type Service interface {
	Track(ctx context.Context, orderNumber string) (*TrackingDTO, error)

	AdminList(ctx context.Context, input ListOrdersInput) (*OrderListResult, error)
	AdminGet(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, next enums.OrderStatus) (*OrderDTO, error)
	ConfirmPayment(ctx context.Context, id uuid.UUID, transactionCode string) (*OrderDTO, error)
	StatusCounts(ctx context.Context) (map[enums.OrderStatus]int64, error)
}

// service implements the order service.
type service struct {
	repo OrderRepository
	logg *logger.Logger
}

// NewService constructs an order service instance.
func NewService(repo OrderRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Track(ctx context.Context, orderNumber string) (*TrackingDTO, error) {
	orderNumber = strings.ToUpper(strings.TrimSpace(orderNumber))
	if orderNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}

	order, err := s.repo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order")
	}
	return NewTrackingDTO(order), nil
}

func (s *service) AdminList(ctx context.Context, input ListOrdersInput) (*OrderListResult, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	rows, nextCursor, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing orders")
	}

	out := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewOrderDTO(&rows[i]))
	}
	return &OrderListResult{Orders: out, NextCursor: nextCursor}, nil
}

func (s *service) AdminGet(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewOrderDTO(order), nil
}

// UpdateStatus advances the order along its lifecycle. Transitions only move
// forward; cancellation is allowed from any non-terminal status.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, next enums.OrderStatus) (*OrderDTO, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, next))
	}

	order.Status = next
	if _, err := s.repo.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating order status")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderNumber(ctx, order.OrderNumber), "order status updated")
	}
	return NewOrderDTO(order), nil
}

// ConfirmPayment records the shopper's M-PESA transaction code and moves a
// pending order to confirmed. Re-confirming is a state conflict.
func (s *service) ConfirmPayment(ctx context.Context, id uuid.UUID, transactionCode string) (*OrderDTO, error) {
	transactionCode = strings.ToUpper(strings.TrimSpace(transactionCode))
	if transactionCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction code is required")
	}

	order, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.PaymentConfirmed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment already confirmed")
	}
	if order.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order is closed")
	}

	order.PaymentConfirmed = true
	order.TransactionCode = &transactionCode
	if order.Status == enums.OrderStatusPending {
		order.Status = enums.OrderStatusConfirmed
	}

	if _, err := s.repo.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "confirming payment")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderNumber(ctx, order.OrderNumber), "order payment confirmed")
	}
	return NewOrderDTO(order), nil
}

func (s *service) StatusCounts(ctx context.Context) (map[enums.OrderStatus]int64, error) {
	counts, err := s.repo.StatusCounts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting orders")
	}
	return counts, nil
}

func (s *service) loadOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading order")
	}
	return order, nil
}
