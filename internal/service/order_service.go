package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"craftmarket/internal/errors"
	"craftmarket/internal/model"
	"craftmarket/internal/repository"
)

// OrderItemInput is one product line of an incoming order.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CreateOrderInput carries a validated order request.
type CreateOrderInput struct {
	Items   []OrderItemInput
	Total   decimal.Decimal
	Address string
	Phone   string
}

// OrderService exposes order operations.
type OrderService interface {
	Create(ctx context.Context, buyerID uuid.UUID, in CreateOrderInput) (*model.Order, error)
	ListMine(ctx context.Context, buyerID uuid.UUID) ([]model.Order, error)
	Get(ctx context.Context, id, callerID uuid.UUID, role model.Role) (*model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, role model.Role, status model.OrderStatus) (*model.Order, error)
}

type orderService struct {
	orders repository.OrderRepository
}

// NewOrderService builds an OrderService over the order repository.
func NewOrderService(orders repository.OrderRepository) OrderService {
	return &orderService{orders: orders}
}

func (s *orderService) Create(ctx context.Context, buyerID uuid.UUID, in CreateOrderInput) (*model.Order, error) {
	items := make([]model.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		items = append(items, model.OrderItem{ProductID: item.ProductID, Quantity: qty})
	}

	order := &model.Order{
		ID:      uuid.New(),
		BuyerID: buyerID,
		Items:   items,
		Total:   in.Total,
		Address: in.Address,
		Phone:   in.Phone,
		Status:  model.OrderStatusPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

func (s *orderService) ListMine(ctx context.Context, buyerID uuid.UUID) ([]model.Order, error) {
	return s.orders.ListByBuyer(ctx, buyerID)
}

// Get returns an order to its buyer or to an admin.
func (s *orderService) Get(ctx context.Context, id, callerID uuid.UUID, role model.Role) (*model.Order, error) {
	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != callerID && role != model.RoleAdmin {
		return nil, errors.ErrNoPermission
	}
	return order, nil
}

// UpdateStatus moves an order to a new state. Masters and admins only.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, role model.Role, status model.OrderStatus) (*model.Order, error) {
	if role != model.RoleMaster && role != model.RoleAdmin {
		return nil, errors.ErrNoPermission
	}
	if !status.Valid() {
		return nil, errors.ErrInvalidOrderStatus
	}

	order, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Status = status
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return order, nil
}

func (s *orderService) load(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return order, nil
}
