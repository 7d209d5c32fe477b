package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"craftmarket/internal/errors"
	"craftmarket/internal/model"
)

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]model.Order, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func TestOrderService_Create(t *testing.T) {
	buyerID := uuid.New()
	repo := new(MockOrderRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)

	svc := NewOrderService(repo)
	order, err := svc.Create(context.Background(), buyerID, CreateOrderInput{
		Items:   []OrderItemInput{{ProductID: uuid.New()}, {ProductID: uuid.New(), Quantity: 3}},
		Total:   decimal.NewFromInt(4600),
		Address: "Москва, ул. Пушкина, 1",
		Phone:   "+7 (912) 345-67-89",
	})

	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, buyerID, order.BuyerID)
	// Quantity defaults to one.
	assert.Equal(t, 1, order.Items[0].Quantity)
	assert.Equal(t, 3, order.Items[1].Quantity)
	repo.AssertExpectations(t)
}

func TestOrderService_GetPermissions(t *testing.T) {
	orderID := uuid.New()
	buyerID := uuid.New()

	tests := []struct {
		name          string
		callerID      uuid.UUID
		role          model.Role
		expectedError error
	}{
		{"buyer reads own order", buyerID, model.RoleBuyer, nil},
		{"admin reads any order", uuid.New(), model.RoleAdmin, nil},
		{"stranger is rejected", uuid.New(), model.RoleBuyer, errors.ErrNoPermission},
		{"master without ownership is rejected", uuid.New(), model.RoleMaster, errors.ErrNoPermission},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockOrderRepository)
			repo.On("FindByID", mock.Anything, orderID).Return(&model.Order{ID: orderID, BuyerID: buyerID}, nil)

			svc := NewOrderService(repo)
			_, err := svc.Get(context.Background(), orderID, tt.callerID, tt.role)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	orderID := uuid.New()

	tests := []struct {
		name          string
		role          model.Role
		status        model.OrderStatus
		setupMock     func(*MockOrderRepository)
		expectedError error
	}{
		{
			name:   "master confirms",
			role:   model.RoleMaster,
			status: model.OrderStatusConfirmed,
			setupMock: func(m *MockOrderRepository) {
				m.On("FindByID", mock.Anything, orderID).Return(&model.Order{ID: orderID, Status: model.OrderStatusPending}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)
			},
		},
		{
			name:          "buyer cannot change status",
			role:          model.RoleBuyer,
			status:        model.OrderStatusConfirmed,
			setupMock:     func(m *MockOrderRepository) {},
			expectedError: errors.ErrNoPermission,
		},
		{
			name:          "unknown status",
			role:          model.RoleAdmin,
			status:        model.OrderStatus("teleported"),
			setupMock:     func(m *MockOrderRepository) {},
			expectedError: errors.ErrInvalidOrderStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockOrderRepository)
			tt.setupMock(repo)

			svc := NewOrderService(repo)
			order, err := svc.UpdateStatus(context.Background(), orderID, tt.role, tt.status)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.status, order.Status)
			}
			repo.AssertExpectations(t)
		})
	}
}
