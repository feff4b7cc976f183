package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"trattoria/config"
	kafkaMocks "trattoria/infras/kafka/mocks"
	"trattoria/infras/otel/mocks"
	menuMocks "trattoria/internal/domains/menu/mocks"
	orderMocks "trattoria/internal/domains/order/mocks"
	"trattoria/internal/domains/order/model"
	"trattoria/internal/domains/order/model/dto"
	"trattoria/internal/domains/order/service"
	reservationMocks "trattoria/internal/domains/reservation/mocks"
	cacheMocks "trattoria/shared/cache/mocks"
	"trattoria/shared/failure"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}

type orderServiceMocks struct {
	repo            *orderMocks.MockOrder
	itemRepo        *orderMocks.MockOrderItem
	reservationRepo *reservationMocks.MockReservation
	menuRepo        *menuMocks.MockMenuItem
	cache           *cacheMocks.MockRedisCache
	kafka           *kafkaMocks.MockClient
}

func newOrderService(ctrl *gomock.Controller, cfg *config.Config) (service.Order, orderServiceMocks) {
	m := orderServiceMocks{
		repo:            orderMocks.NewMockOrder(ctrl),
		itemRepo:        orderMocks.NewMockOrderItem(ctrl),
		reservationRepo: reservationMocks.NewMockReservation(ctrl),
		menuRepo:        menuMocks.NewMockMenuItem(ctrl),
		cache:           cacheMocks.NewMockRedisCache(ctrl),
		kafka:           kafkaMocks.NewMockClient(ctrl),
	}

	svc := service.New(m.repo, m.itemRepo, m.reservationRepo, m.menuRepo, cfg, m.cache, mocks.NewOtel(), m.kafka)

	return svc, m
}

func testOrder() model.Order {
	return model.Order{
		ID:            1,
		ReservationID: sql.NullInt64{Int64: 7, Valid: true},
		CreatedAt:     time.Date(2025, 3, 14, 19, 30, 0, 0, time.UTC),
		Status:        "pending",
		OrderType:     "food",
	}
}

func testItems() []model.OrderItem {
	return []model.OrderItem{
		{
			ID:               10,
			OrderID:          1,
			MenuItemID:       3,
			Quantity:         2,
			MenuItemName:     sql.NullString{String: "Margherita Pizza", Valid: true},
			MenuItemPrice:    sql.NullFloat64{Float64: 12.50, Valid: true},
			MenuItemCategory: sql.NullString{String: "main", Valid: true},
		},
		{
			ID:               11,
			OrderID:          1,
			MenuItemID:       5,
			Quantity:         1,
			MenuItemName:     sql.NullString{String: "House Red", Valid: true},
			MenuItemPrice:    sql.NullFloat64{Float64: 6.00, Valid: true},
			MenuItemCategory: sql.NullString{String: "wine", Valid: true},
		},
	}
}

func TestOrderService_CreateForReservation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc, m := newOrderService(ctrl, cfg)

	tests := []struct {
		name      string
		req       dto.CreateOrderRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req:  dto.CreateOrderRequest{OrderType: "food"},
			setupMock: func() {
				m.reservationRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					InsertReturning(gomock.Any(), gomock.Any()).
					Return(int64(1), nil)

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					Times(2)
			},
			wantErr: false,
		},
		{
			name: "reservation not found",
			req:  dto.CreateOrderRequest{OrderType: "food"},
			setupMock: func() {
				m.reservationRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "repository error",
			req:  dto.CreateOrderRequest{OrderType: "beverage"},
			setupMock: func() {
				m.reservationRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					InsertReturning(gomock.Any(), gomock.Any()).
					Return(int64(0), errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.CreateForReservation(context.Background(), 7, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(1), res.ID)
				assert.Equal(t, "pending", res.Status)
				assert.Equal(t, int64(7), *res.ReservationID)
				assert.NotNil(t, res.Items)
				assert.Empty(t, res.Items)
			}
		})
	}
}

func TestOrderService_CreateForReservation_PublishesEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Enable = true
	cfg.Kafka.Topics.OrderEvents = "order-events"

	svc, m := newOrderService(ctrl, cfg)

	m.reservationRepo.EXPECT().
		Exist(gomock.Any(), gomock.Any()).
		Return(true, nil)

	m.repo.EXPECT().
		InsertReturning(gomock.Any(), gomock.Any()).
		Return(int64(1), nil)

	m.kafka.EXPECT().
		SendMessages(gomock.Any(), "order-events", gomock.Any()).
		Return(nil)

	m.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(2)

	_, err := svc.CreateForReservation(context.Background(), 7, dto.CreateOrderRequest{OrderType: "food"})
	assert.NoError(t, err)
}

func TestOrderService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc, m := newOrderService(ctrl, cfg)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
		wantItems int
	}{
		{
			name: "cache hit",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, loaded from db",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testOrder(), nil)

				m.itemRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(testItems(), nil)

				m.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr:   false,
			wantItems: 2,
		},
		{
			name: "order not found",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Order{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), 1)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Len(t, res.Items, tt.wantItems)
			}
		})
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc, m := newOrderService(ctrl, cfg)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful status update",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testOrder(), nil)

				m.itemRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(testItems(), nil)

				m.repo.EXPECT().
					Update(gomock.Any(), map[string]any{model.FieldStatus: "preparing"}, gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					Times(2)
			},
			wantErr: false,
		},
		{
			name: "order not found",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Order{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "update error",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testOrder(), nil)

				m.itemRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(testItems(), nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.UpdateStatus(context.Background(), 1, dto.UpdateStatusRequest{Status: "preparing"})

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "preparing", res.Status)
				assert.Len(t, res.Items, 2)
			}
		})
	}
}

func TestOrderService_AddItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc, m := newOrderService(ctrl, cfg)

	req := dto.AddItemRequest{
		MenuItemID: int64Ptr(3),
		Quantity:   intPtr(2),
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful add",
			setupMock: func() {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.menuRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.itemRepo.EXPECT().
					InsertReturning(gomock.Any(), gomock.Any()).
					Return(int64(10), nil)

				m.itemRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testItems()[0], nil)

				m.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					Times(2)
			},
			wantErr: false,
		},
		{
			name: "order not found",
			setupMock: func() {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "menu item not found",
			setupMock: func() {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.menuRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.AddItem(context.Background(), 1, req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(10), res.ID)
				assert.Equal(t, "Margherita Pizza", res.MenuItemName)
				assert.Equal(t, 12.50, res.MenuItemPrice)
			}
		})
	}
}

func TestOrderService_UpdateItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc, m := newOrderService(ctrl, cfg)

	tests := []struct {
		name         string
		req          dto.UpdateItemRequest
		setupMock    func()
		wantErr      bool
		wantCode     int
		wantQuantity int
	}{
		{
			name: "successful quantity update",
			req:  dto.UpdateItemRequest{Quantity: intPtr(5)},
			setupMock: func() {
				m.itemRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testItems()[0], nil)

				m.itemRepo.EXPECT().
					Update(gomock.Any(), map[string]any{"quantity": 5}, gomock.Any()).
					Return(nil)

				updated := testItems()[0]
				updated.Quantity = 5

				m.itemRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(updated, nil)

				m.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					Times(2)
			},
			wantErr:      false,
			wantQuantity: 5,
		},
		{
			name: "empty request echoes current state",
			req:  dto.UpdateItemRequest{},
			setupMock: func() {
				m.itemRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testItems()[0], nil)
			},
			wantErr:      false,
			wantQuantity: 2,
		},
		{
			name: "order item not found",
			req:  dto.UpdateItemRequest{Quantity: intPtr(5)},
			setupMock: func() {
				m.itemRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.OrderItem{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.UpdateItem(context.Background(), 10, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantQuantity, res.Quantity)
			}
		})
	}
}

func TestOrderService_DeleteItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc, m := newOrderService(ctrl, cfg)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful delete",
			setupMock: func() {
				m.itemRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testItems()[0], nil)

				m.itemRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					Times(2)
			},
			wantErr: false,
		},
		{
			name: "order item not found",
			setupMock: func() {
				m.itemRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.OrderItem{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.DeleteItem(context.Background(), 10)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrderService_ItemsForPrinting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc, m := newOrderService(ctrl, cfg)

	expectOrderWithItems := func() {
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testOrder(), nil)

		m.itemRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(testItems(), nil)
	}

	tests := []struct {
		name          string
		requestedType string
		setupMock     func()
		wantErr       bool
		wantCode      int
		wantTitle     string
		wantItems     int
	}{
		{
			name:          "food ticket keeps only food items",
			requestedType: "food",
			setupMock:     expectOrderWithItems,
			wantTitle:     dto.PrintTitleFood,
			wantItems:     1,
		},
		{
			name:          "beverage ticket keeps only beverage items",
			requestedType: "beverage",
			setupMock:     expectOrderWithItems,
			wantTitle:     dto.PrintTitleBeverage,
			wantItems:     1,
		},
		{
			name:          "no type falls back to the order type",
			requestedType: "",
			setupMock:     expectOrderWithItems,
			wantTitle:     dto.PrintTitleFood,
			wantItems:     1,
		},
		{
			name:          "invalid explicit type",
			requestedType: "dessert",
			setupMock:     expectOrderWithItems,
			wantErr:       true,
			wantCode:      400,
		},
		{
			name:          "order not found",
			requestedType: "food",
			setupMock: func() {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Order{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.ItemsForPrinting(context.Background(), 1, tt.requestedType)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantTitle, res.Title)
				assert.Len(t, res.Items, tt.wantItems)
			}
		})
	}
}

func TestOrderService_ItemsForPrinting_FullTicket(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc, m := newOrderService(ctrl, cfg)

	order := testOrder()
	order.OrderType = "unknown"

	m.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(order, nil)

	m.itemRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(testItems(), nil)

	res, err := svc.ItemsForPrinting(context.Background(), 1, "")

	assert.NoError(t, err)
	assert.Equal(t, dto.PrintTitleFull, res.Title)
	assert.Len(t, res.Items, 2)
}
