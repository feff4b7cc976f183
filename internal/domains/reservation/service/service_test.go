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
	"trattoria/infras/otel/mocks"
	postgresMocks "trattoria/infras/postgres/mocks"
	orderMocks "trattoria/internal/domains/order/mocks"
	orderModel "trattoria/internal/domains/order/model"
	reservationMocks "trattoria/internal/domains/reservation/mocks"
	"trattoria/internal/domains/reservation/model"
	"trattoria/internal/domains/reservation/model/dto"
	"trattoria/internal/domains/reservation/service"
	cacheMocks "trattoria/shared/cache/mocks"
	"trattoria/shared/failure"
)

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

type reservationServiceMocks struct {
	repo      *reservationMocks.MockReservation
	orderRepo *orderMocks.MockOrder
	itemRepo  *orderMocks.MockOrderItem
	cache     *cacheMocks.MockRedisCache
}

func newReservationService(ctrl *gomock.Controller, cfg *config.Config) (service.Reservation, reservationServiceMocks) {
	m := reservationServiceMocks{
		repo:      reservationMocks.NewMockReservation(ctrl),
		orderRepo: orderMocks.NewMockOrder(ctrl),
		itemRepo:  orderMocks.NewMockOrderItem(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	svc := service.New(m.repo, m.orderRepo, m.itemRepo, postgresMocks.NewTransactor(), cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func testReservation() model.Reservation {
	return model.Reservation{
		ID:              7,
		CustomerName:    "Giulia Bianchi",
		PhoneNumber:     "+39 333 1234567",
		ReservationTime: time.Date(2025, 3, 14, 19, 30, 0, 0, time.UTC),
		NumGuests:       4,
		TableNumber:     sql.NullInt64{Int64: 12, Valid: true},
		Status:          "confirmed",
	}
}

func testOrders() []orderModel.Order {
	return []orderModel.Order{
		{
			ID:            1,
			ReservationID: sql.NullInt64{Int64: 7, Valid: true},
			CreatedAt:     time.Date(2025, 3, 14, 19, 45, 0, 0, time.UTC),
			Status:        "pending",
			OrderType:     "food",
		},
	}
}

func testOrderItems() []orderModel.OrderItem {
	return []orderModel.OrderItem{
		{
			ID:            10,
			OrderID:       1,
			MenuItemID:    3,
			Quantity:      2,
			MenuItemName:  sql.NullString{String: "Margherita Pizza", Valid: true},
			MenuItemPrice: sql.NullFloat64{Float64: 12.50, Valid: true},
		},
	}
}

func TestReservationService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc, m := newReservationService(ctrl, cfg)

	tests := []struct {
		name      string
		req       dto.CreateReservationRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation",
			req: dto.CreateReservationRequest{
				CustomerName:    "Giulia Bianchi",
				PhoneNumber:     "+39 333 1234567",
				ReservationTime: "2025-03-14 19:30:00",
				NumGuests:       intPtr(4),
			},
			setupMock: func() {
				m.repo.EXPECT().
					InsertReturning(gomock.Any(), gomock.Any()).
					Return(int64(7), nil)

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "repository error",
			req: dto.CreateReservationRequest{
				CustomerName:    "Giulia Bianchi",
				PhoneNumber:     "+39 333 1234567",
				ReservationTime: "2025-03-14 19:30:00",
				NumGuests:       intPtr(4),
			},
			setupMock: func() {
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

			res, err := svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(7), res.ID)
				assert.Equal(t, "pending", res.Status)
				assert.Equal(t, "2025-03-14 19:30:00", res.ReservationTime)
				assert.NotNil(t, res.Orders)
				assert.Empty(t, res.Orders)
			}
		})
	}
}

func TestReservationService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc, m := newReservationService(ctrl, cfg)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantLen   int
	}{
		{
			name: "cache hit",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
			wantLen: 0,
		},
		{
			name: "cache miss, reservations with orders",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Reservation{testReservation()}, nil)

				m.orderRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(testOrders(), nil)

				m.itemRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(testOrderItems(), nil)

				m.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
			wantLen: 1,
		},
		{
			name: "no reservations",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Reservation{}, nil)

				m.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
			wantLen: 0,
		},
		{
			name: "repository error",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.GetAll(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, res, tt.wantLen)
			}
		})
	}
}

func TestReservationService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc, m := newReservationService(ctrl, cfg)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
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
			name: "cache miss, reservation with orders",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testReservation(), nil)

				m.orderRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(testOrders(), nil)

				m.itemRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(testOrderItems(), nil)

				m.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "reservation not found",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), 7)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, res.Orders)
			}
		})
	}
}

func TestReservationService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc, m := newReservationService(ctrl, cfg)

	expectComposed := func() {
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testReservation(), nil)

		m.orderRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]orderModel.Order{}, nil)
	}

	tests := []struct {
		name      string
		req       dto.UpdateReservationRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful update",
			req: dto.UpdateReservationRequest{
				Status: strPtr("seated"),
			},
			setupMock: func() {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					Update(gomock.Any(), map[string]any{"status": "seated"}, gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil)

				expectComposed()
			},
			wantErr: false,
		},
		{
			name: "reservation time is parsed before update",
			req: dto.UpdateReservationRequest{
				ReservationTime: strPtr("2025-03-20 20:00:00"),
			},
			setupMock: func() {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						_, ok := fields["reservation_time"].(time.Time)
						assert.True(t, ok)

						return nil
					})

				m.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil)

				expectComposed()
			},
			wantErr: false,
		},
		{
			name: "empty request skips the update",
			req:  dto.UpdateReservationRequest{},
			setupMock: func() {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				expectComposed()
			},
			wantErr: false,
		},
		{
			name: "reservation not found",
			req: dto.UpdateReservationRequest{
				Status: strPtr("seated"),
			},
			setupMock: func() {
				m.repo.EXPECT().
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

			res, err := svc.Update(context.Background(), tt.req, 7)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(7), res.ID)
			}
		})
	}
}

func TestReservationService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc, m := newReservationService(ctrl, cfg)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "deletes orders and items along with the reservation",
			setupMock: func() {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.orderRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(testOrders(), nil)

				m.itemRepo.EXPECT().
					DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.orderRepo.EXPECT().
					DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.repo.EXPECT().
					DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "reservation without orders",
			setupMock: func() {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.orderRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]orderModel.Order{}, nil)

				m.repo.EXPECT().
					DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				m.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "reservation not found",
			setupMock: func() {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "delete error rolls back",
			setupMock: func() {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				m.orderRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]orderModel.Order{}, nil)

				m.repo.EXPECT().
					DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), 7)

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
