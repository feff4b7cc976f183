package http_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"trattoria/config"
	"trattoria/infras/jwt"
	kafkaMocks "trattoria/infras/kafka/mocks"
	otelMocks "trattoria/infras/otel/mocks"
	postgresMocks "trattoria/infras/postgres/mocks"
	authService "trattoria/internal/domains/auth/service"
	menuMocks "trattoria/internal/domains/menu/mocks"
	menuService "trattoria/internal/domains/menu/service"
	orderMocks "trattoria/internal/domains/order/mocks"
	orderService "trattoria/internal/domains/order/service"
	reservationMocks "trattoria/internal/domains/reservation/mocks"
	reservationModel "trattoria/internal/domains/reservation/model"
	reservationService "trattoria/internal/domains/reservation/service"
	userMocks "trattoria/internal/domains/user/mocks"
	authHandler "trattoria/internal/handlers/auth"
	menuHandler "trattoria/internal/handlers/menu"
	orderHandler "trattoria/internal/handlers/order"
	reservationHandler "trattoria/internal/handlers/reservation"
	cacheMocks "trattoria/shared/cache/mocks"
	transport "trattoria/transport/http"
	"trattoria/transport/http/middleware"
	"trattoria/transport/http/router"
)

type serverMocks struct {
	menuRepo        *menuMocks.MockMenuItem
	orderRepo       *orderMocks.MockOrder
	orderItemRepo   *orderMocks.MockOrderItem
	reservationRepo *reservationMocks.MockReservation
	userRepo        *userMocks.MockUser
	cache           *cacheMocks.MockRedisCache
}

func newTestHandler(ctrl *gomock.Controller) (http.Handler, *serverMocks) {
	cfg := &config.Config{}
	cfg.App.Name = "trattoria"
	cfg.JWT.AccessSecret = "test-access-secret"
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	m := &serverMocks{
		menuRepo:        menuMocks.NewMockMenuItem(ctrl),
		orderRepo:       orderMocks.NewMockOrder(ctrl),
		orderItemRepo:   orderMocks.NewMockOrderItem(ctrl),
		reservationRepo: reservationMocks.NewMockReservation(ctrl),
		userRepo:        userMocks.NewMockUser(ctrl),
		cache:           cacheMocks.NewMockRedisCache(ctrl),
	}

	mockOtel := otelMocks.NewOtel()
	jwtService := jwt.New(cfg)
	kafkaClient := kafkaMocks.NewMockClient(ctrl)

	menuSvc := menuService.New(m.menuRepo, cfg, m.cache, mockOtel)
	orderSvc := orderService.New(
		m.orderRepo,
		m.orderItemRepo,
		m.reservationRepo,
		m.menuRepo,
		cfg,
		m.cache,
		mockOtel,
		kafkaClient,
	)
	reservationSvc := reservationService.New(
		m.reservationRepo,
		m.orderRepo,
		m.orderItemRepo,
		postgresMocks.NewTransactor(),
		cfg,
		m.cache,
		mockOtel,
	)
	authSvc := authService.New(m.userRepo, cfg, mockOtel, jwtService)

	handlers := router.DomainHandlers{
		Auth:        authHandler.New(authSvc, mockOtel),
		Menu:        menuHandler.New(menuSvc, mockOtel),
		Reservation: reservationHandler.New(reservationSvc, orderSvc, mockOtel),
		Order:       orderHandler.New(orderSvc, mockOtel),
	}

	server := transport.New(
		cfg,
		router.New(handlers),
		middleware.NewAppMiddleware(mockOtel, cfg, m.cache),
		middleware.NewIdentityMiddleware(jwtService, mockOtel),
	)

	return server.Handler(), m
}

func TestServer_HealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, _ := newTestHandler(ctrl)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"message":"OK"}`, recorder.Body.String())
}

func TestServer_StorageErrorIsMasked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, m := newTestHandler(ctrl)

	m.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	m.menuRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("pq: connection refused"))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/menu_items", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, recorder.Body.String())
	assert.NotContains(t, recorder.Body.String(), "pq:")
}

func TestServer_CreateOrderUnknownReservation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, m := newTestHandler(ctrl)

	m.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	m.reservationRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(reservationModel.Reservation{}, nil)

	// An invalid payload must not turn the unknown reservation into a 400.
	body := strings.NewReader(`{"order_type":"dessert"}`)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/reservations/999/orders", body))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"error":"Reservation not found"}`, recorder.Body.String())
}
