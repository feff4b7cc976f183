//go:build wireinject
// +build wireinject

package di

import (
	"trattoria/config"
	"trattoria/infras/jwt"
	"trattoria/infras/kafka"
	"trattoria/infras/otel"
	"trattoria/infras/postgres"
	"trattoria/infras/redis"
	"trattoria/shared/cache"
	"trattoria/transport/http"
	"trattoria/transport/http/middleware"
	"trattoria/transport/http/router"

	menuRepository "trattoria/internal/domains/menu/repository"
	menuService "trattoria/internal/domains/menu/service"
	menuHandler "trattoria/internal/handlers/menu"

	reservationRepository "trattoria/internal/domains/reservation/repository"
	reservationService "trattoria/internal/domains/reservation/service"
	reservationHandler "trattoria/internal/handlers/reservation"

	orderRepository "trattoria/internal/domains/order/repository"
	orderService "trattoria/internal/domains/order/service"
	orderHandler "trattoria/internal/handlers/order"

	authService "trattoria/internal/domains/auth/service"
	userRepository "trattoria/internal/domains/user/repository"
	authHandler "trattoria/internal/handlers/auth"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewIdentityMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var menuDomain = wire.NewSet(
	menuRepository.New,
	menuService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var orderDomain = wire.NewSet(
	orderRepository.New,
	orderRepository.NewItem,
	orderService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	menuDomain,
	reservationDomain,
	orderDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	menuHandler.New,
	reservationHandler.New,
	orderHandler.New,
	authHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
