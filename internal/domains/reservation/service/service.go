package service

import (
	"context"
	"fmt"
	"strconv"

	"trattoria/config"
	"trattoria/infras/otel"
	"trattoria/infras/postgres"
	orderModel "trattoria/internal/domains/order/model"
	orderDto "trattoria/internal/domains/order/model/dto"
	orderRepository "trattoria/internal/domains/order/repository"
	"trattoria/internal/domains/reservation/model"
	"trattoria/internal/domains/reservation/model/dto"
	"trattoria/internal/domains/reservation/repository"
	"trattoria/shared"
	"trattoria/shared/cache"
	"trattoria/shared/constant"
	gDto "trattoria/shared/dto"
	"trattoria/shared/failure"
	"trattoria/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context) ([]dto.ReservationResponse, error)
	Get(ctx context.Context, id int64) (dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id int64) (dto.ReservationResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo       repository.Reservation
	orderRepo  orderRepository.Order
	itemRepo   orderRepository.OrderItem
	transactor postgres.Transactor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Reservation,
	orderRepo orderRepository.Order,
	itemRepo orderRepository.OrderItem,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:       repo,
		orderRepo:  orderRepo,
		itemRepo:   itemRepo,
		transactor: transactor,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation := req.ToModel()

	id, err := s.repo.InsertReturning(ctx, reservation)
	if err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	reservation.ID = id
	res.FromModel(reservation)

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllReservation)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllReservation, "all")

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, gDto.SortByIDAsc(), gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	reservationIDs := make([]int64, len(models))
	for i, reservation := range models {
		reservationIDs[i] = reservation.ID
	}

	ordersByReservation, err := s.composeOrders(ctx, reservationIDs)
	if err != nil {
		return res, err
	}

	res = make([]dto.ReservationResponse, len(models))
	for i, reservation := range models {
		res[i].FromModel(reservation)

		if orders, ok := ordersByReservation[reservation.ID]; ok {
			res[i].Orders = orders
		}
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save reservations to cache")
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetReservation, strconv.FormatInt(id, 10))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	res, err = s.getComposed(ctx, id)
	if err != nil {
		return res, err
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save reservation to cache")
	}

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id int64) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if reservation exists")

		return res, fmt.Errorf("failed to check if reservation exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("Reservation not found") // nolint:wrapcheck
	}

	if !req.IsEmpty() {
		updatedFields := shared.TransformFields(req)

		if req.ReservationTime != nil {
			// Validated against the wire layout, parsing cannot fail here.
			reservationTime, _ := timezone.Parse(constant.TimestampFormat, *req.ReservationTime)
			updatedFields[model.FieldReservationTime] = reservationTime
		}

		if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
			log.Error().Err(err).Msg("failed to update reservation")

			return res, fmt.Errorf("failed to update reservation: %w", err)
		}

		s.invalidateReservationCaches(ctx, id)
	}

	return s.getComposed(ctx, id)
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if reservation exists")

		return fmt.Errorf("failed to check if reservation exists: %w", err)
	}

	if !exist {
		return failure.NotFound("Reservation not found") // nolint:wrapcheck
	}

	orders, err := s.orderRepo.GetAll(ctx, gDto.SortByIDAsc(), filterByReservationIDs([]int64{id}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation orders")

		return fmt.Errorf("failed to get reservation orders: %w", err)
	}

	orderIDs := make([]int64, len(orders))
	for i, order := range orders {
		orderIDs[i] = order.ID
	}

	err = s.transactor.WithinTransaction(ctx, func(tx *sqlx.Tx) error {
		if len(orderIDs) > 0 {
			if err := s.itemRepo.DeleteTx(ctx, tx, filterByOrderIDs(orderIDs)); err != nil {
				return fmt.Errorf("failed to delete reservation order items: %w", err)
			}

			if err := s.orderRepo.DeleteTx(ctx, tx, filterByReservationIDs([]int64{id})); err != nil {
				return fmt.Errorf("failed to delete reservation orders: %w", err)
			}
		}

		if err := s.repo.DeleteTx(ctx, tx, filter); err != nil {
			return fmt.Errorf("failed to delete reservation: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete reservation")

		return err
	}

	s.invalidateReservationCaches(ctx, id)

	return nil
}

func (s *serviceImpl) getComposed(ctx context.Context, id int64) (res dto.ReservationResponse, err error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == 0 {
		return res, failure.NotFound("Reservation not found") // nolint:wrapcheck
	}

	ordersByReservation, err := s.composeOrders(ctx, []int64{reservation.ID})
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	if orders, ok := ordersByReservation[reservation.ID]; ok {
		res.Orders = orders
	}

	return res, nil
}

// composeOrders loads the orders of the given reservations with their items
// and groups the assembled responses by reservation id.
func (s *serviceImpl) composeOrders(ctx context.Context, reservationIDs []int64) (map[int64][]orderDto.OrderResponse, error) {
	result := map[int64][]orderDto.OrderResponse{}

	if len(reservationIDs) == 0 {
		return result, nil
	}

	orders, err := s.orderRepo.GetAll(ctx, gDto.SortByIDAsc(), filterByReservationIDs(reservationIDs))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation orders")

		return nil, fmt.Errorf("failed to get reservation orders: %w", err)
	}

	if len(orders) == 0 {
		return result, nil
	}

	orderIDs := make([]int64, len(orders))
	for i, order := range orders {
		orderIDs[i] = order.ID
	}

	items, err := s.itemRepo.GetAll(ctx, gDto.SortByIDAsc(), filterByOrderIDs(orderIDs))
	if err != nil {
		log.Error().Err(err).Msg("failed to get order items")

		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	itemsByOrder := map[int64][]orderModel.OrderItem{}
	for _, item := range items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	for _, order := range orders {
		if !order.ReservationID.Valid {
			continue
		}

		var orderRes orderDto.OrderResponse
		orderRes.FromModel(order, itemsByOrder[order.ID])

		result[order.ReservationID.Int64] = append(result[order.ReservationID.Int64], orderRes)
	}

	return result, nil
}

func (s *serviceImpl) invalidateReservationCaches(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetReservation, strconv.FormatInt(id, 10))); err != nil {
		log.Error().Err(err).Msg("failed to delete reservation cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllReservation)
}

func filterByReservationIDs(ids []int64) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    orderModel.FieldReservationID,
				Value:    ids,
				Operator: gDto.FilterOperatorIn,
				Table:    orderModel.TableName,
			},
		},
	}
}

func filterByOrderIDs(ids []int64) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    orderModel.ItemFieldOrderID,
				Value:    ids,
				Operator: gDto.FilterOperatorIn,
				Table:    orderModel.ItemTableName,
			},
		},
	}
}
