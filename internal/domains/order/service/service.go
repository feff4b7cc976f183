package service

import (
	"context"
	"fmt"
	"strconv"

	"trattoria/config"
	"trattoria/infras/kafka"
	"trattoria/infras/otel"
	menuModel "trattoria/internal/domains/menu/model"
	menuRepository "trattoria/internal/domains/menu/repository"
	"trattoria/internal/domains/order/model"
	"trattoria/internal/domains/order/model/dto"
	"trattoria/internal/domains/order/repository"
	reservationModel "trattoria/internal/domains/reservation/model"
	reservationRepository "trattoria/internal/domains/reservation/repository"
	"trattoria/shared"
	"trattoria/shared/cache"
	"trattoria/shared/constant"
	gDto "trattoria/shared/dto"
	"trattoria/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetOrder = "order:get"

	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"

	eventOrderCreated       = "order.created"
	eventOrderStatusChanged = "order.status_changed"
)

type Order interface {
	CreateForReservation(ctx context.Context, reservationID int64, req dto.CreateOrderRequest) (dto.OrderResponse, error)
	Get(ctx context.Context, id int64) (dto.OrderResponse, error)
	UpdateStatus(ctx context.Context, id int64, req dto.UpdateStatusRequest) (dto.OrderResponse, error)
	AddItem(ctx context.Context, orderID int64, req dto.AddItemRequest) (dto.OrderItemResponse, error)
	UpdateItem(ctx context.Context, itemID int64, req dto.UpdateItemRequest) (dto.OrderItemResponse, error)
	DeleteItem(ctx context.Context, itemID int64) error
	ItemsForPrinting(ctx context.Context, orderID int64, requestedType string) (dto.PrintTicket, error)
}

type serviceImpl struct {
	repo            repository.Order
	itemRepo        repository.OrderItem
	reservationRepo reservationRepository.Reservation
	menuRepo        menuRepository.MenuItem
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
	kafka           kafka.Client
}

func New(
	repo repository.Order,
	itemRepo repository.OrderItem,
	reservationRepo reservationRepository.Reservation,
	menuRepo menuRepository.MenuItem,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	kafkaClient kafka.Client,
) Order {
	return &serviceImpl{
		repo:            repo,
		itemRepo:        itemRepo,
		reservationRepo: reservationRepo,
		menuRepo:        menuRepo,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
		kafka:           kafkaClient,
	}
}

func (s *serviceImpl) CreateForReservation(ctx context.Context, reservationID int64, req dto.CreateOrderRequest) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateForReservation")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.reservationRepo.Exist(ctx, shared.FilterByID(reservationID, reservationModel.FieldID, reservationModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if reservation exists")

		return res, fmt.Errorf("failed to check if reservation exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("Reservation not found") // nolint:wrapcheck
	}

	order := req.ToModel(reservationID)

	id, err := s.repo.InsertReturning(ctx, order)
	if err != nil {
		log.Error().Err(err).Msg("failed to create order")

		return res, fmt.Errorf("failed to create order: %w", err)
	}

	order.ID = id
	res.FromModel(order, nil)

	s.publishEvent(ctx, eventOrderCreated, order)

	shared.InvalidateCaches(ctx, s.cache, cacheGetReservation, cacheGetAllReservation)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetOrder, strconv.FormatInt(id, 10))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for order")

		return res, nil
	}

	order, items, err := s.getOrderWithItems(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(order, items)

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save order to cache")
	}

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id int64, req dto.UpdateStatusRequest) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	order, items, err := s.getOrderWithItems(ctx, id)
	if err != nil {
		return res, err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, map[string]any{model.FieldStatus: req.Status}, filter); err != nil {
		log.Error().Err(err).Msg("failed to update order status")

		return res, fmt.Errorf("failed to update order status: %w", err)
	}

	order.Status = req.Status
	res.FromModel(order, items)

	s.publishEvent(ctx, eventOrderStatusChanged, order)

	s.invalidateOrderCaches(ctx, id)

	return res, nil
}

func (s *serviceImpl) AddItem(ctx context.Context, orderID int64, req dto.AddItemRequest) (res dto.OrderItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(orderID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if order exists")

		return res, fmt.Errorf("failed to check if order exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("Order not found") // nolint:wrapcheck
	}

	menuExist, err := s.menuRepo.Exist(ctx, shared.FilterByID(*req.MenuItemID, menuModel.FieldID, menuModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if menu item exists")

		return res, fmt.Errorf("failed to check if menu item exists: %w", err)
	}

	if !menuExist {
		return res, failure.NotFound("Menu item not found") // nolint:wrapcheck
	}

	id, err := s.itemRepo.InsertReturning(ctx, req.ToModel(orderID))
	if err != nil {
		log.Error().Err(err).Msg("failed to add item to order")

		return res, fmt.Errorf("failed to add item to order: %w", err)
	}

	// Re-read through the join so the response carries menu item details.
	item, err := s.itemRepo.Get(ctx, shared.FilterByID(id, model.ItemFieldID, model.ItemTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to load created order item")

		return res, fmt.Errorf("failed to load created order item: %w", err)
	}

	res.FromModel(item)

	s.invalidateOrderCaches(ctx, orderID)

	return res, nil
}

func (s *serviceImpl) UpdateItem(ctx context.Context, itemID int64, req dto.UpdateItemRequest) (res dto.OrderItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(itemID, model.ItemFieldID, model.ItemTableName)

	item, err := s.itemRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get order item")

		return res, fmt.Errorf("failed to get order item: %w", err)
	}

	if item.ID == 0 {
		return res, failure.NotFound("Order item not found") // nolint:wrapcheck
	}

	// Nothing to change, echo the current state.
	if req.IsEmpty() {
		res.FromModel(item)

		return res, nil
	}

	updatedFields := shared.TransformFields(req)
	if err = s.itemRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update order item")

		return res, fmt.Errorf("failed to update order item: %w", err)
	}

	item, err = s.itemRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load updated order item")

		return res, fmt.Errorf("failed to load updated order item: %w", err)
	}

	res.FromModel(item)

	s.invalidateOrderCaches(ctx, item.OrderID)

	return res, nil
}

func (s *serviceImpl) DeleteItem(ctx context.Context, itemID int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(itemID, model.ItemFieldID, model.ItemTableName)

	item, err := s.itemRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get order item")

		return fmt.Errorf("failed to get order item: %w", err)
	}

	if item.ID == 0 {
		return failure.NotFound("Order item not found") // nolint:wrapcheck
	}

	if err = s.itemRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete order item")

		return fmt.Errorf("failed to delete order item: %w", err)
	}

	s.invalidateOrderCaches(ctx, item.OrderID)

	return nil
}

func (s *serviceImpl) ItemsForPrinting(ctx context.Context, orderID int64, requestedType string) (res dto.PrintTicket, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ItemsForPrinting")
	defer scope.End()
	defer scope.TraceIfError(err)

	order, items, err := s.getOrderWithItems(ctx, orderID)
	if err != nil {
		return res, err
	}

	effectiveType := requestedType
	if effectiveType == constant.Empty {
		effectiveType = order.OrderType
	}

	filtered := []model.OrderItem{}

	switch {
	case effectiveType == model.OrderTypeFood:
		res.Title = dto.PrintTitleFood

		for _, item := range items {
			if item.MenuItemCategory.Valid && !menuModel.IsBeverageCategory(item.MenuItemCategory.String) {
				filtered = append(filtered, item)
			}
		}
	case effectiveType == model.OrderTypeBeverage:
		res.Title = dto.PrintTitleBeverage

		for _, item := range items {
			if item.MenuItemCategory.Valid && menuModel.IsBeverageCategory(item.MenuItemCategory.String) {
				filtered = append(filtered, item)
			}
		}
	case requestedType != constant.Empty:
		return res, failure.BadRequestFromString("Invalid print type specified. Use 'food' or 'beverage'.") // nolint:wrapcheck
	default:
		res.Title = dto.PrintTitleFull
		filtered = items
	}

	res.Order = order
	res.Items = filtered

	return res, nil
}

func (s *serviceImpl) getOrderWithItems(ctx context.Context, id int64) (model.Order, []model.OrderItem, error) {
	order, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get order")

		return order, nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order.ID == 0 {
		return order, nil, failure.NotFound("Order not found") // nolint:wrapcheck
	}

	items, err := s.itemRepo.GetAll(ctx, gDto.SortByIDAsc(), gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.ItemFieldOrderID,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
				Table:    model.ItemTableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get order items")

		return order, nil, fmt.Errorf("failed to get order items: %w", err)
	}

	return order, items, nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, event string, order model.Order) {
	if !s.cfg.Kafka.Enable {
		return
	}

	message := kafka.Message{
		Key:   strconv.FormatInt(order.ID, 10),
		Value: dto.NewOrderEvent(event, order),
	}

	if err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.OrderEvents, message); err != nil {
		log.Error().Err(err).Str("event", event).Int64("orderID", order.ID).Msg("failed to publish order event")
	}
}

func (s *serviceImpl) invalidateOrderCaches(ctx context.Context, orderID int64) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetOrder, strconv.FormatInt(orderID, 10))); err != nil {
		log.Error().Err(err).Msg("failed to delete order cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetReservation, cacheGetAllReservation)
}
