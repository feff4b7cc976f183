package service

import (
	"context"
	"fmt"

	"trattoria/config"
	"trattoria/infras/otel"
	"trattoria/internal/domains/menu/model"
	"trattoria/internal/domains/menu/model/dto"
	"trattoria/internal/domains/menu/repository"
	"trattoria/shared"
	"trattoria/shared/cache"
	"trattoria/shared/constant"
	gDto "trattoria/shared/dto"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllMenuItem = "menu_item:gets"
)

type MenuItem interface {
	Create(ctx context.Context, req dto.CreateMenuItemRequest) (dto.MenuItemResponse, error)
	GetAll(ctx context.Context, category string) ([]dto.MenuItemResponse, error)
}

type serviceImpl struct {
	repo  repository.MenuItem
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.MenuItem, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) MenuItem {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateMenuItemRequest) (res dto.MenuItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	item := req.ToModel()

	id, err := s.repo.InsertReturning(ctx, item)
	if err != nil {
		log.Error().Err(err).Msg("failed to create menu item")

		return res, fmt.Errorf("failed to create menu item: %w", err)
	}

	item.ID = id
	res.FromModel(item)

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllMenuItem)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, category string) (res []dto.MenuItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllMenuItem, category)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for menu items")

		return res, nil
	}

	filter := gDto.FilterGroup{}
	if category != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldCategory,
			Value:    category,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	models, err := s.repo.GetAll(ctx, gDto.SortByIDAsc(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu items")

		return res, fmt.Errorf("failed to get menu items: %w", err)
	}

	res = make([]dto.MenuItemResponse, len(models))
	for i, item := range models {
		res[i].FromModel(item)
	}

	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save menu items to cache")
	}

	return res, nil
}
