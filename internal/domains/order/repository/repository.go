package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"trattoria/infras/otel"
	"trattoria/infras/postgres"
	"trattoria/internal/domains/order/model"
	gDto "trattoria/shared/dto"
	gRepo "trattoria/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Order interface {
	InsertReturning(ctx context.Context, model model.Order) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Order, error)
	GetAll(ctx context.Context, sort gDto.Sort, filter gDto.FilterGroup, columns ...string) ([]model.Order, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type OrderItem interface {
	InsertReturning(ctx context.Context, model model.OrderItem) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.OrderItem, error)
	GetAll(ctx context.Context, sort gDto.Sort, filter gDto.FilterGroup, columns ...string) ([]model.OrderItem, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type orderRepositoryImpl struct {
	gRepo.Repository[model.Order]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Order {
	return &orderRepositoryImpl{
		Repository: gRepo.NewRepository[model.Order](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type orderItemRepositoryImpl struct {
	gRepo.Repository[model.OrderItem]
	db   *postgres.Connection
	otel otel.Otel
}

func NewItem(db *postgres.Connection, otel otel.Otel) OrderItem {
	return &orderItemRepositoryImpl{
		Repository: gRepo.NewRepository[model.OrderItem](model.ItemEntityName, model.ItemTableName, model.ItemFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
