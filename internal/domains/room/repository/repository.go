package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/room/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.RoomDetail, error)
	GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.RoomDetail, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	detail gRepo.Repository[model.RoomDetail]
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	detail := gRepo.NewRepository[model.RoomDetail](model.EntityName, model.TableName, model.FieldID, db, otel)
	detail.WithDefaultOrder(model.TableName + "." + model.FieldRoomNumber + " ASC")

	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		detail:     detail,
	}
}

// GetDetail loads one room with its category. A zero value means no match.
func (r *repositoryImpl) GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.RoomDetail, error) {
	return r.detail.Get(ctx, filter) //nolint:wrapcheck
}

// GetAllDetail lists rooms with their category, by room number unless params sort otherwise.
func (r *repositoryImpl) GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.RoomDetail, error) {
	return r.detail.GetAll(ctx, params, filter) //nolint:wrapcheck
}
