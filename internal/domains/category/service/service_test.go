package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	availabilityMocks "hotel/internal/domains/availability/mocks"
	categoryMocks "hotel/internal/domains/category/mocks"
	"hotel/internal/domains/category/model"
	"hotel/internal/domains/category/model/dto"
	"hotel/internal/domains/category/service"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

type fixture struct {
	repo        *categoryMocks.MockCategory
	invalidator *availabilityMocks.MockInvalidator
	cache       *cacheMocks.MockRedisCache
	svc         service.Category
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:        categoryMocks.NewMockCategory(ctrl),
		invalidator: availabilityMocks.NewMockInvalidator(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 300

	f.svc = service.New(f.repo, f.invalidator, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func adminCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func TestCategoryService_Create(t *testing.T) {
	req := dto.CreateCategoryRequest{Name: "Deluxe", Price: 150, Capacity: 2}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful creation",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, category model.Category) error {
						assert.Equal(t, "admin-1", category.CreatedBy)
						assert.True(t, category.Active)

						return nil
					})
			},
		},
		{
			name: "duplicate name ignoring case",
			setupMock: func(f fixture) {
				f.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
						where, args := filter.GetWhereClause()
						assert.Contains(t, where, "LOWER(categories.name) = LOWER(:name)")
						assert.Equal(t, "Deluxe", args["name"])

						return true, nil
					})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "unique violation on insert",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			id, err := f.svc.Create(adminCtx(), req)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, id)
			}
		})
	}
}

func TestCategoryService_Get(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), "category:get:c1", gomock.Any()).Return(cache.Nil)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{ID: "c1", Name: "Suite", Price: 300}, nil)

	res, err := f.svc.Get(context.Background(), "c1")
	assert.NoError(t, err)
	assert.Equal(t, "Suite", res.Name)

	f.cache.EXPECT().Get(gomock.Any(), "category:get:missing", gomock.Any()).Return(cache.Nil)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{}, nil)

	_, err = f.svc.Get(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestCategoryService_GetAll(t *testing.T) {
	f := newFixture(t)
	params := gDto.QueryParams{Page: 1, Limit: 10}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(12, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Category{{ID: "c1"}, {ID: "c2"}}, nil)

	res, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Categories, 2)
}

func TestCategoryService_Update(t *testing.T) {
	t.Run("empty request", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Update(adminCtx(), dto.UpdateCategoryRequest{}, "c1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("name taken by another category", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := f.svc.Update(adminCtx(), dto.UpdateCategoryRequest{Name: "Suite"}, "c1")
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("price change invalidates room views", func(t *testing.T) {
		f := newFixture(t)
		price := 99.5

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, price, fields["price"])
				assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

				return nil
			})
		f.invalidator.EXPECT().RoomChanged(gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Update(adminCtx(), dto.UpdateCategoryRequest{Price: &price}, "c1"))
	})
}

func TestCategoryService_Delete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(adminCtx(), "c1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("still referenced by rooms", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23503"})

		err := f.svc.Delete(adminCtx(), "c1")
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("deleted even when invalidation fails", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.invalidator.EXPECT().RoomChanged(gomock.Any()).Return(errors.New("redis down"))

		assert.NoError(t, f.svc.Delete(adminCtx(), "c1"))
	})
}
