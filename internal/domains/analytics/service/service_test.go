package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	analyticsMocks "hotel/internal/domains/analytics/mocks"
	"hotel/internal/domains/analytics/model"
	"hotel/internal/domains/analytics/model/dto"
	"hotel/internal/domains/analytics/service"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
)

func newService(t *testing.T) (*analyticsMocks.MockAnalytics, *cacheMocks.MockRedisCache, service.Analytics) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := analyticsMocks.NewMockAnalytics(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 300

	redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return repo, redisCache, service.New(repo, cfg, redisCache, mocks.NewOtel())
}

func TestAnalyticsService_MonthlySummary(t *testing.T) {
	t.Run("cache miss", func(t *testing.T) {
		repo, redisCache, svc := newService(t)

		redisCache.EXPECT().Get(gomock.Any(), "analytics:monthly", gomock.Any()).Return(cache.Nil)
		repo.EXPECT().MonthlySummary(gomock.Any()).Return([]model.MonthlySummary{
			{Month: "2024-05", Total: 3},
			{Month: "2024-06", Total: 7},
		}, nil)

		res, err := svc.MonthlySummary(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, []dto.MonthlySummaryResponse{{Month: "2024-05", Total: 3}, {Month: "2024-06", Total: 7}}, res)
	})

	t.Run("cache hit", func(t *testing.T) {
		_, redisCache, svc := newService(t)

		redisCache.EXPECT().
			Get(gomock.Any(), "analytics:monthly", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*value.(*[]dto.MonthlySummaryResponse) = []dto.MonthlySummaryResponse{{Month: "2024-06", Total: 1}}

				return nil
			})

		res, err := svc.MonthlySummary(context.Background())

		assert.NoError(t, err)
		assert.Len(t, res, 1)
	})

	t.Run("store error", func(t *testing.T) {
		repo, redisCache, svc := newService(t)

		redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		repo.EXPECT().MonthlySummary(gomock.Any()).Return(nil, errors.New("database error"))

		_, err := svc.MonthlySummary(context.Background())
		assert.Error(t, err)
	})
}

func TestAnalyticsService_CategorySummary(t *testing.T) {
	repo, redisCache, svc := newService(t)

	redisCache.EXPECT().Get(gomock.Any(), "analytics:category", gomock.Any()).Return(cache.Nil)
	repo.EXPECT().CategorySummary(gomock.Any()).Return([]model.CategorySummary{
		{Category: "Suite", Total: 9},
		{Category: "Standard", Total: 4},
	}, nil)

	res, err := svc.CategorySummary(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "Suite", res[0].Category)
	assert.Equal(t, 9, res[0].Total)
}
