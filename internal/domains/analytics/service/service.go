package service

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/analytics/model/dto"
	"hotel/internal/domains/analytics/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyMonthly  = "monthly"
	cacheKeyCategory = "category"
)

type Analytics interface {
	MonthlySummary(ctx context.Context) ([]dto.MonthlySummaryResponse, error)
	CategorySummary(ctx context.Context) ([]dto.CategorySummaryResponse, error)
}

type serviceImpl struct {
	repo  repository.Analytics
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Analytics, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Analytics {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) MonthlySummary(ctx context.Context) (res []dto.MonthlySummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MonthlySummary")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(constant.CacheKeyAnalytics, cacheKeyMonthly)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for monthly summary")

		return res, nil
	}

	summaries, err := s.repo.MonthlySummary(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get monthly summary")

		return nil, fmt.Errorf("failed to get monthly summary: %w", err)
	}

	res = dto.MonthlyFromModels(summaries)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) CategorySummary(ctx context.Context) (res []dto.CategorySummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CategorySummary")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(constant.CacheKeyAnalytics, cacheKeyCategory)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for category summary")

		return res, nil
	}

	summaries, err := s.repo.CategorySummary(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get category summary")

		return nil, fmt.Errorf("failed to get category summary: %w", err)
	}

	res = dto.CategoryFromModels(summaries)
	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save analytics to cache")
		}
	}()
}
