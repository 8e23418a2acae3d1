// Package service computes which rooms are free for a stay window and keeps
// the cached answers coherent with reservation and room writes.
//
// Cached windows live under availability:<generation>:<start>_<end>. Every
// write bumps the generation, after which no answer cached under an older
// generation is served again, whichever window it covers. The exact key of
// each written window is deleted as well.
package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/metrics"
	"hotel/infras/otel"
	reservationRepo "hotel/internal/domains/reservation/repository"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/interval"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheNameAvailability = "availability"
	cacheNameRoom         = "room"
	initialGeneration     = "0"
)

type Availability interface {
	FindAvailable(ctx context.Context, window interval.Window) ([]roomDto.RoomResponse, error)
}

type Invalidator interface {
	ReservationChanged(ctx context.Context, windows ...interval.Window) error
	RoomChanged(ctx context.Context) error
}

type serviceImpl struct {
	reservationRepo reservationRepo.Reservation
	roomRepo        roomRepo.Room
	cfg             *config.Config
	cache           cache.RedisCache
	metrics         *metrics.Metrics
	otel            otel.Otel
}

func New(
	reservationRepo reservationRepo.Reservation,
	roomRepo roomRepo.Room,
	cfg *config.Config,
	cache cache.RedisCache,
	metrics *metrics.Metrics,
	otel otel.Otel,
) Availability {
	return &serviceImpl{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		cfg:             cfg,
		cache:           cache,
		metrics:         metrics,
		otel:            otel,
	}
}

// FindAvailable returns active rooms with no reservation overlapping window.
func (s *serviceImpl) FindAvailable(ctx context.Context, window interval.Window) (res []roomDto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FindAvailable")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if !window.Valid() {
		return nil, failure.BadRequest(interval.ErrInvalidWindow) // nolint:wrapcheck
	}

	cacheKey := constant.Empty

	gen, err := generation(ctx, s.cache)
	if err != nil {
		log.Warn().Err(err).Msg("availability generation unreadable, bypassing cache")
	} else {
		cacheKey = WindowKey(gen, window)

		if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
			s.metrics.CacheLookups.WithLabelValues(cacheNameAvailability, metrics.CacheHit).Inc()
			log.Info().Str("cacheKey", cacheKey).Msg("cache hit for availability")

			return res, nil
		}
	}

	s.metrics.CacheLookups.WithLabelValues(cacheNameAvailability, metrics.CacheMiss).Inc()

	roomIDs, err := s.reservationRepo.DistinctRoomIDs(ctx, window)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reserved rooms")

		return nil, fmt.Errorf("failed to get reserved rooms: %w", err)
	}

	rooms, err := s.roomRepo.GetAllDetail(ctx, gDto.QueryParams{}, AvailableFilter(roomIDs))
	if err != nil {
		log.Error().Err(err).Msg("failed to get available rooms")

		return nil, fmt.Errorf("failed to get available rooms: %w", err)
	}

	res = roomDto.FromModels(rooms)

	if cacheKey != constant.Empty {
		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save availability to cache")
			}
		}()
	}

	return res, nil
}

// AvailableFilter matches active rooms outside reservedRoomIDs.
func AvailableFilter(reservedRoomIDs []string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldID,
				Value:    reservedRoomIDs,
				Operator: gDto.FilterOperatorNotIn,
				Table:    roomModel.TableName,
			},
			gDto.Filter{
				Field:    roomModel.FieldActive,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    roomModel.TableName,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

// WindowKey is the cache key of one availability window at a generation.
func WindowKey(generation string, window interval.Window) string {
	return shared.BuildCacheKey(
		constant.CacheKeyAvailability,
		generation,
		window.Start.UTC().Format(time.RFC3339)+"_"+window.End.UTC().Format(time.RFC3339),
	)
}

func generation(ctx context.Context, redisCache cache.RedisCache) (string, error) {
	var gen string

	err := redisCache.Get(ctx, constant.CacheKeyAvailabilityGeneration, &gen)
	if errors.Is(err, cache.Nil) {
		return initialGeneration, nil
	}

	if err != nil {
		return constant.Empty, fmt.Errorf("failed to read availability generation: %w", err)
	}

	return gen, nil
}

type invalidatorImpl struct {
	cache   cache.RedisCache
	metrics *metrics.Metrics
	otel    otel.Otel
}

func NewInvalidator(cache cache.RedisCache, metrics *metrics.Metrics, otel otel.Otel) Invalidator {
	return &invalidatorImpl{
		cache:   cache,
		metrics: metrics,
		otel:    otel,
	}
}

// ReservationChanged drops cached availability for the given windows, retires
// every other cached window, and clears analytics built from reservations.
func (i *invalidatorImpl) ReservationChanged(ctx context.Context, windows ...interval.Window) (err error) {
	ctx, scope := i.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReservationChanged")
	defer scope.End()
	defer scope.TraceIfError(&err)

	var errs []error

	gen, err := generation(ctx, i.cache)
	if err != nil {
		errs = append(errs, err)
	} else {
		for _, window := range windows {
			if err := i.cache.Delete(ctx, WindowKey(gen, window)); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if _, err := i.cache.Incr(ctx, constant.CacheKeyAvailabilityGeneration); err != nil {
		errs = append(errs, err)
	}

	if err := shared.InvalidateCaches(ctx, i.cache, constant.CacheKeyAnalytics); err != nil {
		errs = append(errs, err)
	}

	return i.report(cacheNameAvailability, errs)
}

// RoomChanged clears every cached room listing and retires cached availability.
func (i *invalidatorImpl) RoomChanged(ctx context.Context) (err error) {
	ctx, scope := i.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RoomChanged")
	defer scope.End()
	defer scope.TraceIfError(&err)

	var errs []error

	for _, prefix := range []string{constant.CacheKeyRoomGets, constant.CacheKeyRoomCount} {
		if err := shared.InvalidateCaches(ctx, i.cache, prefix); err != nil {
			errs = append(errs, err)
		}
	}

	if _, err := i.cache.Incr(ctx, constant.CacheKeyAvailabilityGeneration); err != nil {
		errs = append(errs, err)
	}

	return i.report(cacheNameRoom, errs)
}

func (i *invalidatorImpl) report(cacheName string, errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	err := errors.Join(errs...)

	i.metrics.InvalidationFailure.WithLabelValues(cacheName).Inc()
	log.Error().Err(err).Str("cache", cacheName).Msg("cache invalidation incomplete, stale entries live until TTL")

	return fmt.Errorf("failed to invalidate %s cache: %w", cacheName, err)
}
