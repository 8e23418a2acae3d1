package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/metrics"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/availability/service"
	reservationMocks "hotel/internal/domains/reservation/mocks"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/interval"
)

func juneWindow() interval.Window {
	return interval.Window{
		Start: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC),
	}
}

func returnGeneration(gen string) func(context.Context, string, any) error {
	return func(_ context.Context, _ string, value any) error {
		*value.(*string) = gen

		return nil
	}
}

func TestWindowKey(t *testing.T) {
	assert.Equal(t,
		"availability:7:2024-06-01T00:00:00Z_2024-06-05T00:00:00Z",
		service.WindowKey("7", juneWindow()))
}

func TestAvailableFilter(t *testing.T) {
	filter := service.AvailableFilter([]string{"r1", "r2"})

	where, args := filter.GetWhereClause()

	assert.Contains(t, where, "rooms.id NOT IN (:id_0, :id_1)")
	assert.Contains(t, where, "AND rooms.active = :active")
	assert.Equal(t, "r1", args["id_0"])
	assert.Equal(t, "r2", args["id_1"])
	assert.Equal(t, true, args["active"])

	empty := service.AvailableFilter(nil)
	where, _ = empty.GetWhereClause()
	assert.Equal(t, "(TRUE AND rooms.active = :active)", where)
}

func TestAvailabilityService_FindAvailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReservationRepo := reservationMocks.NewMockReservation(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 300

	window := juneWindow()
	freeRoom := roomModel.RoomDetail{ID: "r2", RoomNumber: "102", Active: true, CategoryName: "Deluxe", CategoryPrice: 120}

	tests := []struct {
		name      string
		window    interval.Window
		setupMock func()
		wantCode  int
		wantRooms []string
		wantHit   float64
		wantMiss  float64
	}{
		{
			name:     "invalid window",
			window:   interval.Window{Start: window.End, End: window.Start},
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "cache hit",
			window: window,
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), constant.CacheKeyAvailabilityGeneration, gomock.Any()).
					DoAndReturn(returnGeneration("3"))
				mockCache.EXPECT().
					Get(gomock.Any(), service.WindowKey("3", window), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*[]roomDto.RoomResponse) = []roomDto.RoomResponse{{ID: "cached"}}

						return nil
					})
			},
			wantRooms: []string{"cached"},
			wantHit:   1,
		},
		{
			name:   "cache miss excludes reserved rooms",
			window: window,
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), constant.CacheKeyAvailabilityGeneration, gomock.Any()).
					Return(cache.Nil)
				mockCache.EXPECT().
					Get(gomock.Any(), service.WindowKey("0", window), gomock.Any()).
					Return(cache.Nil)
				mockReservationRepo.EXPECT().
					DistinctRoomIDs(gomock.Any(), window).
					Return([]string{"r1"}, nil)
				mockRoomRepo.EXPECT().
					GetAllDetail(gomock.Any(), gDto.QueryParams{}, service.AvailableFilter([]string{"r1"})).
					Return([]roomModel.RoomDetail{freeRoom}, nil)
				mockCache.EXPECT().
					Save(gomock.Any(), service.WindowKey("0", window), gomock.Any(), 300).
					Return(nil).
					AnyTimes()
			},
			wantRooms: []string{"r2"},
			wantMiss:  1,
		},
		{
			name:   "generation unreadable bypasses cache",
			window: window,
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), constant.CacheKeyAvailabilityGeneration, gomock.Any()).
					Return(errors.New("dial tcp: connection refused"))
				mockReservationRepo.EXPECT().
					DistinctRoomIDs(gomock.Any(), window).
					Return([]string{}, nil)
				mockRoomRepo.EXPECT().
					GetAllDetail(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]roomModel.RoomDetail{freeRoom}, nil)
			},
			wantRooms: []string{"r2"},
			wantMiss:  1,
		},
		{
			name:   "reservation store error",
			window: window,
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(cache.Nil).
					Times(2)
				mockReservationRepo.EXPECT().
					DistinctRoomIDs(gomock.Any(), window).
					Return(nil, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
			wantMiss: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setupMock != nil {
				tt.setupMock()
			}

			m := metrics.New(cfg)
			svc := service.New(mockReservationRepo, mockRoomRepo, cfg, mockCache, m, mocks.NewOtel())

			rooms, err := svc.FindAvailable(context.Background(), tt.window)

			assert.Equal(t, tt.wantHit, testutil.ToFloat64(m.CacheLookups.WithLabelValues("availability", metrics.CacheHit)))
			assert.Equal(t, tt.wantMiss, testutil.ToFloat64(m.CacheLookups.WithLabelValues("availability", metrics.CacheMiss)))

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)

			ids := make([]string, len(rooms))
			for i, room := range rooms {
				ids[i] = room.ID
			}

			assert.Equal(t, tt.wantRooms, ids)
		})
	}
}

func TestInvalidator_ReservationChanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	oldWindow := juneWindow()
	newWindow := interval.Window{Start: oldWindow.End, End: oldWindow.End.AddDate(0, 0, 3)}

	t.Run("drops exact keys and bumps generation", func(t *testing.T) {
		m := metrics.New(&config.Config{})
		invalidator := service.NewInvalidator(mockCache, m, mocks.NewOtel())

		gomock.InOrder(
			mockCache.EXPECT().
				Get(gomock.Any(), constant.CacheKeyAvailabilityGeneration, gomock.Any()).
				DoAndReturn(returnGeneration("4")),
			mockCache.EXPECT().Delete(gomock.Any(), service.WindowKey("4", oldWindow)).Return(nil),
			mockCache.EXPECT().Delete(gomock.Any(), service.WindowKey("4", newWindow)).Return(nil),
			mockCache.EXPECT().Incr(gomock.Any(), constant.CacheKeyAvailabilityGeneration).Return(int64(5), nil),
			mockCache.EXPECT().Clear(gomock.Any(), "analytics*").Return(nil),
		)

		err := invalidator.ReservationChanged(context.Background(), oldWindow, newWindow)

		assert.NoError(t, err)
		assert.Equal(t, float64(0), testutil.ToFloat64(m.InvalidationFailure.WithLabelValues("availability")))
	})

	t.Run("failure is reported and counted", func(t *testing.T) {
		m := metrics.New(&config.Config{})
		invalidator := service.NewInvalidator(mockCache, m, mocks.NewOtel())

		mockCache.EXPECT().
			Get(gomock.Any(), constant.CacheKeyAvailabilityGeneration, gomock.Any()).
			Return(cache.Nil)
		mockCache.EXPECT().Delete(gomock.Any(), service.WindowKey("0", oldWindow)).Return(errors.New("i/o timeout"))
		mockCache.EXPECT().Incr(gomock.Any(), constant.CacheKeyAvailabilityGeneration).Return(int64(1), nil)
		mockCache.EXPECT().Clear(gomock.Any(), "analytics*").Return(nil)

		err := invalidator.ReservationChanged(context.Background(), oldWindow)

		assert.Error(t, err)
		assert.Equal(t, float64(1), testutil.ToFloat64(m.InvalidationFailure.WithLabelValues("availability")))
	})
}

func TestInvalidator_RoomChanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	m := metrics.New(&config.Config{})
	invalidator := service.NewInvalidator(mockCache, m, mocks.NewOtel())

	mockCache.EXPECT().Clear(gomock.Any(), "room:gets*").Return(nil)
	mockCache.EXPECT().Clear(gomock.Any(), "room:count*").Return(nil)
	mockCache.EXPECT().Incr(gomock.Any(), constant.CacheKeyAvailabilityGeneration).Return(int64(2), nil)

	assert.NoError(t, invalidator.RoomChanged(context.Background()))

	mockCache.EXPECT().Clear(gomock.Any(), "room:gets*").Return(errors.New("i/o timeout"))
	mockCache.EXPECT().Clear(gomock.Any(), "room:count*").Return(nil)
	mockCache.EXPECT().Incr(gomock.Any(), constant.CacheKeyAvailabilityGeneration).Return(int64(3), nil)

	assert.Error(t, invalidator.RoomChanged(context.Background()))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.InvalidationFailure.WithLabelValues("room")))
}
