// Package service is the reservation write path. Every write that can change
// which rooms are occupied runs under the room's exclusion token:
//
//	acquire lock:room:<id> -> FindConflicting -> insert/update -> release
//
// The store's exclusion constraint backs the check when a token expires
// mid-write. Availability caches are invalidated after commit; an
// invalidation failure is logged and counted, never rolled back.
package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/metrics"
	"hotel/infras/otel"
	availability "hotel/internal/domains/availability/service"
	"hotel/internal/domains/reservation/model"
	"hotel/internal/domains/reservation/model/dto"
	"hotel/internal/domains/reservation/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/interval"
	"hotel/shared/lock"
	"hotel/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	operationCreate     = "create"
	operationUpdate     = "update"
	operationReschedule = "reschedule"
	operationDelete     = "delete"

	msgConflict = "room is already reserved for the selected dates"
	msgRoomBusy = "room is being reserved by another request, try again"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (string, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id string) error
	Reschedule(ctx context.Context, req dto.RescheduleReservationRequest, id string) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetReservationsResponse, error)
	GetMine(ctx context.Context, params gDto.QueryParams) (dto.GetReservationsResponse, error)
}

type serviceImpl struct {
	repo        repository.Reservation
	roomRepo    roomRepo.Room
	locker      lock.Locker
	invalidator availability.Invalidator
	kafka       kafka.Client
	metrics     *metrics.Metrics
	cfg         *config.Config
	otel        otel.Otel
}

func New(
	repo repository.Reservation,
	roomRepo roomRepo.Room,
	locker lock.Locker,
	invalidator availability.Invalidator,
	kafka kafka.Client,
	metrics *metrics.Metrics,
	cfg *config.Config,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:        repo,
		roomRepo:    roomRepo,
		locker:      locker,
		invalidator: invalidator,
		kafka:       kafka,
		metrics:     metrics,
		cfg:         cfg,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return id, failure.Unauthorized("user not found in context") // nolint:wrapcheck
	}

	window, err := req.Window()
	if err != nil {
		return id, err
	}

	if err = s.ensureRoom(ctx, req.RoomID); err != nil {
		return id, err
	}

	reservation := req.ToModel(user, window)

	err = s.withRoomLock(ctx, reservation.RoomID, func(ctx context.Context) error {
		if err := s.checkConflict(ctx, operationCreate, reservation.RoomID, window, constant.Empty, interval.HalfOpen); err != nil {
			return err
		}

		return s.persistError(operationCreate, s.repo.Insert(ctx, reservation))
	})
	if err != nil {
		return id, err
	}

	s.committed(ctx, operationCreate, dto.EventCreated, reservation, user, window)

	return reservation.ID, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.Empty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	current, err := s.load(ctx, ownerFilter(ctx, id))
	if err != nil {
		return err
	}

	merged, err := req.Merge(current)
	if err != nil {
		return err
	}

	if merged.RoomID != current.RoomID {
		if err = s.ensureRoom(ctx, merged.RoomID); err != nil {
			return err
		}
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields := map[string]any{
		model.FieldRoomID:        merged.RoomID,
		model.FieldStartDate:     merged.StartDate,
		model.FieldEndDate:       merged.EndDate,
		model.FieldGuestCount:    merged.GuestCount,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	err = s.withRoomLock(ctx, merged.RoomID, func(ctx context.Context) error {
		if err := s.checkConflict(ctx, operationUpdate, merged.RoomID, merged.Window(), id, interval.HalfOpen); err != nil {
			return err
		}

		return s.persistError(operationUpdate, s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)))
	})
	if err != nil {
		return err
	}

	s.committed(ctx, operationUpdate, dto.EventUpdated, merged, user, current.Window(), merged.Window())

	return nil
}

// Reschedule moves the caller's own reservation to new dates on the same room.
func (s *serviceImpl) Reschedule(ctx context.Context, req dto.RescheduleReservationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reschedule")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return failure.Unauthorized("user not found in context") // nolint:wrapcheck
	}

	window, err := req.Window()
	if err != nil {
		return err
	}

	current, err := s.load(ctx, userFilter(id, user))
	if err != nil {
		return err
	}

	boundary := interval.ParseBoundary(s.cfg.App.Reservation.RescheduleBoundary)

	fields := map[string]any{
		model.FieldStartDate:     window.Start,
		model.FieldEndDate:       window.End,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	err = s.withRoomLock(ctx, current.RoomID, func(ctx context.Context) error {
		// The current window already holds the room, whatever the boundary.
		if !window.Equal(current.Window()) {
			if err := s.checkConflict(ctx, operationReschedule, current.RoomID, window, id, boundary); err != nil {
				return err
			}
		}

		return s.persistError(operationReschedule, s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)))
	})
	if err != nil {
		return err
	}

	rescheduled := current
	rescheduled.StartDate = window.Start
	rescheduled.EndDate = window.End

	s.committed(ctx, operationReschedule, dto.EventRescheduled, rescheduled, user, current.Window(), window)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	current, err := s.load(ctx, ownerFilter(ctx, id))
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("reservation_id", id).Msg("failed to delete reservation")

		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	s.committed(ctx, operationDelete, dto.EventDeleted, current, user, current.Window())

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	reservation, err := s.load(ctx, ownerFilter(ctx, id))
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	return s.list(ctx, params, gDto.FilterGroup{})
}

// GetMine lists the caller's reservations joined with room and category.
func (s *serviceImpl) GetMine(ctx context.Context, params gDto.QueryParams) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return res, failure.Unauthorized("user not found in context") // nolint:wrapcheck
	}

	return s.list(ctx, params, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Value:    user,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	})
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	if params.Page <= 0 {
		params.Page = constant.DefaultValuePage
	}

	if params.Limit <= 0 {
		params.Limit = constant.DefaultValueLimit
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	reservations, err := s.repo.GetAllDetail(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(reservations, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, filter gDto.FilterGroup) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return reservation, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	return reservation, nil
}

func (s *serviceImpl) ensureRoom(ctx context.Context, roomID string) error {
	exists, err := s.roomRepo.Exist(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exists {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	return nil
}

// withRoomLock runs fn while holding the room's exclusion token.
func (s *serviceImpl) withRoomLock(ctx context.Context, roomID string, fn func(ctx context.Context) error) error {
	started := time.Now()
	unlock, err := s.locker.Acquire(ctx, lock.RoomKey(roomID))
	s.metrics.LockWait.Observe(time.Since(started).Seconds())

	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			log.Warn().Str("room_id", roomID).Msg("room lock contended")

			return failure.Conflict(msgRoomBusy) // nolint:wrapcheck
		}

		log.Error().Err(err).Str("room_id", roomID).Msg("failed to lock room")

		return fmt.Errorf("failed to lock room: %w", err)
	}

	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			log.Warn().Err(err).Str("room_id", roomID).Msg("failed to release room lock")
		}
	}()

	return fn(ctx)
}

func (s *serviceImpl) checkConflict(
	ctx context.Context,
	operation, roomID string,
	window interval.Window,
	excludeID string,
	boundary interval.Boundary,
) error {
	existing, err := s.repo.FindConflicting(ctx, roomID, window, excludeID, boundary)
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to check reservation conflicts")

		return fmt.Errorf("failed to check reservation conflicts: %w", err)
	}

	if existing.ID != constant.Empty {
		s.metrics.ReservationConflicts.WithLabelValues(operation).Inc()
		log.Info().Str("room_id", roomID).Str("conflicting_id", existing.ID).Msg("reservation conflict")

		return failure.Conflict(msgConflict) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) persistError(operation string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrOverlap):
		s.metrics.ReservationConflicts.WithLabelValues(operation).Inc()

		return failure.Conflict(msgConflict) // nolint:wrapcheck
	case errors.Is(err, repository.ErrRoomNotFound):
		return failure.NotFound("room not found") // nolint:wrapcheck
	case errors.Is(err, repository.ErrUserNotFound):
		return failure.NotFound("user not found") // nolint:wrapcheck
	case errors.Is(err, repository.ErrInvalidStay):
		return failure.BadRequestFromString("end must be after start and guest count must be positive") // nolint:wrapcheck
	default:
		log.Error().Err(err).Str("operation", operation).Msg("failed to persist reservation")

		return fmt.Errorf("failed to persist reservation: %w", err)
	}
}

// committed runs once a write is durable. Failures here are logged, never returned.
func (s *serviceImpl) committed(ctx context.Context, operation, eventType string, reservation model.Reservation, actor string, windows ...interval.Window) {
	c := context.WithoutCancel(ctx)

	s.metrics.ReservationWrites.WithLabelValues(operation).Inc()

	if err := s.invalidator.ReservationChanged(c, windows...); err != nil {
		log.Error().Err(err).Str("reservation_id", reservation.ID).Msg("reservation committed but availability cache not invalidated")
	}

	go func() {
		message := kafka.Message{
			Key:   reservation.RoomID,
			Value: dto.NewEvent(eventType, reservation, actor),
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.Reservation, message); err != nil {
			log.Error().Err(err).Str("event", eventType).Str("reservation_id", reservation.ID).Msg("failed to publish reservation event")
		}
	}()
}

// ownerFilter scopes id to the caller unless the caller is an admin.
func ownerFilter(ctx context.Context, id string) gDto.FilterGroup {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.RoleAdmin {
		return shared.FilterByID(id, model.FieldID, model.TableName)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return userFilter(id, user)
}

func userFilter(id, user string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldUserID,
				Value:    user,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}
