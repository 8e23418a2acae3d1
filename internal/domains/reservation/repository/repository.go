package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/reservation/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/interval"
	gRepo "hotel/shared/repository"
)

const (
	argWindowStart = "window_start"
	argWindowEnd   = "window_end"
	argExcludeID   = "exclude_id"

	constraintUserFK = "reservations_user_id_fkey"
)

var (
	ErrOverlap      = errors.New("reservation overlaps an existing stay")
	ErrRoomNotFound = errors.New("room does not exist")
	ErrUserNotFound = errors.New("user does not exist")
	ErrInvalidStay  = errors.New("reservation violates a stay constraint")
)

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	FindConflicting(ctx context.Context, roomID string, window interval.Window, excludeID string, boundary interval.Boundary) (model.Reservation, error)
	GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.ReservationDetail, error)
	DistinctRoomIDs(ctx context.Context, window interval.Window) ([]string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	detail gRepo.Repository[model.ReservationDetail]
	otel   otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	repo := gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel)

	detail := gRepo.NewRepository[model.ReservationDetail](model.EntityName, model.TableName, model.FieldID, db, otel)
	detail.WithDefaultOrder(model.TableName + "." + constant.FieldCreatedAt + " DESC")

	return &repositoryImpl{
		Repository: repo,
		detail:     detail,
		otel:       otel,
	}
}

// Insert stores a reservation. The table's exclusion constraint surfaces as ErrOverlap.
func (r *repositoryImpl) Insert(ctx context.Context, reservation model.Reservation) error {
	return translate(r.Repository.Insert(ctx, reservation))
}

func (r *repositoryImpl) Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error {
	return translate(r.Repository.Update(ctx, req, filter))
}

// FindConflicting returns one reservation of roomID overlapping window under
// boundary, skipping excludeID. A zero value means the window is free.
func (r *repositoryImpl) FindConflicting(ctx context.Context, roomID string, window interval.Window, excludeID string, boundary interval.Boundary) (model.Reservation, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.FindConflicting")
	defer scope.End()

	scope.SetAttributes(map[string]any{
		"room_id":  roomID,
		"boundary": boundary.String(),
	})

	return r.Get(ctx, ConflictFilter(roomID, window, excludeID, boundary)) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.ReservationDetail, error) {
	return r.detail.GetAll(ctx, params, filter) //nolint:wrapcheck
}

// DistinctRoomIDs lists every room holding a reservation that overlaps window.
func (r *repositoryImpl) DistinctRoomIDs(ctx context.Context, window interval.Window) ([]string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.DistinctRoomIDs")
	defer scope.End()

	filter := gDto.FilterGroup{
		Filters:  OverlapFilters(window, interval.HalfOpen),
		Operator: gDto.FilterGroupOperatorAnd,
	}

	where, args := r.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT DISTINCT %s.%s FROM %s %s", model.TableName, model.FieldRoomID, model.TableName, where)

	roomIDs := []string{}
	if err := r.Select(ctx, &roomIDs, query, args); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return roomIDs, nil
}

// OverlapFilters renders the interval predicate as column comparisons:
// start_date < window.end AND end_date > window.start, non-strict when the
// boundary is inclusive.
func OverlapFilters(window interval.Window, boundary interval.Boundary) []any {
	startOperator, endOperator := gDto.FilterOperatorLess, gDto.FilterOperatorGreater
	if boundary.Inclusive() {
		startOperator, endOperator = gDto.FilterOperatorLessEq, gDto.FilterOperatorGreaterEq
	}

	return []any{
		gDto.Filter{
			ArgName:  argWindowEnd,
			Field:    model.FieldStartDate,
			Value:    window.End,
			Operator: startOperator,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  argWindowStart,
			Field:    model.FieldEndDate,
			Value:    window.Start,
			Operator: endOperator,
			Table:    model.TableName,
		},
	}
}

// ConflictFilter selects reservations of roomID that overlap window, other than excludeID.
func ConflictFilter(roomID string, window interval.Window, excludeID string, boundary interval.Boundary) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldRoomID,
			Value:    roomID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		},
	}

	filters = append(filters, OverlapFilters(window, boundary)...)

	if excludeID != constant.Empty {
		filters = append(filters, gDto.Filter{
			ArgName:  argExcludeID,
			Field:    model.FieldID,
			Value:    excludeID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{
		Filters:  filters,
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func translate(err error) error {
	if err == nil {
		return nil
	}

	switch postgres.ErrorCode(err) {
	case constant.PqErrorCodeExclusion:
		return fmt.Errorf("%w: %w", ErrOverlap, err)
	case constant.PqErrorCodeFkViolation:
		if postgres.Constraint(err) == constraintUserFK {
			return fmt.Errorf("%w: %w", ErrUserNotFound, err)
		}

		return fmt.Errorf("%w: %w", ErrRoomNotFound, err)
	case constant.PqErrorCodeCheckViolation:
		return fmt.Errorf("%w: %w", ErrInvalidStay, err)
	default:
		return err
	}
}
