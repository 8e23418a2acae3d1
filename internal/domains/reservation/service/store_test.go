package service_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"hotel/internal/domains/reservation/model"
	"hotel/internal/domains/reservation/repository"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/interval"
)

// memStore keeps reservations in memory and applies the same overlap
// predicate as the SQL store. It does not emulate the exclusion constraint.
type memStore struct {
	mu           sync.Mutex
	reservations map[string]model.Reservation
}

var _ repository.Reservation = (*memStore)(nil)

func newMemStore(seed ...model.Reservation) *memStore {
	store := &memStore{reservations: map[string]model.Reservation{}}
	for _, reservation := range seed {
		store.reservations[reservation.ID] = reservation
	}

	return store
}

func (m *memStore) Insert(_ context.Context, reservation model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reservations[reservation.ID] = reservation

	return nil
}

func (m *memStore) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, args := filter.GetWhereClause()

	reservation, ok := m.reservations[stringArg(args, model.FieldID)]
	if !ok {
		return model.Reservation{}, nil
	}

	if user := stringArg(args, model.FieldUserID); user != constant.Empty && reservation.UserID != user {
		return model.Reservation{}, nil
	}

	return reservation, nil
}

func (m *memStore) Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error) {
	reservation, err := m.Get(ctx, filter)

	return reservation.ID != constant.Empty, err
}

func (m *memStore) Count(_ context.Context, _ gDto.FilterGroup) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.reservations), nil
}

func (m *memStore) Update(_ context.Context, req map[string]any, filter gDto.FilterGroup) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, args := filter.GetWhereClause()
	id := stringArg(args, model.FieldID)

	reservation, ok := m.reservations[id]
	if !ok {
		return nil
	}

	for field, value := range req {
		switch field {
		case model.FieldRoomID:
			reservation.RoomID, _ = value.(string)
		case model.FieldStartDate:
			reservation.StartDate, _ = value.(time.Time)
		case model.FieldEndDate:
			reservation.EndDate, _ = value.(time.Time)
		case model.FieldGuestCount:
			reservation.GuestCount, _ = value.(int)
		}
	}

	m.reservations[id] = reservation

	return nil
}

func (m *memStore) Delete(_ context.Context, filter gDto.FilterGroup) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, args := filter.GetWhereClause()
	delete(m.reservations, stringArg(args, model.FieldID))

	return nil
}

func (m *memStore) FindConflicting(_ context.Context, roomID string, window interval.Window, excludeID string, boundary interval.Boundary) (model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, reservation := range m.reservations {
		if reservation.RoomID != roomID || reservation.ID == excludeID {
			continue
		}

		if boundary.Overlaps(reservation.Window(), window) {
			return reservation, nil
		}
	}

	return model.Reservation{}, nil
}

// GetAllDetail pages through reservations ordered by id.
func (m *memStore) GetAllDetail(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup) ([]model.ReservationDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.reservations))
	for id := range m.reservations {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	start := min(params.Offset(), len(ids))
	end := min(start+params.Limit, len(ids))

	details := make([]model.ReservationDetail, 0, end-start)
	for _, id := range ids[start:end] {
		reservation := m.reservations[id]
		details = append(details, model.ReservationDetail{
			ID:         reservation.ID,
			UserID:     reservation.UserID,
			RoomID:     reservation.RoomID,
			StartDate:  reservation.StartDate,
			EndDate:    reservation.EndDate,
			GuestCount: reservation.GuestCount,
		})
	}

	return details, nil
}

func (m *memStore) DistinctRoomIDs(_ context.Context, window interval.Window) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := map[string]struct{}{}
	ids := []string{}

	for _, reservation := range m.reservations {
		if _, ok := seen[reservation.RoomID]; ok || !interval.Overlaps(reservation.Window(), window) {
			continue
		}

		seen[reservation.RoomID] = struct{}{}
		ids = append(ids, reservation.RoomID)
	}

	return ids, nil
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.reservations)
}

func (m *memStore) find(id string) model.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.reservations[id]
}

func stringArg(args map[string]any, name string) string {
	value, _ := args[name].(string)

	return value
}
