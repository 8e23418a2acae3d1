package dto_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotel/internal/domains/reservation/model"
	"hotel/internal/domains/reservation/model/dto"
	"hotel/shared/failure"
)

func TestParseWindow(t *testing.T) {
	window, err := dto.ParseWindow("2024-06-01T14:00:00Z", "2024-06-03T11:00:00Z")

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 1, 14, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2024, time.June, 3, 11, 0, 0, 0, time.UTC), window.End)

	_, err = dto.ParseWindow("2024-06-03T00:00:00Z", "2024-06-01T00:00:00Z")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	_, err = dto.ParseWindow("yesterday", "2024-06-01T00:00:00Z")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	_, err = dto.ParseWindow("2024-06-01", "2024-06-02")
	assert.NoError(t, err)
}

func TestUpdateReservationRequest_Merge(t *testing.T) {
	current := model.Reservation{
		ID:         "res-1",
		RoomID:     "r1",
		StartDate:  time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC),
		GuestCount: 2,
	}

	guests := 4
	req := dto.UpdateReservationRequest{EndDate: "2024-06-05T00:00:00Z", GuestCount: &guests}

	assert.False(t, req.Empty())

	merged, err := req.Merge(current)

	assert.NoError(t, err)
	assert.Equal(t, "r1", merged.RoomID)
	assert.Equal(t, current.StartDate, merged.StartDate)
	assert.Equal(t, time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC), merged.EndDate)
	assert.Equal(t, 4, merged.GuestCount)
	assert.Equal(t, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), current.EndDate)

	_, err = (&dto.UpdateReservationRequest{StartDate: "2024-06-04T00:00:00Z"}).Merge(current)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	assert.True(t, (&dto.UpdateReservationRequest{}).Empty())
}

func TestNewEvent(t *testing.T) {
	reservation := model.Reservation{
		ID:         "res-1",
		UserID:     "u1",
		RoomID:     "r1",
		StartDate:  time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC),
		GuestCount: 2,
	}

	event := dto.NewEvent(dto.EventRescheduled, reservation, "u1")

	assert.Equal(t, "reservation.rescheduled", event.Type)
	assert.Equal(t, "res-1", event.ReservationID)
	assert.Equal(t, "2024-06-03T00:00:00Z", event.EndDate)
	assert.NotEmpty(t, event.OccurredAt)
}

func TestGetReservationsResponse_FromModels(t *testing.T) {
	var res dto.GetReservationsResponse

	res.FromModels([]model.ReservationDetail{{ID: "res-1", RoomID: "r1", RoomNumber: "101", RoomFloor: 1, CategoryName: "Suite"}}, 11, 10)

	assert.Equal(t, 2, res.TotalPage)
	assert.Equal(t, "r1", res.Reservations[0].Room.ID)
	assert.Equal(t, 1, res.Reservations[0].Room.Floor)
	assert.Equal(t, "Suite", res.Reservations[0].Category.Name)
}
