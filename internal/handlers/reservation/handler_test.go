package reservation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	availabilityMocks "hotel/internal/domains/availability/mocks"
	"hotel/internal/domains/reservation/model/dto"
	reservationMocks "hotel/internal/domains/reservation/service/mocks"
	roomDto "hotel/internal/domains/room/model/dto"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/interval"
)

const (
	roomID        = "7f1c2b1e-4d55-4a8e-9b3b-2f6f0e8f9a10"
	reservationID = "3b9e8a47-1c2d-4e5f-8a9b-0c1d2e3f4a5b"
)

type fixture struct {
	service      *reservationMocks.MockReservation
	availability *availabilityMocks.MockAvailability
	router       chi.Router
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		service:      reservationMocks.NewMockReservation(ctrl),
		availability: availabilityMocks.NewMockAvailability(ctrl),
		router:       chi.NewRouter(),
	}

	handler := New(f.service, f.availability, mocks.NewOtel())
	handler.Router(f.router)

	return f
}

func (f fixture) do(method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()

	f.router.ServeHTTP(recorder, request)

	return recorder
}

func TestGetAvailableRooms(t *testing.T) {
	t.Run("missing end date", func(t *testing.T) {
		f := newFixture(t)

		recorder := f.do(http.MethodGet, "/reservations/available?start=2026-06-01T14:00:00Z", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "start and end are required")
	})

	t.Run("end before start", func(t *testing.T) {
		f := newFixture(t)

		recorder := f.do(http.MethodGet, "/reservations/available?start=2026-06-05T00:00:00Z&end=2026-06-01T00:00:00Z", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("malformed date", func(t *testing.T) {
		f := newFixture(t)

		recorder := f.do(http.MethodGet, "/reservations/available?start=tomorrow&end=2026-06-01T00:00:00Z", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("lists free rooms", func(t *testing.T) {
		f := newFixture(t)

		want := interval.Window{
			Start: time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 6, 5, 12, 0, 0, 0, time.UTC),
		}

		f.availability.EXPECT().
			FindAvailable(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, window interval.Window) ([]roomDto.RoomResponse, error) {
				assert.True(t, want.Start.Equal(window.Start))
				assert.True(t, want.End.Equal(window.End))

				return []roomDto.RoomResponse{{ID: roomID, RoomNumber: "101"}}, nil
			})

		recorder := f.do(http.MethodGet, "/reservations/available?start=2026-06-01T14:00:00Z&end=2026-06-05T12:00:00Z", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"101"`)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)

		f.availability.EXPECT().FindAvailable(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

		recorder := f.do(http.MethodGet, "/reservations/available?start=2026-06-01T14:00:00Z&end=2026-06-05T12:00:00Z", "")

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.NotContains(t, recorder.Body.String(), "connection refused")
	})
}

func TestCreateReservation(t *testing.T) {
	body := `{"room_id":"` + roomID + `","start_date":"2026-06-01T14:00:00Z","end_date":"2026-06-05T12:00:00Z","guest_count":2}`

	t.Run("created", func(t *testing.T) {
		f := newFixture(t)

		f.service.EXPECT().
			Create(gomock.Any(), dto.CreateReservationRequest{
				RoomID:     roomID,
				StartDate:  "2026-06-01T14:00:00Z",
				EndDate:    "2026-06-05T12:00:00Z",
				GuestCount: 2,
			}).
			Return("res-1", nil)

		recorder := f.do(http.MethodPost, "/reservations", body)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.JSONEq(t, `{"data":{"id":"res-1"}}`, recorder.Body.String())
	})

	t.Run("overlapping stay", func(t *testing.T) {
		f := newFixture(t)

		f.service.EXPECT().Create(gomock.Any(), gomock.Any()).Return("", failure.Conflict("room is already reserved for the requested dates"))

		recorder := f.do(http.MethodPost, "/reservations", body)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("zero guests", func(t *testing.T) {
		f := newFixture(t)

		recorder := f.do(http.MethodPost, "/reservations",
			`{"room_id":"`+roomID+`","start_date":"2026-06-01T14:00:00Z","end_date":"2026-06-05T12:00:00Z","guest_count":0}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newFixture(t)

		recorder := f.do(http.MethodPost, "/reservations", `{"room_id":`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGetReservations(t *testing.T) {
	f := newFixture(t)

	f.service.EXPECT().
		GetAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams) (dto.GetReservationsResponse, error) {
			assert.Equal(t, 2, params.Page)
			assert.Equal(t, 5, params.Limit)

			return dto.GetReservationsResponse{}, nil
		})

	recorder := f.do(http.MethodGet, "/reservations?page=2&limit=5", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetMyReservations(t *testing.T) {
	f := newFixture(t)

	f.service.EXPECT().GetMine(gomock.Any(), gomock.Any()).Return(dto.GetReservationsResponse{}, nil)

	recorder := f.do(http.MethodGet, "/reservations/me", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetReservationByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)

		f.service.EXPECT().Get(gomock.Any(), reservationID).Return(dto.ReservationResponse{ID: reservationID}, nil)

		recorder := f.do(http.MethodGet, "/reservations/"+reservationID, "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), reservationID)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.service.EXPECT().Get(gomock.Any(), reservationID).Return(dto.ReservationResponse{}, failure.NotFound("reservation not found"))

		recorder := f.do(http.MethodGet, "/reservations/"+reservationID, "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestUpdateReservation(t *testing.T) {
	f := newFixture(t)

	guests := 3
	f.service.EXPECT().
		Update(gomock.Any(), dto.UpdateReservationRequest{GuestCount: &guests}, reservationID).
		Return(nil)

	recorder := f.do(http.MethodPut, "/reservations/"+reservationID, `{"guest_count":3}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Reservation updated successfully")
}

func TestRescheduleReservation(t *testing.T) {
	f := newFixture(t)

	f.service.EXPECT().
		Reschedule(gomock.Any(), dto.RescheduleReservationRequest{
			StartDate: "2026-07-01T14:00:00Z",
			EndDate:   "2026-07-03T12:00:00Z",
		}, reservationID).
		Return(nil)

	recorder := f.do(http.MethodPut, "/reservations/"+reservationID+"/dates", `{"start_date":"2026-07-01T14:00:00Z","end_date":"2026-07-03T12:00:00Z"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestDeleteReservation(t *testing.T) {
	f := newFixture(t)

	f.service.EXPECT().Delete(gomock.Any(), reservationID).Return(nil)

	recorder := f.do(http.MethodDelete, "/reservations/"+reservationID, "")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestMalformedReservationID(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{name: "get", method: http.MethodGet, target: "/reservations/not-a-uuid"},
		{name: "update", method: http.MethodPut, target: "/reservations/42", body: `{"guest_count":3}`},
		{
			name:   "reschedule",
			method: http.MethodPut,
			target: "/reservations/abc/dates",
			body:   `{"start_date":"2026-07-01T14:00:00Z","end_date":"2026-07-03T12:00:00Z"}`,
		},
		{name: "delete", method: http.MethodDelete, target: "/reservations/0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			recorder := f.do(tt.method, tt.target, tt.body)

			assert.Equal(t, http.StatusNotFound, recorder.Code)
			assert.JSONEq(t, `{"error":"reservation not found"}`, recorder.Body.String())
		})
	}
}
