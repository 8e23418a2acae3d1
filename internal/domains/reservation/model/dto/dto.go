package dto

import (
	"hotel/internal/domains/reservation/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/interval"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"time"

	"github.com/google/uuid"
)

const (
	EventCreated     = "reservation.created"
	EventUpdated     = "reservation.updated"
	EventRescheduled = "reservation.rescheduled"
	EventDeleted     = "reservation.deleted"
)

// ParseWindow turns two request timestamps into a stay window.
func ParseWindow(start, end string) (interval.Window, error) {
	startDate, err := timezone.ParseTimestamp(start)
	if err != nil {
		return interval.Window{}, failure.BadRequestFromString("start_date must be an RFC 3339 timestamp or YYYY-MM-DD date") // nolint:wrapcheck
	}

	endDate, err := timezone.ParseTimestamp(end)
	if err != nil {
		return interval.Window{}, failure.BadRequestFromString("end_date must be an RFC 3339 timestamp or YYYY-MM-DD date") // nolint:wrapcheck
	}

	window, err := interval.New(startDate, endDate)
	if err != nil {
		return window, failure.BadRequest(err) // nolint:wrapcheck
	}

	return window, nil
}

type CreateReservationRequest struct {
	RoomID     string `json:"room_id"     validate:"required,uuid"`
	StartDate  string `json:"start_date"  validate:"required,timestamp"`
	EndDate    string `json:"end_date"    validate:"required,timestamp"`
	GuestCount int    `json:"guest_count" validate:"required,min=1"`
}

func (c *CreateReservationRequest) Window() (interval.Window, error) {
	return ParseWindow(c.StartDate, c.EndDate)
}

func (c *CreateReservationRequest) ToModel(user string, window interval.Window) model.Reservation {
	now := timezone.Now()

	return model.Reservation{
		ID:         uuid.NewString(),
		UserID:     user,
		RoomID:     c.RoomID,
		StartDate:  window.Start,
		EndDate:    window.End,
		GuestCount: c.GuestCount,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateReservationRequest changes any subset of a reservation. Omitted fields keep their stored value.
type UpdateReservationRequest struct {
	RoomID     string `json:"room_id"     validate:"omitempty,uuid"`
	StartDate  string `json:"start_date"  validate:"omitempty,timestamp"`
	EndDate    string `json:"end_date"    validate:"omitempty,timestamp"`
	GuestCount *int   `json:"guest_count" validate:"omitempty,min=1"`
}

func (u *UpdateReservationRequest) Empty() bool {
	return u.RoomID == constant.Empty && u.StartDate == constant.Empty && u.EndDate == constant.Empty && u.GuestCount == nil
}

// Merge applies the request on top of current and returns the effective reservation.
func (u *UpdateReservationRequest) Merge(current model.Reservation) (model.Reservation, error) {
	merged := current

	if u.RoomID != constant.Empty {
		merged.RoomID = u.RoomID
	}

	if u.GuestCount != nil {
		merged.GuestCount = *u.GuestCount
	}

	if u.StartDate != constant.Empty {
		startDate, err := timezone.ParseTimestamp(u.StartDate)
		if err != nil {
			return merged, failure.BadRequestFromString("start_date must be an RFC 3339 timestamp or YYYY-MM-DD date") // nolint:wrapcheck
		}

		merged.StartDate = startDate
	}

	if u.EndDate != constant.Empty {
		endDate, err := timezone.ParseTimestamp(u.EndDate)
		if err != nil {
			return merged, failure.BadRequestFromString("end_date must be an RFC 3339 timestamp or YYYY-MM-DD date") // nolint:wrapcheck
		}

		merged.EndDate = endDate
	}

	if !merged.Window().Valid() {
		return merged, failure.BadRequest(interval.ErrInvalidWindow) // nolint:wrapcheck
	}

	return merged, nil
}

type RescheduleReservationRequest struct {
	StartDate string `json:"start_date" validate:"required,timestamp"`
	EndDate   string `json:"end_date"   validate:"required,timestamp"`
}

func (r *RescheduleReservationRequest) Window() (interval.Window, error) {
	return ParseWindow(r.StartDate, r.EndDate)
}

type ReservationResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	RoomID     string `json:"room_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	GuestCount int    `json:"guest_count"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.RoomID = model.RoomID
	r.StartDate = timezone.Format(model.StartDate, constant.DateFormat)
	r.EndDate = timezone.Format(model.EndDate, constant.DateFormat)
	r.GuestCount = model.GuestCount
	r.Metadata.FromModel(model.Metadata)
}

type RoomSummary struct {
	ID         string `json:"id"`
	RoomNumber string `json:"room_number"`
	Floor      int    `json:"floor"`
}

type CategorySummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image string  `json:"image"`
	Price float64 `json:"price"`
}

type ReservationDetailResponse struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	GuestCount int             `json:"guest_count"`
	Room       RoomSummary     `json:"room"`
	Category   CategorySummary `json:"category"`
	gDto.Metadata
}

func (r *ReservationDetailResponse) FromModel(model model.ReservationDetail) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.StartDate = timezone.Format(model.StartDate, constant.DateFormat)
	r.EndDate = timezone.Format(model.EndDate, constant.DateFormat)
	r.GuestCount = model.GuestCount
	r.Room = RoomSummary{
		ID:         model.RoomID,
		RoomNumber: model.RoomNumber,
		Floor:      model.RoomFloor,
	}
	r.Category = CategorySummary{
		ID:    model.CategoryID,
		Name:  model.CategoryName,
		Image: model.CategoryImage,
		Price: model.CategoryPrice,
	}
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationDetailResponse `json:"reservations"`
	TotalPage    int                         `json:"total_page"`
	TotalData    int                         `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.ReservationDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.TotalPages(totalData, limit)

	r.Reservations = make([]ReservationDetailResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

// Event is the payload published for every committed reservation write.
type Event struct {
	Type          string `json:"type"`
	ReservationID string `json:"reservation_id"`
	UserID        string `json:"user_id"`
	RoomID        string `json:"room_id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	GuestCount    int    `json:"guest_count"`
	Actor         string `json:"actor"`
	OccurredAt    string `json:"occurred_at"`
}

func NewEvent(eventType string, reservation model.Reservation, actor string) Event {
	return Event{
		Type:          eventType,
		ReservationID: reservation.ID,
		UserID:        reservation.UserID,
		RoomID:        reservation.RoomID,
		StartDate:     reservation.StartDate.UTC().Format(time.RFC3339),
		EndDate:       reservation.EndDate.UTC().Format(time.RFC3339),
		GuestCount:    reservation.GuestCount,
		Actor:         actor,
		OccurredAt:    timezone.Now().UTC().Format(time.RFC3339),
	}
}
