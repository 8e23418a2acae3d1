package reservation

import (
	"hotel/infras/otel"
	availability "hotel/internal/domains/availability/service"
	"hotel/internal/domains/reservation/model/dto"
	"hotel/internal/domains/reservation/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service      service.Reservation
	availability availability.Availability
	otel         otel.Otel
}

func New(service service.Reservation, availability availability.Availability, otel otel.Otel) Handler {
	return Handler{
		service:      service,
		availability: availability,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Get("/available", handler.GetAvailableRooms)
		routerGroup.Get("/me", handler.GetMyReservations)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Put("/{id}", handler.UpdateReservation)
		routerGroup.Put("/{id}/dates", handler.RescheduleReservation)
		routerGroup.Delete("/{id}", handler.DeleteReservation)
	})
}

// GetAvailableRooms lists active rooms free for the whole stay.
// @Summary Get available rooms
// @Description A room is available when no reservation overlaps [start, end). Dates accept RFC 3339 or YYYY-MM-DD.
// @Tags Reservation
// @Produce json
// @Param start query string true "Check-in"
// @Param end query string true "Check-out"
// @Success 200 {object} response.Data[[]roomDto.RoomResponse] "Available rooms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/available [get]
func (handler *Handler) GetAvailableRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableRooms")
	defer scope.End()

	start := request.URL.Query().Get(constant.RequestParamStart)
	end := request.URL.Query().Get(constant.RequestParamEnd)

	if start == constant.Empty || end == constant.Empty {
		err := failure.BadRequestFromString("start and end are required")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	window, err := dto.ParseWindow(start, end)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	rooms, err := handler.availability.FindAvailable(ctx, window)
	if err != nil {
		response.Fail(writer, scope, err, "failed to get available rooms")

		return
	}

	response.WithJSON(writer, http.StatusOK, rooms)
}

// CreateReservation books a room for a stay.
// @Summary Create a reservation
// @Description Books the room for [start_date, end_date). Overlapping an existing stay on the same room returns 409.
// @Tags Reservation
// @Accept json
// @Produce json
// @Param request body dto.CreateReservationRequest true "Create Reservation Request"
// @Success 201 {object} response.Data[gDto.IDResponse] "Reservation created successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [post]
// @Security BearerAuth
func (handler *Handler) CreateReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		response.Fail(writer, scope, err, "failed to validate request body")

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		response.Fail(writer, scope, err, "failed to create reservation")

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Reservation created successfully by user " + user)

	response.WithCreated(writer, id)
}

// GetReservations lists every reservation.
// @Summary Get all reservations
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetReservationsResponse] "List of reservations"
// @Failure 500 {object} response.Error
// @Router /v1/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetReservations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams := gDto.QueryParamsFromRequest(request)

	reservations, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		response.Fail(writer, scope, err, "failed to get reservations")

		return
	}

	response.WithJSON(writer, http.StatusOK, reservations)
}

// GetMyReservations lists the caller's reservations.
// @Summary Get own reservations
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetReservationsResponse] "Own reservations"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyReservations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReservations")
	defer scope.End()

	queryParams := gDto.QueryParamsFromRequest(request)

	reservations, err := handler.service.GetMine(ctx, queryParams)
	if err != nil {
		response.Fail(writer, scope, err, "failed to get own reservations")

		return
	}

	response.WithJSON(writer, http.StatusOK, reservations)
}

// GetReservationByID retrieves a reservation by its ID.
// @Summary Get a reservation by ID
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReservationResponse] "Reservation details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservationByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.PathID(id, "reservation"); err != nil {
		response.Fail(writer, scope, err, "invalid reservation id")

		return
	}

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		response.Fail(writer, scope, err, "failed to get reservation by ID")

		return
	}

	response.WithJSON(writer, http.StatusOK, reservation)
}

// UpdateReservation changes room, dates or guest count of a reservation.
// @Summary Update a reservation
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.UpdateReservationRequest true "Update Reservation Request"
// @Success 200 {object} response.Message "Reservation updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservation")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.PathID(id, "reservation"); err != nil {
		response.Fail(writer, scope, err, "invalid reservation id")

		return
	}
	req := dto.UpdateReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		response.Fail(writer, scope, err, "failed to validate request body")

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		response.Fail(writer, scope, err, "failed to update reservation")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Reservation updated successfully")
}

// RescheduleReservation moves the caller's reservation to new dates.
// @Summary Reschedule own reservation
// @Tags Reservation
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body dto.RescheduleReservationRequest true "Reschedule Reservation Request"
// @Success 200 {object} response.Message "Reservation rescheduled successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id}/dates [put]
// @Security BearerAuth
func (handler *Handler) RescheduleReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RescheduleReservation")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.PathID(id, "reservation"); err != nil {
		response.Fail(writer, scope, err, "invalid reservation id")

		return
	}
	req := dto.RescheduleReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		response.Fail(writer, scope, err, "failed to validate request body")

		return
	}

	if err := handler.service.Reschedule(ctx, req, id); err != nil {
		response.Fail(writer, scope, err, "failed to reschedule reservation")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Reservation rescheduled successfully")
}

// DeleteReservation cancels a reservation and frees its dates.
// @Summary Delete a reservation
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Message "Reservation deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReservation")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := validator.PathID(id, "reservation"); err != nil {
		response.Fail(writer, scope, err, "invalid reservation id")

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		response.Fail(writer, scope, err, "failed to delete reservation")

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Reservation deleted successfully by user " + user)

	response.WithMessage(writer, http.StatusOK, "Reservation deleted successfully")
}
