package analytics

import (
	"hotel/infras/otel"
	"hotel/internal/domains/analytics/service"
	"hotel/shared/constant"
	"hotel/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Analytics
	otel    otel.Otel
}

func New(service service.Analytics, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/analytics", func(routerGroup chi.Router) {
		routerGroup.Get("/monthly-summary", handler.GetMonthlySummary)
		routerGroup.Get("/category-summary", handler.GetCategorySummary)
	})
}

// GetMonthlySummary counts reservations per month of check-in.
// @Summary Monthly reservation summary
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Data[[]dto.MonthlySummaryResponse] "Monthly summary"
// @Failure 500 {object} response.Error
// @Router /v1/analytics/monthly-summary [get]
// @Security BearerAuth
func (handler *Handler) GetMonthlySummary(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMonthlySummary")
	defer scope.End()

	summary, err := handler.service.MonthlySummary(ctx)
	if err != nil {
		response.Fail(writer, scope, err, "failed to get monthly summary")

		return
	}

	response.WithJSON(writer, http.StatusOK, summary)
}

// GetCategorySummary counts reservations per room category.
// @Summary Category reservation summary
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Data[[]dto.CategorySummaryResponse] "Category summary"
// @Failure 500 {object} response.Error
// @Router /v1/analytics/category-summary [get]
// @Security BearerAuth
func (handler *Handler) GetCategorySummary(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCategorySummary")
	defer scope.End()

	summary, err := handler.service.CategorySummary(ctx)
	if err != nil {
		response.Fail(writer, scope, err, "failed to get category summary")

		return
	}

	response.WithJSON(writer, http.StatusOK, summary)
}
