package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/analytics/model"
	reservationModel "hotel/internal/domains/reservation/model"
	gRepo "hotel/shared/repository"
)

const (
	monthlySummaryQuery = `SELECT to_char(reservations.start_date, 'YYYY-MM') AS month, COUNT(*) AS total
FROM reservations
GROUP BY month
ORDER BY month ASC`

	categorySummaryQuery = `SELECT categories.name AS category, COUNT(reservations.id) AS total
FROM reservations
JOIN rooms ON rooms.id = reservations.room_id
JOIN categories ON categories.id = rooms.category_id
GROUP BY categories.name
ORDER BY total DESC, categories.name ASC`
)

type Analytics interface {
	MonthlySummary(ctx context.Context) ([]model.MonthlySummary, error)
	CategorySummary(ctx context.Context) ([]model.CategorySummary, error)
}

type repositoryImpl struct {
	gRepo.Repository[reservationModel.Reservation]
}

func New(db *postgres.Connection, otel otel.Otel) Analytics {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[reservationModel.Reservation](model.EntityName, reservationModel.TableName, reservationModel.FieldID, db, otel),
	}
}

func (r *repositoryImpl) MonthlySummary(ctx context.Context) ([]model.MonthlySummary, error) {
	summaries := []model.MonthlySummary{}
	if err := r.Select(ctx, &summaries, monthlySummaryQuery, map[string]any{}); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return summaries, nil
}

func (r *repositoryImpl) CategorySummary(ctx context.Context) ([]model.CategorySummary, error) {
	summaries := []model.CategorySummary{}
	if err := r.Select(ctx, &summaries, categorySummaryQuery, map[string]any{}); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return summaries, nil
}
