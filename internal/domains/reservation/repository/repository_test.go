package repository_test

import (
	"hotel/internal/domains/reservation/repository"
	"hotel/shared/interval"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func window() interval.Window {
	return interval.Window{
		Start: time.Date(2024, time.June, 1, 14, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.June, 5, 12, 0, 0, 0, time.UTC),
	}
}

func TestConflictFilter_HalfOpen(t *testing.T) {
	filter := repository.ConflictFilter("r1", window(), "", interval.HalfOpen)

	where, args := filter.GetWhereClause()

	assert.Equal(t,
		"(reservations.room_id = :room_id AND reservations.start_date < :window_end AND reservations.end_date > :window_start)",
		where)
	assert.Equal(t, "r1", args["room_id"])
	assert.Equal(t, window().End, args["window_end"])
	assert.Equal(t, window().Start, args["window_start"])
	assert.NotContains(t, args, "exclude_id")
}

func TestConflictFilter_ClosedWithExclude(t *testing.T) {
	filter := repository.ConflictFilter("r1", window(), "res-1", interval.Closed)

	where, args := filter.GetWhereClause()

	assert.Equal(t,
		"(reservations.room_id = :room_id AND reservations.start_date <= :window_end AND reservations.end_date >= :window_start AND reservations.id != :exclude_id)",
		where)
	assert.Equal(t, "res-1", args["exclude_id"])
}

func TestOverlapFilters_Length(t *testing.T) {
	assert.Len(t, repository.OverlapFilters(window(), interval.HalfOpen), 2)
}
