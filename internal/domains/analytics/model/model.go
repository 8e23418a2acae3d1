package model

const EntityName = "analytics"

// MonthlySummary counts reservations by the month their stay starts.
type MonthlySummary struct {
	Month string `db:"month"`
	Total int    `db:"total"`
}

// CategorySummary counts reservations per room category.
type CategorySummary struct {
	Category string `db:"category"`
	Total    int    `db:"total"`
}
