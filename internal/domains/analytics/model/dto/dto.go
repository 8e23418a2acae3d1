package dto

import "hotel/internal/domains/analytics/model"

type MonthlySummaryResponse struct {
	Month string `json:"month"`
	Total int    `json:"total"`
}

type CategorySummaryResponse struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
}

func MonthlyFromModels(models []model.MonthlySummary) []MonthlySummaryResponse {
	res := make([]MonthlySummaryResponse, len(models))
	for i, mod := range models {
		res[i] = MonthlySummaryResponse{Month: mod.Month, Total: mod.Total}
	}

	return res
}

func CategoryFromModels(models []model.CategorySummary) []CategorySummaryResponse {
	res := make([]CategorySummaryResponse, len(models))
	for i, mod := range models {
		res[i] = CategorySummaryResponse{Category: mod.Category, Total: mod.Total}
	}

	return res
}
