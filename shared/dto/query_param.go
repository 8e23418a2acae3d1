package dto

import (
	"hotel/shared/constant"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams is the pagination and ordering of a list endpoint. SortBy is
// matched against the repository's known columns before it reaches SQL.
type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// QueryParamsFromRequest reads page, limit, sort_by and sort_dir. Missing or
// non-positive page and limit take the defaults and limit is capped.
func QueryParamsFromRequest(request *http.Request) QueryParams {
	values := request.URL.Query()

	params := QueryParams{
		Page:   positiveInt(values, constant.RequestParamPage, constant.DefaultValuePage),
		Limit:  min(positiveInt(values, constant.RequestParamLimit, constant.DefaultValueLimit), constant.MaxValueLimit),
		SortBy: values.Get(constant.RequestParamSortBy),
	}

	if dir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); dir == SortDirAsc || dir == SortDirDesc {
		params.SortDir = dir
	}

	return params
}

// Offset is the number of rows skipped before the current page.
func (q QueryParams) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}

func positiveInt(values url.Values, key string, fallback int) int {
	value, err := strconv.Atoi(values.Get(key))
	if err != nil || value <= 0 {
		return fallback
	}

	return value
}
