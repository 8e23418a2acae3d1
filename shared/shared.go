package shared

import (
	"context"
	"fmt"
	"hash/fnv"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/timezone"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// ParseOptionalBool reads a query flag. Empty or unparsable values mean the
// flag was not given.
func ParseOptionalBool(value string) *bool {
	if value == "" {
		return nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Debug().Str("value", value).Msg("ignoring malformed boolean query flag")

		return nil
	}

	return &parsed
}

// TotalPages is the page count for total rows at limit per page, at least 1.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// UpdatedFields maps the non-zero db-tagged fields of an update request to
// their column names and stamps the modification audit columns. Pointer
// fields are dereferenced, so a *bool set to false is still written.
func UpdatedFields(data any, actor string) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(data))
	typ := val.Type()

	fields := make(map[string]any, val.NumField()+2)

	for index := range val.NumField() {
		column := typ.Field(index).Tag.Get("db")
		field := val.Field(index)

		if column == "" || column == "-" || field.IsZero() {
			continue
		}

		if field.Kind() == reflect.Pointer {
			field = field.Elem()
		}

		fields[column] = field.Interface()
	}

	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = actor

	return fields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins a prefix and its parts with colons.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), constant.Colon)
}

// BuildCacheKeyWithQuery derives a stable key from pagination params and a filter.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	parts := []string{
		"page", strconv.Itoa(params.Page),
		"limit", strconv.Itoa(params.Limit),
	}

	if params.SortBy != "" {
		parts = append(parts, "sort", params.SortBy, params.SortDir)
	}

	where, args := filter.GetWhereClause()
	if where != "" {
		names := make([]string, 0, len(args))
		for name := range args {
			names = append(names, name)
		}

		slices.Sort(names)

		hash := fnv.New64a()
		_, _ = hash.Write([]byte(where))

		for _, name := range names {
			_, _ = fmt.Fprintf(hash, "|%s=%v", name, args[name])
		}

		parts = append(parts, "filter", strconv.FormatUint(hash.Sum64(), 16))
	}

	return BuildCacheKey(prefix, parts...)
}

// InvalidateCaches removes every key starting with prefix.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) error {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")

		return fmt.Errorf("failed to invalidate caches (%s): %w", prefix, err)
	}

	return nil
}
