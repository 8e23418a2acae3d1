package timezone

import (
	"errors"
	"hotel/config"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrInvalidTimestamp = errors.New("timestamp must be RFC 3339 or YYYY-MM-DD")

var location = sync.OnceValue(func() *time.Location {
	return load(config.Get().App.Timezone)
})

func load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Unknown timezone, falling back to UTC")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")

	return loc
}

func Location() *time.Location {
	return location()
}

func Now() time.Time {
	return time.Now().In(location())
}

func Format(t time.Time, layout string) string {
	return t.In(location()).Format(layout)
}

// Parse reads value in the application zone when the layout has no offset.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, location())
}

// ParseTimestamp accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date.
// Bare dates resolve to midnight in the application timezone.
func ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	t, err := Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, ErrInvalidTimestamp
	}

	return t, nil
}
