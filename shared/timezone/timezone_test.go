package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	assert.Equal(t, time.UTC, load(""))
	assert.Equal(t, time.UTC, load("Mars/Olympus_Mons"))
	assert.Equal(t, "Asia/Jakarta", load("Asia/Jakarta").String())
}

func TestNowAndFormat(t *testing.T) {
	assert.Equal(t, Location(), Now().Location())

	moment := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, moment.In(Location()).Format(time.RFC3339), Format(moment, time.RFC3339))
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "rfc3339 keeps its offset",
			value: "2025-03-01T14:00:00Z",
			want:  time.Date(2025, time.March, 1, 14, 0, 0, 0, time.UTC),
		},
		{
			name:  "bare date resolves in app timezone",
			value: "2025-03-01",
			want:  time.Date(2025, time.March, 1, 0, 0, 0, 0, Location()),
		},
		{name: "garbage", value: "next tuesday", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimestamp)

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "expected %v, got %v", tt.want, got)
		})
	}
}
