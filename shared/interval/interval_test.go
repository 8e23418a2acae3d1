package interval_test

import (
	"hotel/shared/interval"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func window(start, end int) interval.Window {
	return interval.Window{Start: day(start), End: day(end)}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        interval.Window
		b        interval.Window
		expected bool
	}{
		{name: "identical ranges", a: window(1, 5), b: window(1, 5), expected: true},
		{name: "b starts inside a", a: window(1, 5), b: window(3, 8), expected: true},
		{name: "b ends inside a", a: window(3, 8), b: window(1, 5), expected: true},
		{name: "a contains b", a: window(1, 10), b: window(3, 4), expected: true},
		{name: "b contains a", a: window(3, 4), b: window(1, 10), expected: true},
		{name: "touching end to start", a: window(1, 3), b: window(3, 5), expected: false},
		{name: "touching start to end", a: window(3, 5), b: window(1, 3), expected: false},
		{name: "disjoint", a: window(1, 2), b: window(4, 5), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, interval.Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.expected, interval.Overlaps(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestBoundary_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		boundary interval.Boundary
		a        interval.Window
		b        interval.Window
		expected bool
	}{
		{name: "half open touching", boundary: interval.HalfOpen, a: window(1, 3), b: window(3, 5), expected: false},
		{name: "closed touching", boundary: interval.Closed, a: window(1, 3), b: window(3, 5), expected: true},
		{name: "closed disjoint", boundary: interval.Closed, a: window(1, 2), b: window(3, 5), expected: false},
		{name: "closed identical", boundary: interval.Closed, a: window(1, 2), b: window(1, 2), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.boundary.Overlaps(tt.a, tt.b))
		})
	}
}

func TestNew(t *testing.T) {
	_, err := interval.New(day(1), day(2))
	assert.NoError(t, err)

	_, err = interval.New(day(2), day(2))
	assert.ErrorIs(t, err, interval.ErrInvalidWindow)

	_, err = interval.New(day(3), day(2))
	assert.ErrorIs(t, err, interval.ErrInvalidWindow)
}

func TestParseBoundary(t *testing.T) {
	assert.Equal(t, interval.Closed, interval.ParseBoundary("closed"))
	assert.Equal(t, interval.Closed, interval.ParseBoundary(" Inclusive "))
	assert.Equal(t, interval.HalfOpen, interval.ParseBoundary("half_open"))
	assert.Equal(t, interval.HalfOpen, interval.ParseBoundary(""))
	assert.True(t, interval.Closed.Inclusive())
	assert.False(t, interval.HalfOpen.Inclusive())
}

func TestWindow_Equal(t *testing.T) {
	local := interval.Window{Start: day(1).In(time.FixedZone("WIB", 7*3600)), End: day(3)}

	assert.True(t, window(1, 3).Equal(local))
	assert.False(t, window(1, 3).Equal(window(1, 4)))
}
