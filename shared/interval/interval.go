// Package interval holds the date-range overlap predicate used by the booking
// write path, the availability engine and the reservation store.
//
// Two stays on the same room conflict when their windows overlap. The system-wide
// semantics are half-open: a stay ending on a given instant and another starting
// on that same instant do not overlap, so same-day turnover is allowed.
package interval

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidWindow = errors.New("start date must be before end date")

// Window is a stay on the timeline, Start inclusive and End exclusive.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func New(start, end time.Time) (Window, error) {
	w := Window{Start: start, End: end}
	if !w.Valid() {
		return w, ErrInvalidWindow
	}

	return w, nil
}

// Equal reports whether both windows cover the same instants, regardless of
// location.
func (w Window) Equal(other Window) bool {
	return w.Start.Equal(other.Start) && w.End.Equal(other.End)
}

// Valid reports whether Start is strictly before End.
func (w Window) Valid() bool {
	return w.Start.Before(w.End)
}

// Boundary selects how touching endpoints are compared.
type Boundary int

const (
	HalfOpen Boundary = iota
	Closed
)

func (b Boundary) String() string {
	if b == Closed {
		return "closed"
	}

	return "half_open"
}

// Inclusive reports whether endpoint equality counts as overlap.
// Stores use it to pick between strict and non-strict comparison operators.
func (b Boundary) Inclusive() bool {
	return b == Closed
}

// Overlaps compares a and b under the receiver's boundary semantics.
func (b Boundary) Overlaps(a, other Window) bool {
	if b == Closed {
		return !a.Start.After(other.End) && !a.End.Before(other.Start)
	}

	return a.Start.Before(other.End) && a.End.After(other.Start)
}

// Overlaps is the half-open predicate: a.start < b.end AND a.end > b.start.
func Overlaps(a, b Window) bool {
	return HalfOpen.Overlaps(a, b)
}

// ParseBoundary accepts "closed"/"inclusive" and "half_open"/"half-open"/"exclusive".
// Anything else falls back to HalfOpen.
func ParseBoundary(value string) Boundary {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "closed", "inclusive":
		return Closed
	default:
		return HalfOpen
	}
}
