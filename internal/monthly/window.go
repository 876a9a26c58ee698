// Package monthly slices daily OHLCV history into calendar-month windows
// and reduces each window to per-field statistics. All functions are pure:
// they never modify their inputs and perform no I/O.
package monthly

import (
	"fmt"
	"time"

	"github.com/rxtech-lab/argo-monthly/pkg/errors"
)

// Window is one calendar month, interpreted as the half-open interval
// [Start, End) in UTC. End is always derived by calendar arithmetic, so
// leap years and December rollover need no special handling.
type Window struct {
	Year  int
	Month time.Month
}

// NewWindow creates a Window for the given year and month.
// Returns an ErrCodeInvalidMonth error when month is outside 1..12.
// The year is not constrained.
func NewWindow(year int, month time.Month) (Window, error) {
	if month < time.January || month > time.December {
		return Window{}, errors.Newf(errors.ErrCodeInvalidMonth, "month must be between 1 and 12, got %d", int(month))
	}

	return Window{Year: year, Month: month}, nil
}

// ParseWindow parses a month in "2006-01" form into a Window.
func ParseWindow(s string) (Window, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Window{}, errors.Wrapf(errors.ErrCodeInvalidWindow, err, "invalid month %q, expected YYYY-MM", s)
	}

	return Window{Year: t.Year(), Month: t.Month()}, nil
}

// WindowOf returns the window containing the given instant.
func WindowOf(t time.Time) Window {
	u := t.UTC()

	return Window{Year: u.Year(), Month: u.Month()}
}

// Start returns the first instant of the month, midnight UTC on day 1.
func (w Window) Start() time.Time {
	return time.Date(w.Year, w.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first instant of the following month. AddDate carries
// the calendar arithmetic, so February lengths and December-to-January
// rollover fall out for free.
func (w Window) End() time.Time {
	return w.Start().AddDate(0, 1, 0)
}

// Contains reports whether t falls inside the half-open interval [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start()) && t.Before(w.End())
}

// Next returns the window for the following calendar month.
func (w Window) Next() Window {
	start := w.End()

	return Window{Year: start.Year(), Month: start.Month()}
}

// String renders the window as "2006-01".
func (w Window) String() string {
	return fmt.Sprintf("%04d-%02d", w.Year, int(w.Month))
}

// Label renders the window for human-readable report lines, e.g. "February 1992".
func (w Window) Label() string {
	return fmt.Sprintf("%s %d", w.Month.String(), w.Year)
}
