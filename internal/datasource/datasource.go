package datasource

import (
	"time"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-monthly/internal/types"
)

// DataSource loads daily OHLCV history from a columnar file.
//
// All range bounds are half-open: start is inclusive, end is exclusive.
// This matches the calendar-month windows the rest of the tool works in,
// so a month can be fetched as [window.Start(), window.End()) with no
// end-of-month arithmetic at the call site.
type DataSource interface {
	// Initialize points the data source at a CSV or Parquet file.
	Initialize(path string) error
	// ReadAll reads the daily bars in date order and yields them to the
	// caller, optionally bounded to [start, end).
	ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.DailyBar, error) bool)
	// GetRange reads the bars with start <= date < end, in date order.
	GetRange(start time.Time, end time.Time) ([]types.DailyBar, error)
	// Count returns the number of bars, optionally bounded to [start, end).
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// Close closes the data source and releases any resources.
	Close() error
}
