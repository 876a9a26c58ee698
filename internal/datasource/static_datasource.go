package datasource

import (
	"sort"
	"time"

	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-monthly/internal/types"
	"github.com/rxtech-lab/argo-monthly/pkg/errors"
)

// StaticDataSource serves daily bars from an in-memory slice. It backs
// tests and embedding callers that already hold a series and do not need
// a database behind the DataSource interface.
type StaticDataSource struct {
	bars   []types.DailyBar
	closed bool
}

// NewStaticDataSource creates a StaticDataSource over a copy of bars,
// sorted by date ascending.
func NewStaticDataSource(bars []types.DailyBar) *StaticDataSource {
	sorted := make([]types.DailyBar, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	return &StaticDataSource{bars: sorted, closed: false}
}

// Initialize implements DataSource. The static source carries its bars
// from construction, so the path is ignored.
func (s *StaticDataSource) Initialize(path string) error {
	if s.closed {
		return errors.New(errors.ErrCodeDataSourceUnavailable, "data source is closed")
	}

	return nil
}

// ReadAll implements DataSource.
func (s *StaticDataSource) ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.DailyBar, error) bool) {
	return func(yield func(types.DailyBar, error) bool) {
		if s.closed {
			yield(types.DailyBar{}, errors.New(errors.ErrCodeDataSourceUnavailable, "data source is closed"))

			return
		}

		for _, bar := range s.bars {
			if start.IsSome() && bar.Time.Before(start.Unwrap()) {
				continue
			}
			// Bars are sorted, so the first bar at or past the end bound
			// finishes the scan.
			if end.IsSome() && !bar.Time.Before(end.Unwrap()) {
				return
			}

			if !yield(bar, nil) {
				return
			}
		}
	}
}

// GetRange implements DataSource. The end bound is exclusive.
func (s *StaticDataSource) GetRange(start time.Time, end time.Time) ([]types.DailyBar, error) {
	if s.closed {
		return nil, errors.New(errors.ErrCodeDataSourceUnavailable, "data source is closed")
	}

	// Bars are sorted, so both bounds fall out of a binary search.
	lo := sort.Search(len(s.bars), func(i int) bool {
		return !s.bars[i].Time.Before(start)
	})
	hi := sort.Search(len(s.bars), func(i int) bool {
		return !s.bars[i].Time.Before(end)
	})

	result := make([]types.DailyBar, hi-lo)
	copy(result, s.bars[lo:hi])

	return result, nil
}

// Count implements DataSource.
func (s *StaticDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	if s.closed {
		return 0, errors.New(errors.ErrCodeDataSourceUnavailable, "data source is closed")
	}

	count := 0

	for _, bar := range s.bars {
		if start.IsSome() && bar.Time.Before(start.Unwrap()) {
			continue
		}
		if end.IsSome() && !bar.Time.Before(end.Unwrap()) {
			break
		}
		count++
	}

	return count, nil
}

// Close implements DataSource.
func (s *StaticDataSource) Close() error {
	s.closed = true
	s.bars = nil

	return nil
}
