package monthly

import (
	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-monthly/internal/types"
)

// SelectMonth returns the bars of series that fall inside the window,
// preserving their relative order. The input is never modified and is
// not assumed to be sorted. An empty result is not an error.
func SelectMonth(series []types.DailyBar, w Window) []types.DailyBar {
	var selected []types.DailyBar
	for _, bar := range series {
		if w.Contains(bar.Time) {
			selected = append(selected, bar)
		}
	}

	return selected
}

// Mean computes the arithmetic mean of one field across the series.
// An empty series yields None rather than an error. The field is checked
// up front, so an unknown field is reported even when there is nothing
// to average. NaN values in the input propagate into the result.
func Mean(series []types.DailyBar, field types.Field) (optional.Option[float64], error) {
	if err := field.Validate(); err != nil {
		return optional.None[float64](), err
	}

	if len(series) == 0 {
		return optional.None[float64](), nil
	}

	sum := 0.0
	for _, bar := range series {
		value, err := bar.Value(field)
		if err != nil {
			return optional.None[float64](), err
		}
		sum += value
	}

	return optional.Some(sum / float64(len(series))), nil
}
