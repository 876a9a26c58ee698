package monthly

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"golang.org/x/sync/errgroup"

	"github.com/rxtech-lab/argo-monthly/internal/types"
	"github.com/rxtech-lab/argo-monthly/pkg/errors"
)

// Request names one (year, month, field) triple of a report.
type Request struct {
	Year  int
	Month time.Month
	Field types.Field
}

// Window returns the month window the request addresses.
// Returns an ErrCodeInvalidMonth error when the month is outside 1..12.
func (r Request) Window() (Window, error) {
	return NewWindow(r.Year, r.Month)
}

// Validate checks the month and the field of the request.
func (r Request) Validate() error {
	if _, err := NewWindow(r.Year, r.Month); err != nil {
		return err
	}

	return r.Field.Validate()
}

// Row is the outcome of one request: the bars of the month and the mean
// of the requested field. Mean is None when the month holds no bars.
type Row struct {
	Request Request
	Window  Window
	Bars    []types.DailyBar
	Mean    optional.Option[float64]
}

// Report computes one row per request, in request order. Requests are
// taken exactly as given: duplicates run twice, and months outside the
// data produce empty rows. The first invalid request aborts the whole
// run with a RequestError naming the offending triple.
func Report(series []types.DailyBar, requests []Request) ([]Row, error) {
	rows := make([]Row, len(requests))
	for i, req := range requests {
		row, err := compute(series, req)
		if err != nil {
			return nil, errors.NewRequestError(i, req.Year, int(req.Month), string(req.Field), err)
		}
		rows[i] = row
	}

	return rows, nil
}

// ReportParallel computes the same rows as Report, fanning requests out
// across at most workers goroutines. Rows keep request order regardless
// of completion order, and the first failure cancels the remaining work.
func ReportParallel(ctx context.Context, series []types.DailyBar, requests []Request, workers int) ([]Row, error) {
	if workers <= 1 || len(requests) <= 1 {
		return Report(series, requests)
	}

	rows := make([]Row, len(requests))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, req := range requests {
		group.Go(func() error {
			select {
			case <-ctx.Done():
				return errors.Wrap(errors.ErrCodeReportFailed, "report canceled", ctx.Err())
			default:
			}

			row, err := compute(series, req)
			if err != nil {
				return errors.NewRequestError(i, req.Year, int(req.Month), string(req.Field), err)
			}
			rows[i] = row

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return rows, nil
}

func compute(series []types.DailyBar, req Request) (Row, error) {
	window, err := req.Window()
	if err != nil {
		return Row{}, err
	}

	bars := SelectMonth(series, window)

	mean, err := Mean(bars, req.Field)
	if err != nil {
		return Row{}, err
	}

	return Row{Request: req, Window: window, Bars: bars, Mean: mean}, nil
}

// RequestsCovering generates one request per calendar month between the
// earliest and latest bar of the series, crossed with the given fields.
// Months ascend chronologically; fields keep their given order within
// each month. An empty series or field list yields nil.
func RequestsCovering(series []types.DailyBar, fields []types.Field) []Request {
	if len(series) == 0 || len(fields) == 0 {
		return nil
	}

	minTime, maxTime := series[0].Time, series[0].Time
	for _, bar := range series[1:] {
		if bar.Time.Before(minTime) {
			minTime = bar.Time
		}
		if bar.Time.After(maxTime) {
			maxTime = bar.Time
		}
	}

	last := WindowOf(maxTime)
	var requests []Request
	for w := WindowOf(minTime); !w.Start().After(last.Start()); w = w.Next() {
		for _, field := range fields {
			requests = append(requests, Request{Year: w.Year, Month: w.Month, Field: field})
		}
	}

	return requests
}
