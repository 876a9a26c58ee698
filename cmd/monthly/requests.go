package main

import (
	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-monthly/internal/config"
	"github.com/rxtech-lab/argo-monthly/internal/monthly"
	"github.com/rxtech-lab/argo-monthly/internal/types"
)

// buildRequests turns the loaded series and the run config into the
// report request list. An explicit month list wins; otherwise every
// month the series covers is requested, clipped by the optional
// start/end bounds. Fields cross every month in config order.
func buildRequests(series []types.DailyBar, cfg *config.Config) ([]monthly.Request, error) {
	fields, err := cfg.ParsedFields()
	if err != nil {
		return nil, err
	}

	months, err := cfg.ParsedMonths()
	if err != nil {
		return nil, err
	}

	if len(months) > 0 {
		requests := make([]monthly.Request, 0, len(months)*len(fields))
		for _, w := range months {
			for _, field := range fields {
				requests = append(requests, monthly.Request{Year: w.Year, Month: w.Month, Field: field})
			}
		}

		return requests, nil
	}

	start, end, err := cfg.Bounds()
	if err != nil {
		return nil, err
	}

	return clipRequests(monthly.RequestsCovering(series, fields), start, end), nil
}

// clipRequests drops requests outside the optional [start, end] window range.
func clipRequests(requests []monthly.Request, start, end optional.Option[monthly.Window]) []monthly.Request {
	if start.IsNone() && end.IsNone() {
		return requests
	}

	var clipped []monthly.Request

	for _, req := range requests {
		w := monthly.Window{Year: req.Year, Month: req.Month}
		if start.IsSome() && w.Start().Before(start.Unwrap().Start()) {
			continue
		}

		if end.IsSome() && w.Start().After(end.Unwrap().Start()) {
			continue
		}

		clipped = append(clipped, req)
	}

	return clipped
}
