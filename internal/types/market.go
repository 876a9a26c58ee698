package types

import "time"

// DailyBar is one trading day of OHLCV history for a single instrument.
// The csv tags name the columns input files are expected to carry.
type DailyBar struct {
	Time   time.Time `csv:"date"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume int64     `csv:"volume"`
}
