package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-monthly/internal/types"
)

// DataGenerator generates realistic daily price history for testing and benchmarking.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how daily bars are generated.
type GeneratorConfig struct {
	// StartDate is the first trading day of the series
	StartDate time.Time
	// Days is the number of daily bars to generate
	Days int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% typical daily volatility)
	Volatility float64
	// Trend is the drift factor (-0.01 to 0.01 for bearish to bullish)
	Trend float64
	// VolumeBase is the average share count per day
	VolumeBase int64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
	// SkipWeekends drops Saturdays and Sundays, like an exchange calendar
	SkipWeekends bool
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		StartDate:      time.Date(1992, 1, 1, 0, 0, 0, 0, time.UTC),
		Days:           365,
		InitialPrice:   100.0,
		Volatility:     0.01, // 1% per day
		Trend:          0.0,  // neutral
		VolumeBase:     1_000_000,
		VolumeVariance: 0.3,
		SkipWeekends:   false,
	}
}

// Generate creates a slice of DailyBar based on the configuration.
// The generated data follows a geometric Brownian motion model for realistic price movements.
func (g *DataGenerator) Generate(config GeneratorConfig) []types.DailyBar {
	data := make([]types.DailyBar, 0, config.Days)
	currentPrice := config.InitialPrice
	currentDate := config.StartDate

	for len(data) < config.Days {
		if config.SkipWeekends {
			for currentDate.Weekday() == time.Saturday || currentDate.Weekday() == time.Sunday {
				currentDate = currentDate.AddDate(0, 0, 1)
			}
		}

		open := currentPrice

		// Box-Muller transform for a normally distributed daily return
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		priceChange := config.Volatility * z
		drift := config.Trend / float64(config.Days) // Distribute trend across days

		close := open * (1 + priceChange + drift)
		if close <= 0 {
			close = open * 0.99 // Prevent negative prices
		}

		// High and low are within the open-close range plus some extension
		highExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)
		lowExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)

		high := math.Max(open, close) + highExtension
		low := math.Min(open, close) - lowExtension
		if low <= 0 {
			low = math.Min(open, close) * 0.99
		}

		// Volume with variance
		volumeVariation := 1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance
		volume := int64(float64(config.VolumeBase) * volumeVariation)
		if volume < 0 {
			volume = config.VolumeBase / 10
		}

		data = append(data, types.DailyBar{
			Time:   currentDate,
			Open:   roundToDecimals(open, 4),
			High:   roundToDecimals(high, 4),
			Low:    roundToDecimals(low, 4),
			Close:  roundToDecimals(close, 4),
			Volume: volume,
		})

		// Update for next iteration
		currentPrice = close
		currentDate = currentDate.AddDate(0, 0, 1)
	}

	return data
}

// GenerateYears is a convenience function generating one bar per calendar day
// for whole years, the shape of the scenario tests.
func (g *DataGenerator) GenerateYears(startYear, years int) []types.DailyBar {
	start := time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(years, 0, 0)

	config := DefaultConfig()
	config.StartDate = start
	config.Days = int(end.Sub(start).Hours() / 24)

	return g.Generate(config)
}

// Generate10K is a convenience function to generate 10,000 daily bars
// with default settings for benchmarking.
func Generate10K() []types.DailyBar {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Days = 10000

	return gen.Generate(config)
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
