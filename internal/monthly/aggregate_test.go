package monthly

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/argo-monthly/internal/types"
	"github.com/rxtech-lab/argo-monthly/pkg/errors"
)

type AggregateTestSuite struct {
	suite.Suite
}

func TestAggregateSuite(t *testing.T) {
	suite.Run(t, new(AggregateTestSuite))
}

// dailySeries builds one bar per calendar day of the year. Open carries
// the day-of-year (1.0 for January 1), the other fields derive from it.
func dailySeries(year int) []types.DailyBar {
	var series []types.DailyBar
	for day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC); day.Year() == year; day = day.AddDate(0, 0, 1) {
		open := float64(day.YearDay())
		series = append(series, types.DailyBar{
			Time:   day,
			Open:   open,
			High:   open + 1,
			Low:    open - 1,
			Close:  open + 0.5,
			Volume: int64(day.YearDay()) * 1000,
		})
	}

	return series
}

func (suite *AggregateTestSuite) TestSelectMonthLeapYear() {
	leap := SelectMonth(dailySeries(2024), Window{Year: 2024, Month: time.February})
	suite.Len(leap, 29)
	suite.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), leap[len(leap)-1].Time)

	nonLeap := SelectMonth(dailySeries(2023), Window{Year: 2023, Month: time.February})
	suite.Len(nonLeap, 28)
	suite.Equal(time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC), nonLeap[len(nonLeap)-1].Time)
}

func (suite *AggregateTestSuite) TestSelectMonthHalfOpenBoundary() {
	series := []types.DailyBar{
		{Time: time.Date(2021, 3, 31, 0, 0, 0, 0, time.UTC), Open: 1},
		{Time: time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC), Open: 2},
		{Time: time.Date(2021, 4, 30, 0, 0, 0, 0, time.UTC), Open: 3},
		{Time: time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC), Open: 4},
	}

	selected := SelectMonth(series, Window{Year: 2021, Month: time.April})
	suite.Len(selected, 2)
	suite.Equal(2.0, selected[0].Open)
	suite.Equal(3.0, selected[1].Open)
}

func (suite *AggregateTestSuite) TestSelectMonthDecember() {
	series := []types.DailyBar{
		{Time: time.Date(2020, 12, 1, 0, 0, 0, 0, time.UTC), Open: 1},
		{Time: time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC), Open: 2},
		{Time: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), Open: 3},
	}

	selected := SelectMonth(series, Window{Year: 2020, Month: time.December})
	suite.Len(selected, 2)
	suite.Equal(2.0, selected[1].Open)
}

func (suite *AggregateTestSuite) TestSelectMonthOutsideData() {
	series := dailySeries(2024)

	selected := SelectMonth(series, Window{Year: 1999, Month: time.June})
	suite.Empty(selected)
}

func (suite *AggregateTestSuite) TestSelectMonthEmptySeries() {
	suite.Empty(SelectMonth(nil, Window{Year: 2024, Month: time.February}))
	suite.Empty(SelectMonth([]types.DailyBar{}, Window{Year: 2024, Month: time.February}))
}

func (suite *AggregateTestSuite) TestSelectMonthDoesNotMutateInput() {
	series := dailySeries(2024)
	snapshot := make([]types.DailyBar, len(series))
	copy(snapshot, series)

	SelectMonth(series, Window{Year: 2024, Month: time.February})
	suite.Equal(snapshot, series)
}

func (suite *AggregateTestSuite) TestSelectMonthPreservesInputOrder() {
	// Deliberately unsorted input: selection must keep relative order.
	series := []types.DailyBar{
		{Time: time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC), Open: 20},
		{Time: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), Open: 5},
		{Time: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), Open: 31},
		{Time: time.Date(2024, 2, 11, 0, 0, 0, 0, time.UTC), Open: 11},
	}

	selected := SelectMonth(series, Window{Year: 2024, Month: time.February})
	suite.Len(selected, 3)
	suite.Equal(20.0, selected[0].Open)
	suite.Equal(5.0, selected[1].Open)
	suite.Equal(11.0, selected[2].Open)
}

func (suite *AggregateTestSuite) TestMean() {
	series := []types.DailyBar{
		{Open: 1.0, Close: 2.0},
		{Open: 2.0, Close: 4.0},
		{Open: 3.0, Close: 6.0},
	}

	mean, err := Mean(series, types.FieldOpen)
	suite.NoError(err)
	suite.True(mean.IsSome())
	suite.Equal(2.0, mean.Unwrap())

	mean, err = Mean(series, types.FieldClose)
	suite.NoError(err)
	suite.Equal(4.0, mean.Unwrap())
}

func (suite *AggregateTestSuite) TestMeanSingleBar() {
	series := []types.DailyBar{{High: 155.5}}

	mean, err := Mean(series, types.FieldHigh)
	suite.NoError(err)
	suite.Equal(155.5, mean.Unwrap())
}

func (suite *AggregateTestSuite) TestMeanVolume() {
	series := []types.DailyBar{
		{Volume: 1000},
		{Volume: 2000},
		{Volume: 6000},
	}

	mean, err := Mean(series, types.FieldVolume)
	suite.NoError(err)
	suite.Equal(3000.0, mean.Unwrap())
}

func (suite *AggregateTestSuite) TestMeanEmptySeriesIsNone() {
	mean, err := Mean(nil, types.FieldOpen)
	suite.NoError(err)
	suite.True(mean.IsNone())

	mean, err = Mean([]types.DailyBar{}, types.FieldClose)
	suite.NoError(err)
	suite.True(mean.IsNone())
}

func (suite *AggregateTestSuite) TestMeanUnknownField() {
	series := []types.DailyBar{{Open: 1.0}}

	_, err := Mean(series, types.Field("turnover"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnknownField))
}

func (suite *AggregateTestSuite) TestMeanUnknownFieldBeatsEmptySeries() {
	// The field check runs even when there is nothing to average.
	_, err := Mean(nil, types.Field("turnover"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUnknownField))
}

func (suite *AggregateTestSuite) TestMeanIsPure() {
	series := dailySeries(2024)

	first, err := Mean(series, types.FieldClose)
	suite.NoError(err)
	second, err := Mean(series, types.FieldClose)
	suite.NoError(err)
	suite.Equal(first.Unwrap(), second.Unwrap())
}
