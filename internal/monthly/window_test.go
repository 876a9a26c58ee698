package monthly

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/argo-monthly/pkg/errors"
)

type WindowTestSuite struct {
	suite.Suite
}

func TestWindowSuite(t *testing.T) {
	suite.Run(t, new(WindowTestSuite))
}

func (suite *WindowTestSuite) TestNewWindow() {
	window, err := NewWindow(2024, time.February)
	suite.NoError(err)
	suite.Equal(2024, window.Year)
	suite.Equal(time.February, window.Month)
}

func (suite *WindowTestSuite) TestNewWindowInvalidMonth() {
	tests := []struct {
		name  string
		month time.Month
	}{
		{name: "zero", month: time.Month(0)},
		{name: "thirteen", month: time.Month(13)},
		{name: "negative", month: time.Month(-1)},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			_, err := NewWindow(2024, tc.month)
			suite.Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidMonth))
		})
	}
}

func (suite *WindowTestSuite) TestStartAndEnd() {
	tests := []struct {
		name          string
		year          int
		month         time.Month
		expectedStart time.Time
		expectedEnd   time.Time
	}{
		{
			name:          "leap february",
			year:          2024,
			month:         time.February,
			expectedStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "non-leap february",
			year:          2023,
			month:         time.February,
			expectedStart: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "thirty day month",
			year:          2021,
			month:         time.April,
			expectedStart: time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "december rolls into next year",
			year:          2020,
			month:         time.December,
			expectedStart: time.Date(2020, 12, 1, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			window := Window{Year: tc.year, Month: tc.month}
			suite.Equal(tc.expectedStart, window.Start())
			suite.Equal(tc.expectedEnd, window.End())
		})
	}
}

func (suite *WindowTestSuite) TestContainsHalfOpen() {
	april := Window{Year: 2021, Month: time.April}

	suite.True(april.Contains(time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC)))
	suite.True(april.Contains(time.Date(2021, 4, 15, 12, 0, 0, 0, time.UTC)))
	suite.True(april.Contains(time.Date(2021, 4, 30, 0, 0, 0, 0, time.UTC)))
	suite.True(april.Contains(time.Date(2021, 4, 30, 23, 59, 59, 0, time.UTC)))
	suite.False(april.Contains(time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)))
	suite.False(april.Contains(time.Date(2021, 3, 31, 23, 59, 59, 0, time.UTC)))
}

func (suite *WindowTestSuite) TestContainsLeapDay() {
	leap := Window{Year: 2024, Month: time.February}
	suite.True(leap.Contains(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))
	suite.False(leap.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))

	nonLeap := Window{Year: 2023, Month: time.February}
	suite.True(nonLeap.Contains(time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)))
	suite.False(nonLeap.Contains(time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func (suite *WindowTestSuite) TestNext() {
	january := Window{Year: 2024, Month: time.January}
	suite.Equal(Window{Year: 2024, Month: time.February}, january.Next())

	december := Window{Year: 2020, Month: time.December}
	suite.Equal(Window{Year: 2021, Month: time.January}, december.Next())
}

func (suite *WindowTestSuite) TestString() {
	suite.Equal("1992-02", Window{Year: 1992, Month: time.February}.String())
	suite.Equal("2024-12", Window{Year: 2024, Month: time.December}.String())
}

func (suite *WindowTestSuite) TestLabel() {
	suite.Equal("February 1992", Window{Year: 1992, Month: time.February}.Label())
	suite.Equal("December 2020", Window{Year: 2020, Month: time.December}.Label())
}

func (suite *WindowTestSuite) TestParseWindow() {
	tests := []struct {
		name     string
		input    string
		expected Window
		wantErr  bool
	}{
		{
			name:     "valid month",
			input:    "1992-02",
			expected: Window{Year: 1992, Month: time.February},
			wantErr:  false,
		},
		{
			name:     "december",
			input:    "2020-12",
			expected: Window{Year: 2020, Month: time.December},
			wantErr:  false,
		},
		{
			name:    "month out of range",
			input:   "1992-13",
			wantErr: true,
		},
		{
			name:    "not a month",
			input:   "not-a-month",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			window, err := ParseWindow(tc.input)
			if tc.wantErr {
				suite.Error(err)
				suite.True(errors.HasCode(err, errors.ErrCodeInvalidWindow))

				return
			}
			suite.NoError(err)
			suite.Equal(tc.expected, window)
		})
	}
}

func (suite *WindowTestSuite) TestWindowOf() {
	suite.Equal(
		Window{Year: 2024, Month: time.February},
		WindowOf(time.Date(2024, 2, 29, 15, 30, 0, 0, time.UTC)),
	)

	// Non-UTC instants are interpreted in UTC.
	est := time.FixedZone("EST", -5*60*60)
	suite.Equal(
		Window{Year: 2021, Month: time.May},
		WindowOf(time.Date(2021, 4, 30, 22, 0, 0, 0, est)),
	)
}
