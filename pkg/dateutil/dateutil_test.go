package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestAgeCalculation tests the whole-year age calculation with birthday edge cases
func TestAgeCalculation(t *testing.T) {
	tests := []struct {
		name        string
		birthDate   time.Time
		atDate      time.Time
		expectedAge int
		description string
	}{
		{"Same month and day", date(1965, 2, 25), date(2025, 2, 25), 60, "Exact birthday"},
		{"Day before birthday", date(1965, 2, 25), date(2025, 2, 24), 59, "One day before 60th birthday"},
		{"Day after birthday", date(1965, 2, 25), date(2025, 2, 26), 60, "One day after 60th birthday"},
		{"Month before birthday", date(1965, 2, 25), date(2025, 1, 25), 59, "Same day, month before birthday"},
		{"Leap year birth, non-leap year check", date(1964, 2, 29), date(2025, 2, 28), 60, "Born on leap day, checking on Feb 28"},
		{"Leap year birth, leap year check", date(1964, 2, 29), date(2024, 2, 29), 60, "Born on leap day, checking on leap day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedAge, Age(tt.birthDate, tt.atDate), tt.description)
		})
	}
}

func TestFractionalAge(t *testing.T) {
	birth := date(1970, 1, 1)

	assert.Equal(t, 65.0, FractionalAge(birth, date(2035, 1, 1)), "birthday must be integral")
	assert.InDelta(t, 64.5, FractionalAge(birth, date(2034, 7, 2)), 0.01)
	assert.Less(t, FractionalAge(birth, date(2034, 12, 1)), 65.0)
	assert.Equal(t, 0.0, FractionalAge(birth, birth))
}

func TestMonthlySequence(t *testing.T) {
	tests := []struct {
		name        string
		start, end  string
		wantLen     int
		wantFirst   string
		wantLast    string
		description string
	}{
		{"Half year", "2020-01-01", "2020-06-01", 6, "2020-01-01", "2020-06-01", "both bounds on the first of the month"},
		{"Single month", "2020-03-01", "2020-03-01", 1, "2020-03-01", "2020-03-01", "start equals end"},
		{"Mid-month start", "2020-01-15", "2020-04-10", 4, "2020-01-01", "2020-04-01", "start truncated to its month"},
		{"Year boundary", "2020-11-01", "2021-02-01", 4, "2020-11-01", "2021-02-01", "crosses December"},
		{"Thirty years", "2025-01-01", "2055-01-01", 12*30 + 1, "2025-01-01", "2055-01-01", "inclusive of both ends"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := MonthlySequenceFromStrings(tt.start, tt.end)
			require.NoError(t, err)
			require.Len(t, seq, tt.wantLen, tt.description)
			assert.Equal(t, tt.wantFirst, seq[0].Format(DateLayout))
			assert.Equal(t, tt.wantLast, seq[len(seq)-1].Format(DateLayout))
			for i := 1; i < len(seq); i++ {
				assert.True(t, seq[i].After(seq[i-1]), "sequence must be strictly increasing")
				assert.Equal(t, 1, seq[i].Day())
			}
		})
	}
}

func TestMonthlySequenceStable(t *testing.T) {
	a, err := MonthlySequence(date(2020, 1, 1), date(2022, 1, 1))
	require.NoError(t, err)
	b, err := MonthlySequence(date(2020, 1, 1), date(2022, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMonthlySequenceRejectsReversedBounds(t *testing.T) {
	_, err := MonthlySequence(date(2021, 1, 1), date(2020, 1, 1))
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 29), d)

	_, err = ParseDate("retirement")
	assert.Error(t, err)
	_, err = ParseDate("2024-13-01")
	assert.Error(t, err)
}

func TestDateArithmetic(t *testing.T) {
	base := date(2024, 1, 31)
	assert.Equal(t, date(2025, 1, 31), AddYears(base, 1))
	assert.Equal(t, date(2024, 3, 31), AddMonths(base, 2))
	assert.Equal(t, date(2024, 1, 1), FirstOfMonth(base))
	assert.Equal(t, 14, MonthsBetween(date(2020, 1, 1), date(2021, 3, 1)))
	assert.Equal(t, 13, MonthsBetween(date(2020, 1, 15), date(2021, 3, 1)))
	assert.InDelta(t, 1.0, YearsUntilDate(date(2019, 7, 1), date(2020, 7, 1)), 0.01)
}
