package dateutil

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date layout used by configuration files and reports.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO YYYY-MM-DD date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// MustParseDate is ParseDate for literals known to be valid; it panics otherwise.
func MustParseDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FirstOfMonth truncates a date to the first day of its month.
func FirstOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// MonthlySequence returns one date per calendar month, starting at the first of
// start's month and ending at the last first-of-month on or before end.
// Both bounds are included when they fall on the first of a month.
func MonthlySequence(start, end time.Time) ([]time.Time, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("timeline end %s is before start %s", end.Format(DateLayout), start.Format(DateLayout))
	}
	current := FirstOfMonth(start)
	var seq []time.Time
	for !current.After(end) {
		seq = append(seq, current)
		current = current.AddDate(0, 1, 0)
	}
	return seq, nil
}

// MonthlySequenceFromStrings is MonthlySequence over ISO date strings.
func MonthlySequenceFromStrings(start, end string) ([]time.Time, error) {
	s, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	return MonthlySequence(s, e)
}

// Age calculates the age in whole years at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// FractionalAge returns the age in years including the elapsed fraction of the
// current year of life. It is exactly integral on birthdays.
func FractionalAge(birthDate, atDate time.Time) float64 {
	whole := Age(birthDate, atDate)
	lastBirthday := AddYears(birthDate, whole)
	nextBirthday := AddYears(birthDate, whole+1)
	span := nextBirthday.Sub(lastBirthday).Hours()
	if span <= 0 {
		return float64(whole)
	}
	return float64(whole) + atDate.Sub(lastBirthday).Hours()/span
}

// YearsUntilDate calculates the number of years between two dates
func YearsUntilDate(fromDate, toDate time.Time) float64 {
	duration := toDate.Sub(fromDate)
	return duration.Hours() / 24 / 365.25
}

// MonthsBetween returns the number of whole calendar months from one date to another.
func MonthsBetween(fromDate, toDate time.Time) int {
	months := (toDate.Year()-fromDate.Year())*12 + int(toDate.Month()) - int(fromDate.Month())
	if toDate.Day() < fromDate.Day() {
		months--
	}
	return months
}

// AddYears adds a specified number of years to a date
func AddYears(date time.Time, years int) time.Time {
	return date.AddDate(years, 0, 0)
}

// AddMonths adds a specified number of months to a date
func AddMonths(date time.Time, months int) time.Time {
	return date.AddDate(0, months, 0)
}
