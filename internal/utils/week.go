package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/yukikurage/life-record-api/internal/constants"
)

var ErrInvalidWeekNum = errors.New("week number must be in YYYYWW format")

// WeekNum returns the ISO-8601 year and week of t as YYYYWW. Dates near the turn of
// the year can belong to the neighbouring ISO year (2024-12-30 is 202501).
func WeekNum(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d%02d", year, week)
}

// ParseWeekNum splits a YYYYWW string and checks the week exists in that ISO year.
func ParseWeekNum(weekNum string) (int, int, error) {
	if len(weekNum) != 6 {
		return 0, 0, ErrInvalidWeekNum
	}
	year, err := strconv.Atoi(weekNum[:4])
	if err != nil || year < 1 {
		return 0, 0, ErrInvalidWeekNum
	}
	week, err := strconv.Atoi(weekNum[4:])
	if err != nil || week < 1 || week > ISOWeeksInYear(year) {
		return 0, 0, ErrInvalidWeekNum
	}
	return year, week, nil
}

// WeekStart returns the Monday of the given YYYYWW week in loc.
func WeekStart(weekNum string, loc *time.Location) (time.Time, error) {
	year, week, err := ParseWeekNum(weekNum)
	if err != nil {
		return time.Time{}, err
	}

	// January 4th always falls in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	offset := (int(jan4.Weekday()) + 6) % 7
	week1Monday := jan4.AddDate(0, 0, -offset)
	return week1Monday.AddDate(0, 0, (week-1)*7), nil
}

// ISOWeeksInYear returns 52 or 53.
func ISOWeeksInYear(year int) int {
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

// Truncate drops the time of day, keeping the calendar date in t's location.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today returns the current local calendar date.
func Today() time.Time {
	return Truncate(time.Now())
}

// ParseDate parses YYYY-MM-DD as a local calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(constants.DateLayout, s, time.Local)
}

// MonthRange returns [first day of month, first day of next month).
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

// PreviousMonth returns the calendar month before (year, month).
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}
