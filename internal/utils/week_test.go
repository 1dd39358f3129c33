package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekNum(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		{"monday of first week", date(2024, time.January, 1), "202401"},
		{"year end in next iso year", date(2024, time.December, 30), "202501"},
		{"january in previous iso year", date(2021, time.January, 3), "202053"},
		{"mid year", date(2024, time.June, 15), "202424"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WeekNum(tc.in))
		})
	}
}

func TestWeekStart(t *testing.T) {
	start, err := WeekStart("202401", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.January, 1), start)

	start, err = WeekStart("202501", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.December, 30), start)

	start, err = WeekStart("202053", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, date(2020, time.December, 28), start)
	assert.Equal(t, "202053", WeekNum(start))
}

func TestWeekStart_RoundTrip(t *testing.T) {
	d := date(2023, time.January, 1)
	for i := 0; i < 800; i++ {
		wn := WeekNum(d)
		start, err := WeekStart(wn, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, time.Monday, start.Weekday())
		assert.Equal(t, wn, WeekNum(start))
		assert.False(t, start.After(d))
		assert.True(t, d.Sub(start) < 7*24*time.Hour)
		d = d.AddDate(0, 0, 1)
	}
}

func TestParseWeekNum_Invalid(t *testing.T) {
	for _, in := range []string{"", "2024", "2024001", "2024ab", "202400", "202453", "abcd01"} {
		_, _, err := ParseWeekNum(in)
		assert.ErrorIs(t, err, ErrInvalidWeekNum, in)
	}

	// 2020 has 53 ISO weeks
	_, week, err := ParseWeekNum("202053")
	require.NoError(t, err)
	assert.Equal(t, 53, week)
}

func TestPreviousMonth(t *testing.T) {
	y, m := PreviousMonth(2024, time.January)
	assert.Equal(t, 2023, y)
	assert.Equal(t, time.December, m)

	y, m = PreviousMonth(2024, time.March)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.February, m)
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2024, time.December, time.UTC)
	assert.Equal(t, date(2024, time.December, 1), start)
	assert.Equal(t, date(2025, time.January, 1), end)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 70.8, Round(70.75, 1))
	assert.Equal(t, 33.33, Round(100.0/3.0, 2))
	assert.Equal(t, -0.5, Round(-0.45, 1))
}

func TestGenerateRandomFilename(t *testing.T) {
	a, err := GenerateRandomFilename(".JPG")
	require.NoError(t, err)
	b, err := GenerateRandomFilename(".JPG")
	require.NoError(t, err)

	assert.Len(t, a, 16+len(".jpg"))
	assert.Regexp(t, `^[0-9a-f]{16}\.jpg$`, a)
	assert.NotEqual(t, a, b)
}
