package calendar_test

import (
	"encoding/json"
	"testing"
	"time"

	"hris-core/internal/calendar"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange_Months(t *testing.T) {
	r, err := calendar.ParseRange("2026-01-20", "2026-03-05")
	require.NoError(t, err)

	months := r.Months()

	assert.Len(t, months, 3)
	assert.Equal(t, "2026-01-20", months[0].Start.String())
	assert.Equal(t, "2026-01-31", months[0].End.String())
	assert.Equal(t, "2026-02-01", months[1].Start.String())
	assert.Equal(t, "2026-02-28", months[1].End.String())
	assert.Equal(t, "2026-03-01", months[2].Start.String())
	assert.Equal(t, "2026-03-05", months[2].End.String())
}

func TestRange_Validation(t *testing.T) {
	t.Run("end before start", func(t *testing.T) {
		_, err := calendar.ParseRange("2026-03-02", "2026-03-01")
		assert.ErrorIs(t, err, calendar.ErrInvalidRange)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := calendar.ParseRange("2026/03/01", "2026-03-01")
		assert.ErrorIs(t, err, calendar.ErrInvalidDate)
	})

	t.Run("single day", func(t *testing.T) {
		r, err := calendar.ParseRange("2026-03-01", "2026-03-01")
		assert.NoError(t, err)
		assert.Equal(t, 1, r.Len())
		assert.Len(t, r.Days(), 1)
	})
}

func TestRange_Windows(t *testing.T) {
	end := calendar.MustParseDate("2026-10-18")

	days := calendar.LastNDays(end, 30)
	assert.Equal(t, 30, days.Len())
	assert.Equal(t, "2026-09-19", days.Start.String())

	months := calendar.LastNMonths(end, 12)
	assert.Equal(t, "2025-11-01", months.Start.String())
	assert.Equal(t, "2026-10-31", months.End.String())
	assert.Len(t, months.Months(), 12)
}

func TestRange_Intersects(t *testing.T) {
	year := calendar.YearRange(2026)
	r, _ := calendar.ParseRange("2025-12-30", "2026-01-02")
	other, _ := calendar.ParseRange("2027-01-01", "2027-01-03")

	assert.True(t, year.Intersects(r))
	assert.False(t, year.Intersects(other))
}

func TestCalendar_WeekendAndToday(t *testing.T) {
	cal, err := calendar.New("Asia/Jakarta", []string{"fri", "Saturday"})
	require.NoError(t, err)

	assert.True(t, cal.IsWeekend(calendar.MustParseDate("2026-10-16")))
	assert.True(t, cal.IsWeekend(calendar.MustParseDate("2026-10-17")))
	assert.False(t, cal.IsWeekend(calendar.MustParseDate("2026-10-18")))

	// 20:00 UTC is already the next day in Jakarta (UTC+7).
	cal.Now = func() time.Time { return time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC) }
	assert.Equal(t, "2026-10-19", cal.Today().String())
	assert.False(t, cal.IsFuture(calendar.MustParseDate("2026-10-19")))
	assert.True(t, cal.IsFuture(calendar.MustParseDate("2026-10-20")))

	_, err = calendar.New("", []string{"someday"})
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		Date calendar.Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2026-02-28"}`), &payload))
	assert.Equal(t, 2026, payload.Date.Year())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2026-02-28"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"date":"28-02-2026"}`), &payload))
}
