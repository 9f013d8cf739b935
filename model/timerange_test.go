package model

import (
	"testing"
	"time"
)

// fixedCalendar pins the clock to Wednesday 2026-08-26 12:00 UTC
func fixedCalendar(t *testing.T) Calendar {
	t.Helper()
	cal := NewCalendar(time.UTC, time.Monday)
	cal.NowFunc = func() time.Time {
		return time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	}
	return cal
}

func TestTimeRangeBounds(t *testing.T) {
	cal := fixedCalendar(t)

	tests := []struct {
		timeRange TimeRange
		lower     time.Time
		upper     time.Time
	}{
		{
			timeRange: TimeRangeCurrentWeek,
			lower:     time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
			upper:     time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC),
		},
		{
			timeRange: TimeRangeLastWeek,
			lower:     time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
			upper:     time.Date(2026, 8, 23, 23, 59, 59, 0, time.UTC),
		},
		{
			timeRange: TimeRangeCurrentMonth,
			lower:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			upper:     time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC),
		},
		{
			timeRange: TimeRangeLastMonth,
			lower:     time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			upper:     time.Date(2026, 7, 31, 23, 59, 59, 0, time.UTC),
		},
		{
			timeRange: TimeRangeCurrentYear,
			lower:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			upper:     time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC),
		},
		{
			timeRange: TimeRangeLastYear,
			lower:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			upper:     time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.timeRange), func(t *testing.T) {
			if got := tt.timeRange.LowerBound(cal); !got.Equal(tt.lower) {
				t.Errorf("LowerBound = %v, want %v", got, tt.lower)
			}
			if got := tt.timeRange.UpperBound(cal); !got.Equal(tt.upper) {
				t.Errorf("UpperBound = %v, want %v", got, tt.upper)
			}
		})
	}
}

// The upper bound of the current period must be exactly one second before
// the lower bound of the following period.
func TestTimeRangeBoundsAdjacent(t *testing.T) {
	cal := fixedCalendar(t)

	pairs := []struct {
		last    TimeRange
		current TimeRange
	}{
		{TimeRangeLastWeek, TimeRangeCurrentWeek},
		{TimeRangeLastMonth, TimeRangeCurrentMonth},
		{TimeRangeLastYear, TimeRangeCurrentYear},
	}

	for _, pair := range pairs {
		t.Run(string(pair.last), func(t *testing.T) {
			upper := pair.last.UpperBound(cal)
			nextLower := pair.current.LowerBound(cal)
			if !upper.Add(time.Second).Equal(nextLower) {
				t.Errorf("upper %v is not one second before next lower %v", upper, nextLower)
			}
		})
	}
}

func TestStartOfWeek(t *testing.T) {
	cal := NewCalendar(time.UTC, time.Monday)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"wednesday", time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC), time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)},
		{"monday itself", time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)},
		{"sunday rolls back", time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC), time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cal.StartOfWeek(tt.in); !got.Equal(tt.want) {
				t.Errorf("StartOfWeek(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	t.Run("sunday week start", func(t *testing.T) {
		sundayCal := NewCalendar(time.UTC, time.Sunday)
		in := time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC)
		want := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
		if got := sundayCal.StartOfWeek(in); !got.Equal(want) {
			t.Errorf("StartOfWeek(%v) = %v, want %v", in, got, want)
		}
	})
}

func TestSameDay(t *testing.T) {
	cal := NewCalendar(time.UTC, time.Monday)

	a := time.Date(2026, 8, 26, 0, 0, 1, 0, time.UTC)
	b := time.Date(2026, 8, 26, 23, 59, 59, 0, time.UTC)
	if !cal.SameDay(a, b) {
		t.Error("expected same calendar day")
	}
	if cal.SameDay(a, b.Add(time.Second)) {
		t.Error("midnight crossed, expected different days")
	}
}

func TestTimeRangeValid(t *testing.T) {
	for _, timeRange := range AvailableTimeRanges {
		if !timeRange.Valid() {
			t.Errorf("%s should be valid", timeRange)
		}
	}
	if TimeRange("nextWeek").Valid() {
		t.Error("unknown time range should be invalid")
	}
}

func TestTimeRangeString(t *testing.T) {
	cal := fixedCalendar(t)

	tests := []struct {
		timeRange TimeRange
		want      string
	}{
		{TimeRangeCurrentWeek, "CW 35"},
		{TimeRangeCurrentMonth, "August"},
		{TimeRangeLastMonth, "July"},
		{TimeRangeCurrentYear, "2026"},
		{TimeRangeLastYear, "2025"},
	}

	for _, tt := range tests {
		if got := cal.String(tt.timeRange); got != tt.want {
			t.Errorf("String(%s) = %q, want %q", tt.timeRange, got, tt.want)
		}
	}
}
