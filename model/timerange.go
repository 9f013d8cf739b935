package model

import (
	"fmt"
	"time"
)

type TimeRange string

const (
	TimeRangeCurrentWeek  TimeRange = "currentWeek"
	TimeRangeLastWeek     TimeRange = "lastWeek"
	TimeRangeCurrentMonth TimeRange = "currentMonth"
	TimeRangeLastMonth    TimeRange = "lastMonth"
	TimeRangeCurrentYear  TimeRange = "currentYear"
	TimeRangeLastYear     TimeRange = "lastYear"
)

// AvailableTimeRanges lists every time range in display order
var AvailableTimeRanges = []TimeRange{
	TimeRangeCurrentWeek,
	TimeRangeLastWeek,
	TimeRangeCurrentMonth,
	TimeRangeLastMonth,
	TimeRangeCurrentYear,
	TimeRangeLastYear,
}

// Calendar carries the location and week convention used for all date
// arithmetic. NowFunc is injectable so tests can pin the clock.
type Calendar struct {
	Location  *time.Location
	WeekStart time.Weekday
	NowFunc   func() time.Time
}

func NewCalendar(location *time.Location, weekStart time.Weekday) Calendar {
	if location == nil {
		location = time.Local
	}
	return Calendar{Location: location, WeekStart: weekStart}
}

func (c Calendar) Now() time.Time {
	if c.NowFunc != nil {
		return c.NowFunc().In(c.Location)
	}
	return time.Now().In(c.Location)
}

// StartOfDay returns midnight of the day containing t
func (c Calendar) StartOfDay(t time.Time) time.Time {
	t = t.In(c.Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.Location)
}

// StartOfWeek returns midnight of the most recent WeekStart day on or before t
func (c Calendar) StartOfWeek(t time.Time) time.Time {
	day := c.StartOfDay(t)
	offset := (int(day.Weekday()) - int(c.WeekStart) + 7) % 7
	return day.AddDate(0, 0, -offset)
}

// SameDay reports whether both times fall on the same calendar day
func (c Calendar) SameDay(a, b time.Time) bool {
	a = a.In(c.Location)
	b = b.In(c.Location)
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// LowerBound resolves the effective start date of the time range in the given calendar
func (tr TimeRange) LowerBound(cal Calendar) time.Time {
	now := cal.Now()

	switch tr {
	case TimeRangeCurrentWeek:
		return cal.StartOfWeek(now)

	case TimeRangeLastWeek:
		return cal.StartOfWeek(now).AddDate(0, 0, -7)

	case TimeRangeCurrentMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, cal.Location)

	case TimeRangeLastMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, cal.Location).AddDate(0, -1, 0)

	case TimeRangeCurrentYear:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, cal.Location)

	case TimeRangeLastYear:
		return time.Date(now.Year()-1, 1, 1, 0, 0, 0, 0, cal.Location)
	}

	return cal.StartOfDay(now)
}

// UpperBound resolves the effective end date of the time range in the given
// calendar. The end date is always the lower bound of the next period minus
// one second.
func (tr TimeRange) UpperBound(cal Calendar) time.Time {
	lowerBound := tr.LowerBound(cal)

	switch tr {
	case TimeRangeCurrentWeek, TimeRangeLastWeek:
		return lowerBound.AddDate(0, 0, 7).Add(-time.Second)

	case TimeRangeCurrentMonth, TimeRangeLastMonth:
		return lowerBound.AddDate(0, 1, 0).Add(-time.Second)

	case TimeRangeCurrentYear, TimeRangeLastYear:
		return lowerBound.AddDate(1, 0, 0).Add(-time.Second)
	}

	return lowerBound.AddDate(0, 0, 1).Add(-time.Second)
}

// Valid reports whether tr is one of the known time ranges
func (tr TimeRange) Valid() bool {
	for _, known := range AvailableTimeRanges {
		if tr == known {
			return true
		}
	}
	return false
}

// String renders a human readable label for the time range, e.g. "CW 35",
// "August" or "2026".
func (c Calendar) String(tr TimeRange) string {
	now := c.Now()

	switch tr {
	case TimeRangeCurrentWeek:
		_, week := now.ISOWeek()
		return fmt.Sprintf("CW %d", week)

	case TimeRangeLastWeek:
		_, week := now.AddDate(0, 0, -7).ISOWeek()
		return fmt.Sprintf("CW %d", week)

	case TimeRangeCurrentMonth:
		return now.Format("January")

	case TimeRangeLastMonth:
		return now.AddDate(0, -1, 0).Format("January")

	case TimeRangeCurrentYear:
		return now.Format("2006")

	case TimeRangeLastYear:
		return now.AddDate(-1, 0, 0).Format("2006")
	}

	return string(tr)
}
