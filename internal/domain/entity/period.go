package entity

import "time"

// PeriodToken names a date window relative to the current month
type PeriodToken string

// Period tokens
const (
	PeriodAll             PeriodToken = "all"
	PeriodThisMonth       PeriodToken = "this-month"
	PeriodLastMonth       PeriodToken = "last-month"
	PeriodLastThreeMonths PeriodToken = "last-3-months"
	PeriodCustom          PeriodToken = "custom"
)

// DateLayout is the layout of custom period bounds
const DateLayout = "2006-01-02"

// DateRange is an inclusive [Start, End] window. A nil *DateRange means no filter.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range, bounds included
func (r *DateRange) Contains(t time.Time) bool {
	if r == nil {
		return true
	}
	return !t.Before(r.Start) && !t.After(r.End)
}

// StartOfDay returns 00:00:00 of t's day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's day in t's location
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// MonthRange covers a whole calendar month. Month may be out of range; it
// normalizes the way time.Date does.
func MonthRange(year int, month time.Month, loc *time.Location) DateRange {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return DateRange{Start: first, End: first.AddDate(0, 1, 0).Add(-time.Nanosecond)}
}
