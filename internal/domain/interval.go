package domain

import "time"

// Half-open time interval [Start, End).
// Two intervals that only touch at a boundary do not overlap.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval returns [start, start+durationMin minutes).
func NewInterval(start time.Time, durationMin int) Interval {
	return Interval{Start: start, End: start.Add(time.Duration(durationMin) * time.Minute)}
}

// Overlaps reports whether i and o share any instant: s1 < e2 AND s2 < e1.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Contains reports whether t falls inside [Start, End).
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// DayWindow returns [date 00:00, date+1 00:00) in the location of date.
func DayWindow(date time.Time) Interval {
	start := midnight(date)
	// AddDate keeps calendar days stable across DST changes, unlike Add(24h).
	return Interval{Start: start, End: start.AddDate(0, 0, 1)}
}

// WeekWindow returns [weekStart 00:00, weekStart+7 days 00:00) in the location of weekStart.
func WeekWindow(weekStart time.Time) Interval {
	start := midnight(weekStart)
	return Interval{Start: start, End: start.AddDate(0, 0, 7)}
}

// StartOfWeek snaps t back to the preceding Sunday at midnight, the first column of the weekly grid.
func StartOfWeek(t time.Time) time.Time {
	d := midnight(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// midnight truncates t to 00:00 in its own location.
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
