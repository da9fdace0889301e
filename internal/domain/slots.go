package domain

import "time"

// Layout of the schedule grid: rows from GridStartHour to GridEndHour in SlotMinutes steps.
const (
	GridStartHour = 7
	GridEndHour   = 20
	SlotMinutes   = 10
)

// SlotsFor returns how many grid rows a delivery of durationMin covers (at least one).
func SlotsFor(durationMin int) int {
	if durationMin <= 0 {
		return 1
	}
	return (durationMin + SlotMinutes - 1) / SlotMinutes
}

// SlotTimes lists the start of every grid row for the given day, including the closing row at GridEndHour.
func SlotTimes(day time.Time) []time.Time {
	start := midnight(day).Add(GridStartHour * time.Hour)
	end := midnight(day).Add(GridEndHour * time.Hour)

	times := make([]time.Time, 0, (GridEndHour-GridStartHour)*60/SlotMinutes+1)
	for t := start; !t.After(end); t = t.Add(SlotMinutes * time.Minute) {
		times = append(times, t)
	}
	return times
}
