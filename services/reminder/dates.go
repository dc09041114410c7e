package reminder

import "time"

const day = 24 * time.Hour

// DaysBetween counts calendar days from from's date to to's date, each read in
// its own location. Negative when to is earlier.
func DaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / day)
}

// SameDay reports whether a and b fall on the same calendar date in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	a, b = a.In(loc), b.In(loc)
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Window is the inclusive range of days-remaining values that are eligible for a reminder.
type Window struct {
	MinDays int
	MaxDays int
}

// DefaultWindow covers strictly future events up to one week out.
var DefaultWindow = Window{MinDays: 1, MaxDays: 7}

func (w Window) Contains(days int) bool {
	return days >= w.MinDays && days <= w.MaxDays
}
