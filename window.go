package ledgerport

import "time"

// Window is a half-open time interval [Start, End) used by aggregate
// recomputation to bound the current day and calendar month.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// DayWindow returns the window of the civil day containing ref, in ref's
// location.
func DayWindow(ref time.Time) Window {
	y, m, d := ref.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, ref.Location())
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// MonthWindow returns the window of the calendar month containing ref, in
// ref's location.
func MonthWindow(ref time.Time) Window {
	y, m, _ := ref.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, ref.Location())
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}
