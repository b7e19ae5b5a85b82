package ledgerport

import (
	"testing"
	"time"
)

func TestDayWindow(t *testing.T) {
	w := DayWindow(refTime)

	wantStart := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", w.Start, wantStart)
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"midday", refTime, true},
		{"start is inclusive", wantStart, true},
		{"last nanosecond", wantStart.AddDate(0, 0, 1).Add(-time.Nanosecond), true},
		{"end is exclusive", wantStart.AddDate(0, 0, 1), false},
		{"day before", wantStart.Add(-time.Nanosecond), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.Contains(tc.at); got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.at, got, tc.want)
			}
		})
	}
}

func TestMonthWindow(t *testing.T) {
	w := MonthWindow(refTime)

	wantStart := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) || !w.End.Equal(wantEnd) {
		t.Errorf("window = [%v, %v), want [%v, %v)", w.Start, w.End, wantStart, wantEnd)
	}

	if !w.Contains(refTime.AddDate(0, 0, -14)) {
		t.Error("first of month not contained")
	}
	if w.Contains(wantEnd) {
		t.Error("next month start contained")
	}
}

func TestMonthWindowFebruary(t *testing.T) {
	// Leap year February has 29 days.
	w := MonthWindow(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC))
	if !w.Contains(time.Date(2024, time.February, 29, 23, 0, 0, 0, time.UTC)) {
		t.Error("Feb 29 not contained in leap-year February")
	}
	if w.Contains(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("Mar 1 contained in February window")
	}
}
