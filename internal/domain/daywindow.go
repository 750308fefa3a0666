package domain

import "time"

// DayWindow is the half-open UTC interval [Start, End) covering one calendar day.
type DayWindow struct {
	Start time.Time
	End   time.Time
}

// DayWindowOf returns the UTC calendar day containing t.
func DayWindowOf(t time.Time) (DayWindow, error) {
	if t.IsZero() {
		return DayWindow{}, InvalidInput("date is not a valid instant")
	}
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return DayWindow{Start: start, End: start.AddDate(0, 0, 1)}, nil
}
