package services

import "time"

// WeekWindow is the inclusive 7-day lookback range weekly queries and
// reports share. Boundaries are day-granular: the start is seven days
// before the reference at 00:00:00, the end is the reference day at
// 23:59:59, so a goal dated exactly seven days ago is in and one dated
// eight days ago is out.
type WeekWindow struct {
	Start time.Time
	End   time.Time
}

func WeekWindowEnding(reference time.Time) WeekWindow {
	end := time.Date(reference.Year(), reference.Month(), reference.Day(), 23, 59, 59, 0, reference.Location())
	startDay := end.AddDate(0, 0, -7)
	start := time.Date(startDay.Year(), startDay.Month(), startDay.Day(), 0, 0, 0, 0, reference.Location())
	return WeekWindow{Start: start, End: end}
}

// Contains reports whether an ISO goal date falls inside the window.
// Unparseable dates are simply outside, never an error.
func (w WeekWindow) Contains(date string) bool {
	parsed, err := time.ParseInLocation("2006-01-02", date, w.Start.Location())
	if err != nil {
		return false
	}
	day := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, w.Start.Location())
	return !day.Before(w.Start) && !day.After(w.End)
}

// StartDate and EndDate render the window bounds as ISO calendar dates
// for the weekly summary key.
func (w WeekWindow) StartDate() string { return w.Start.Format("2006-01-02") }
func (w WeekWindow) EndDate() string   { return w.End.Format("2006-01-02") }
