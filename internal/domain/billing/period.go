package billing

import "time"

// MonthWindow is a half-open calendar-month interval [Start, End).
type MonthWindow struct {
	Start time.Time
	End   time.Time
}

// Label formats the window for dashboard series, e.g. "Jan 2024".
func (w MonthWindow) Label() string {
	return w.Start.Format("Jan 2006")
}

// Contains reports whether t falls inside the window.
func (w MonthWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// MonthWindows returns the monthsBack calendar months ending at asOf's month,
// oldest first. Stepping from the first of the month keeps AddDate month
// arithmetic exact across year boundaries.
func MonthWindows(asOf time.Time, monthsBack int) []MonthWindow {
	if monthsBack <= 0 {
		return nil
	}

	currentMonth := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	start := currentMonth.AddDate(0, -(monthsBack - 1), 0)

	windows := make([]MonthWindow, 0, monthsBack)
	for i := 0; i < monthsBack; i++ {
		monthStart := start.AddDate(0, i, 0)
		windows = append(windows, MonthWindow{
			Start: monthStart,
			End:   monthStart.AddDate(0, 1, 0),
		})
	}
	return windows
}
