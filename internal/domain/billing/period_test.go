package billing

import (
	"testing"
	"time"
)

func TestMonthWindows_CoversRequestedMonthsOldestFirst(t *testing.T) {
	asOf := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	windows := MonthWindows(asOf, 3)
	if len(windows) != 3 {
		t.Fatalf("got %d windows, want 3", len(windows))
	}

	wantLabels := []string{"Jan 2024", "Feb 2024", "Mar 2024"}
	for i, w := range windows {
		if w.Label() != wantLabels[i] {
			t.Errorf("window %d label = %q, want %q", i, w.Label(), wantLabels[i])
		}
		if !w.End.Equal(w.Start.AddDate(0, 1, 0)) {
			t.Errorf("window %d is not a calendar month: [%v, %v)", i, w.Start, w.End)
		}
	}
}

func TestMonthWindows_YearRollover(t *testing.T) {
	asOf := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	windows := MonthWindows(asOf, 2)
	if len(windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(windows))
	}
	if windows[0].Label() != "Dec 2023" {
		t.Errorf("first window = %q, want Dec 2023", windows[0].Label())
	}
	if windows[1].Label() != "Jan 2024" {
		t.Errorf("second window = %q, want Jan 2024", windows[1].Label())
	}
}

func TestMonthWindows_HalfOpenBoundaries(t *testing.T) {
	asOf := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)
	w := MonthWindows(asOf, 1)[0]

	if !w.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("month start must be included")
	}
	if !w.Contains(time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)) {
		t.Error("leap day must be included")
	}
	if w.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("next month start must be excluded")
	}
	if w.Contains(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)) {
		t.Error("prior month must be excluded")
	}
}

func TestMonthWindows_NonPositiveCount(t *testing.T) {
	asOf := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	if got := MonthWindows(asOf, 0); got != nil {
		t.Errorf("MonthWindows(asOf, 0) = %v, want nil", got)
	}
	if got := MonthWindows(asOf, -4); got != nil {
		t.Errorf("MonthWindows(asOf, -4) = %v, want nil", got)
	}
}
