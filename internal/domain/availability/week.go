package availability

import (
	"fmt"
	"time"
)

// Week is a Monday-to-Sunday range of civil dates.
type Week struct {
	Start time.Time
}

// WeekStart returns the Monday of the week containing ref.
func WeekStart(ref time.Time) time.Time {
	d := CivilDate(ref)
	offset := 1 - int(d.Weekday())
	if d.Weekday() == time.Sunday {
		offset = -6
	}
	return d.AddDate(0, 0, offset)
}

// WeekOf returns the week containing ref.
func WeekOf(ref time.Time) Week {
	return Week{Start: WeekStart(ref)}
}

// ParseWeek returns the week containing the YYYY-MM-DD date s.
func ParseWeek(s string) (Week, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return Week{}, fmt.Errorf("%w: %q", ErrInvalidWeek, s)
	}
	return WeekOf(d), nil
}

// End is the Sunday closing the week (inclusive).
func (w Week) End() time.Time {
	return w.Start.AddDate(0, 0, 6)
}

// Contains reports whether d falls inside the week.
func (w Week) Contains(d time.Time) bool {
	day := CivilDate(d)
	return !day.Before(w.Start) && !day.After(w.End())
}

// Days lists the seven dates of the week.
func (w Week) Days() []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = w.Start.AddDate(0, 0, i)
	}
	return days
}

// Next is the following week.
func (w Week) Next() Week {
	return Week{Start: w.Start.AddDate(0, 0, 7)}
}

// Prev is the preceding week. Weeks before the one containing today are
// not reachable and yield ErrWeekBeforeCurrent.
func (w Week) Prev(today time.Time) (Week, error) {
	prev := Week{Start: w.Start.AddDate(0, 0, -7)}
	if prev.Start.Before(WeekStart(today)) {
		return w, ErrWeekBeforeCurrent
	}
	return prev, nil
}

// IsCurrent reports whether the week contains today.
func (w Week) IsCurrent(today time.Time) bool {
	return w.Contains(today)
}

func (w Week) String() string {
	return w.Start.Format(DateLayout) + ".." + w.End().Format(DateLayout)
}
