package timetable

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the day/month/year format used by the timetable site.
const DateLayout = "02/01/2006"

// WeekdayNames are the French column headers, Monday first.
var WeekdayNames = [DaysPerWeek]string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi"}

// FormatDate formats a date as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a DD/MM/YYYY date. Single digit days and months are accepted,
// impossible dates such as 31/02/2025 are rejected.
func ParseDate(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid date %q: expected DD/MM/YYYY", s)
	}

	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected DD/MM/YYYY", s)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, fmt.Errorf("invalid date %q: day or month out of range", s)
	}
	return t, nil
}

// IsValidDate reports whether s is a real DD/MM/YYYY date.
func IsValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// Week is the Monday-to-Friday window being viewed
type Week struct {
	Start time.Time // Monday, midnight
}

// WeekOf returns the week containing t. Saturdays and Sundays belong to the week that
// started on the preceding Monday.
func WeekOf(t time.Time) Week {
	offset := (int(t.Weekday()) + 6) % 7
	monday := time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
	return Week{Start: monday}
}

// Next returns the following week.
func (w Week) Next() Week {
	return Week{Start: w.Start.AddDate(0, 0, 7)}
}

// Prev returns the previous week.
func (w Week) Prev() Week {
	return Week{Start: w.Start.AddDate(0, 0, -7)}
}

// Shift moves the week by n weeks, backwards when n is negative.
func (w Week) Shift(n int) Week {
	return Week{Start: w.Start.AddDate(0, 0, 7*n)}
}

// Days returns the dates from Monday to Friday.
func (w Week) Days() []time.Time {
	days := make([]time.Time, DaysPerWeek)
	for i := range days {
		days[i] = w.Start.AddDate(0, 0, i)
	}
	return days
}

// End is the Friday of the week.
func (w Week) End() time.Time {
	return w.Start.AddDate(0, 0, DaysPerWeek-1)
}

// DayLabel is the header used for an empty day, e.g. "Mardi 14/10/2025".
func (w Week) DayLabel(i int) string {
	return fmt.Sprintf("%s %s", WeekdayNames[i], FormatDate(w.Start.AddDate(0, 0, i)))
}

// Label renders the week header, e.g. "Semaine du 13/10/2025 au 17/10/2025".
func (w Week) Label() string {
	return fmt.Sprintf("Semaine du %s au %s", FormatDate(w.Start), FormatDate(w.End()))
}

// Key identifies the week in caches.
func (w Week) Key() string {
	return w.Start.Format("2006-01-02")
}
