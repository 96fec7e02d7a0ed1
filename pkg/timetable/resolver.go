package timetable

import "strings"

// CourseAt returns the course whose time range covers the hour of the given slot label.
//
// When none of the day's ranges can be parsed, the label is matched literally against the
// beginning of each TimeRange instead, so "09:00" still finds a course published as "09:00".
func CourseAt(courses []CourseSlot, label string) (CourseSlot, bool) {
	hour, hourOK := slotHour(label)

	anyParsed := false
	for _, c := range courses {
		r, ok := ParseTimeRange(c.TimeRange)
		if !ok {
			continue
		}
		anyParsed = true
		if hourOK && r.Covers(hour) {
			return c, true
		}
	}

	if anyParsed || label == "" {
		return CourseSlot{}, false
	}

	for _, c := range courses {
		if strings.HasPrefix(strings.TrimSpace(c.TimeRange), label) {
			return c, true
		}
	}
	return CourseSlot{}, false
}
