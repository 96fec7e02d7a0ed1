package timetable

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Accepts "08:00-10:00", "08h00-10h00", "8h-10h" and tolerates spaces around the dash.
var timeRangePattern = regexp.MustCompile(`^\s*(\d{1,2})\s*[:hH]\s*(\d{2})?\s*-\s*(\d{1,2})\s*[:hH]\s*(\d{2})?`)

var slotLabelPattern = regexp.MustCompile(`^\s*(\d{1,2})\s*[:hH]`)

// TimeRange is a parsed course time range. Slot membership only looks at the hours.
type TimeRange struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// ParseTimeRange extracts the start and end of a course time range string.
// It returns false if the string doesn't match or if the range is reversed.
func ParseTimeRange(s string) (TimeRange, bool) {
	m := timeRangePattern.FindStringSubmatch(s)
	if m == nil {
		return TimeRange{}, false
	}

	r := TimeRange{
		StartHour:   atoi(m[1]),
		StartMinute: atoi(m[2]),
		EndHour:     atoi(m[3]),
		EndMinute:   atoi(m[4]),
	}

	if r.StartHour > 23 || r.EndHour > 24 || r.StartMinute > 59 || r.EndMinute > 59 {
		return TimeRange{}, false
	}
	if r.StartHour > r.EndHour {
		return TimeRange{}, false
	}
	return r, true
}

// Covers reports whether the hour falls inside [StartHour, EndHour). Minutes are
// ignored, so a range that starts and ends within the same hour covers nothing.
func (r TimeRange) Covers(hour int) bool {
	return hour >= r.StartHour && hour < r.EndHour
}

// Duration is the length of the range including minutes.
func (r TimeRange) Duration() time.Duration {
	start := r.StartHour*60 + r.StartMinute
	end := r.EndHour*60 + r.EndMinute
	if end < start {
		return 0
	}
	return time.Duration(end-start) * time.Minute
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", r.StartHour, r.StartMinute, r.EndHour, r.EndMinute)
}

// slotHour returns the hour of a grid label such as "09:00".
func slotHour(label string) (int, bool) {
	m := slotLabelPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	return atoi(m[1]), true
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
