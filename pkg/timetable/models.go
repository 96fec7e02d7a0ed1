package timetable

import "fmt"

// DaySchedule is one day of the scraped timetable
type DaySchedule struct {
	Date    string       `json:"date"` // Raw label e.g. "Lundi 13/10/2025"
	Courses []CourseSlot `json:"courses"`
}

// CourseSlot is a single course record as published on the timetable site
type CourseSlot struct {
	Subject    string `json:"subject"`
	Instructor string `json:"instructor"`
	Room       string `json:"room"`
	TimeRange  string `json:"time_range"` // "08:00-10:00", "08h00-10h00" or "08h-10h"
}

// sameBlock reports whether two records belong to the same course block.
func (c CourseSlot) sameBlock(o CourseSlot) bool {
	return c.Subject == o.Subject && c.Instructor == o.Instructor && c.Room == o.Room
}

const (
	// FirstSlotHour is the hour of the first row in the weekly grid.
	FirstSlotHour = 8
	// LastSlotHour is the hour of the last row in the weekly grid.
	LastSlotHour = 18
	// DaysPerWeek is the number of columns (Monday to Friday).
	DaysPerWeek = 5
)

// TimeSlots returns the hour labels of the weekly grid, "08:00" through "18:00".
func TimeSlots() []string {
	slots := make([]string, 0, LastSlotHour-FirstSlotHour+1)
	for h := FirstSlotHour; h <= LastSlotHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}
	return slots
}
