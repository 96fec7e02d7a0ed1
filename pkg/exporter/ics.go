package exporter

import (
	"fmt"
	"io"
	"time"

	"edtctl/pkg/timetable"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

// Location is the timezone course times are published in
const Location = "Europe/Paris"

// blockTimes returns the start and end of a block on its day in loc.
func blockTimes(g timetable.Grid, b timetable.Block, w timetable.Week, loc *time.Location) (time.Time, time.Time) {
	day := w.Start.AddDate(0, 0, b.Day)
	r := g.Interval(b)

	start := time.Date(day.Year(), day.Month(), day.Day(), r.StartHour, r.StartMinute, 0, 0, loc)
	end := time.Date(day.Year(), day.Month(), day.Day(), r.EndHour, r.EndMinute, 0, 0, loc)
	return start, end
}

// eventID is stable across exports so calendar apps update events instead of duplicating them.
func eventID(start time.Time, c timetable.CourseSlot) string {
	name := fmt.Sprintf("%s|%s|%s|%s", start.UTC().Format(time.RFC3339), c.Subject, c.Instructor, c.Room)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String() + "@edtctl"
}

// GenerateICS writes one event per merged course block of the week.
func GenerateICS(g timetable.Grid, w timetable.Week, out io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//edtctl//Emploi du temps//FR")

	loc, err := time.LoadLocation(Location)
	if err != nil {
		return fmt.Errorf("could not load timezone: %w", err)
	}

	now := time.Now()
	for _, b := range g.Blocks() {
		if b.Day >= timetable.DaysPerWeek {
			continue
		}
		start, end := blockTimes(g, b, w, loc)

		event := cal.AddEvent(eventID(start, b.Course))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetModifiedAt(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(b.Course.Subject)
		if b.Course.Room != "" {
			event.SetLocation(b.Course.Room)
		}
		if b.Course.Instructor != "" {
			event.SetDescription("Intervenant: " + timetable.FormatInstructor(b.Course.Instructor))
		}
	}

	return cal.SerializeTo(out)
}
