package exporter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"edtctl/pkg/timetable"
)

func testWeek() ([]timetable.DaySchedule, timetable.Week) {
	week := timetable.WeekOf(time.Date(2025, 10, 13, 0, 0, 0, 0, time.Local))
	days := make([]timetable.DaySchedule, timetable.DaysPerWeek)
	for i := range days {
		days[i].Date = week.DayLabel(i)
	}
	days[0].Courses = []timetable.CourseSlot{
		{Subject: "Potions", Instructor: "severus rogue", Room: "Cachot", TimeRange: "08:00-10:00"},
		{Subject: "Potions", Instructor: "severus rogue", Room: "Cachot", TimeRange: "10:00-12:00"},
	}
	days[2].Courses = []timetable.CourseSlot{
		{Subject: "Sortilèges", Instructor: "Filius Flitwick", Room: "Tour", TimeRange: "14h00-15h30"},
	}
	return days, week
}

func TestGenerateICS(t *testing.T) {
	days, week := testWeek()
	grid := timetable.BuildGrid(days, timetable.TimeSlots())

	var buf bytes.Buffer
	if err := GenerateICS(grid, week, &buf); err != nil {
		t.Fatalf("GenerateICS failed: %v", err)
	}

	output := buf.String()

	if got := strings.Count(output, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("Expected one event per merged block (2), got %d", got)
	}

	if !strings.Contains(output, "SUMMARY:Potions") {
		t.Errorf("Expected ICS to contain course summary, got: \n%s", output)
	}

	if !strings.Contains(output, "LOCATION:Cachot") {
		t.Errorf("Expected ICS to contain room location")
	}

	if !strings.Contains(output, "Severus Rogue") {
		t.Errorf("Expected formatted instructor in description, got: \n%s", output)
	}

	// 13-Oct-2025 08:00 Paris time is 06:00 UTC, the merged block ends at 12:00 (10:00 UTC).
	if !strings.Contains(output, "DTSTART:20251013T060000Z") {
		t.Errorf("Expected start time string in ICS (should be UTC), got: \n%s", output)
	}
	if !strings.Contains(output, "DTEND:20251013T100000Z") {
		t.Errorf("Expected merged end time in ICS, got: \n%s", output)
	}

	// Minutes are kept: 14:00-15:30 on Wednesday 15-Oct.
	if !strings.Contains(output, "DTEND:20251015T133000Z") {
		t.Errorf("Expected 15:30 end time in ICS, got: \n%s", output)
	}
}

func TestGenerateICS_StableIDs(t *testing.T) {
	days, week := testWeek()
	grid := timetable.BuildGrid(days, timetable.TimeSlots())

	var first, second bytes.Buffer
	if err := GenerateICS(grid, week, &first); err != nil {
		t.Fatalf("GenerateICS failed: %v", err)
	}
	if err := GenerateICS(grid, week, &second); err != nil {
		t.Fatalf("GenerateICS failed: %v", err)
	}

	uids := func(s string) []string {
		var out []string
		for _, line := range strings.Split(s, "\n") {
			if strings.HasPrefix(line, "UID:") {
				out = append(out, strings.TrimSpace(line))
			}
		}
		return out
	}

	a, b := uids(first.String()), uids(second.String())
	if len(a) != 2 || len(b) != 2 {
		t.Fatalf("expected 2 UIDs per export, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("expected UIDs to be stable, got %q and %q", a[i], b[i])
		}
	}
}
