package tui

import (
	"strings"
	"testing"
	"time"

	"edtctl/pkg/timetable"

	"github.com/stretchr/testify/assert"
)

func renderWeek(monday ...timetable.CourseSlot) timetable.Grid {
	week := timetable.WeekOf(time.Date(2025, 10, 13, 0, 0, 0, 0, time.Local))
	days := make([]timetable.DaySchedule, timetable.DaysPerWeek)
	for i := range days {
		days[i].Date = week.DayLabel(i)
	}
	days[0].Courses = monday
	return timetable.BuildGrid(days, timetable.TimeSlots())
}

func potions(r string) timetable.CourseSlot {
	return timetable.CourseSlot{Subject: "Potions", Instructor: "severus rogue", Room: "Cachot", TimeRange: r}
}

func TestRenderGrid_MergedBlockDrawnOnce(t *testing.T) {
	grid := renderWeek(potions("08:00-10:00"), potions("10:00-12:00"))

	out := RenderGrid(grid)

	assert.Equal(t, 1, strings.Count(out, "Potions"))
	assert.Contains(t, out, "08:00-12:00")
	assert.Contains(t, out, "Severus Rogue")
	assert.Contains(t, out, "Lundi 13/10/2025")
	assert.Len(t, strings.Split(out, "\n"), 1+len(timetable.TimeSlots()))
}

func TestRenderGrid_GapDrawsTwoBlocks(t *testing.T) {
	grid := renderWeek(potions("08:00-10:00"), potions("11:00-12:00"))

	out := RenderGrid(grid)

	assert.Equal(t, 2, strings.Count(out, "Potions"))
}

func TestRenderGrid_SingleRowBlockShowsSubject(t *testing.T) {
	grid := renderWeek(potions("09:00-10:00"))

	out := RenderGrid(grid)

	assert.Contains(t, out, "Potions")
	assert.NotContains(t, out, "Cachot")
}

func TestRenderDays(t *testing.T) {
	grid := renderWeek(potions("08:00-10:00"), potions("10:00-12:00"))

	out := RenderDays(grid)

	assert.Contains(t, out, "08:00-12:00  Potions - Severus Rogue (Cachot)")
	assert.Equal(t, 4, strings.Count(out, "Aucun cours ce jour"))
}

func TestRenderDays_EmptyWeek(t *testing.T) {
	out := RenderDays(renderWeek())

	assert.Contains(t, out, "Aucun cours trouvé pour cette date")
}

func TestRenderSummary(t *testing.T) {
	grid := renderWeek(potions("08:00-10:00"), potions("10:00-12:00"), potions("14:00-15:30"))

	out := RenderSummary(grid)

	assert.Contains(t, out, "2 cours cette semaine")
	assert.Contains(t, out, "2 bloc(s), 5.5h")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Potions", truncate("Potions", 10))
	assert.Equal(t, "Défense c…", truncate("Défense contre les forces du mal", 10))
	assert.Equal(t, "D", truncate("Défense", 1))
}
