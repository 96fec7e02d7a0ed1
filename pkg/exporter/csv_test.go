package exporter

import (
	"bytes"
	"strings"
	"testing"

	"edtctl/pkg/timetable"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCSV(t *testing.T) {
	days, week := testWeek()
	grid := timetable.BuildGrid(days, timetable.TimeSlots())

	var buf bytes.Buffer
	require.NoError(t, GenerateCSV(grid, week, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,day,start,end,subject,instructor,room,hours", lines[0])
	assert.Equal(t, "13/10/2025,Lundi,08:00,12:00,Potions,Severus Rogue,Cachot,4", lines[1])
	assert.Equal(t, "15/10/2025,Mercredi,14:00,15:30,Sortilèges,Filius Flitwick,Tour,1.5", lines[2])
}

func TestLoadBySubject(t *testing.T) {
	days, _ := testWeek()
	days[4].Courses = []timetable.CourseSlot{
		{Subject: "Potions", Instructor: "severus rogue", Room: "Cachot", TimeRange: "09:00-10:00"},
	}
	grid := timetable.BuildGrid(days, timetable.TimeSlots())

	loads := LoadBySubject(grid)
	require.Len(t, loads, 2)
	assert.Equal(t, "Potions", loads[0].Subject)
	assert.Equal(t, [timetable.DaysPerWeek]float64{4, 0, 0, 0, 1}, loads[0].Hours)
	assert.Equal(t, "Sortilèges", loads[1].Subject)
	assert.Equal(t, 1.5, loads[1].Hours[2])
}

func TestGenerateChart(t *testing.T) {
	days, week := testWeek()
	grid := timetable.BuildGrid(days, timetable.TimeSlots())

	var buf bytes.Buffer
	require.NoError(t, GenerateChart(grid, week, &buf))

	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "Potions")
	assert.Contains(t, html, "Lundi")
}
