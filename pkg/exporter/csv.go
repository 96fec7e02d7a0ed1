package exporter

import (
	"fmt"
	"io"
	"strconv"

	"edtctl/pkg/timetable"

	"github.com/gocarina/gocsv"
)

// BlockRow is one merged course block in the CSV export
type BlockRow struct {
	Date       string `csv:"date"`
	Day        string `csv:"day"`
	Start      string `csv:"start"`
	End        string `csv:"end"`
	Subject    string `csv:"subject"`
	Instructor string `csv:"instructor"`
	Room       string `csv:"room"`
	Hours      string `csv:"hours"`
}

// BlockRows flattens the grid into CSV rows, Monday first.
func BlockRows(g timetable.Grid, w timetable.Week) []BlockRow {
	blocks := g.Blocks()
	rows := make([]BlockRow, 0, len(blocks))

	for _, b := range blocks {
		if b.Day >= timetable.DaysPerWeek {
			continue
		}
		r := g.Interval(b)
		rows = append(rows, BlockRow{
			Date:       timetable.FormatDate(w.Start.AddDate(0, 0, b.Day)),
			Day:        timetable.WeekdayNames[b.Day],
			Start:      fmt.Sprintf("%02d:%02d", r.StartHour, r.StartMinute),
			End:        fmt.Sprintf("%02d:%02d", r.EndHour, r.EndMinute),
			Subject:    b.Course.Subject,
			Instructor: timetable.FormatInstructor(b.Course.Instructor),
			Room:       b.Course.Room,
			Hours:      strconv.FormatFloat(timetable.BlockHours(b), 'f', -1, 64),
		})
	}
	return rows
}

// GenerateCSV writes the merged blocks of the week as CSV with a header line.
func GenerateCSV(g timetable.Grid, w timetable.Week, out io.Writer) error {
	rows := BlockRows(g, w)
	if err := gocsv.Marshal(&rows, out); err != nil {
		return fmt.Errorf("could not write CSV: %w", err)
	}
	return nil
}
