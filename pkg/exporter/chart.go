package exporter

import (
	"fmt"
	"io"

	"edtctl/pkg/timetable"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WeeklyLoad is the number of course hours per weekday for one subject
type WeeklyLoad struct {
	Subject string
	Hours   [timetable.DaysPerWeek]float64
}

// LoadBySubject sums block hours per subject and weekday, subjects in order of first appearance.
func LoadBySubject(g timetable.Grid) []WeeklyLoad {
	index := make(map[string]int)
	var loads []WeeklyLoad

	for _, b := range g.Blocks() {
		if b.Day >= timetable.DaysPerWeek {
			continue
		}
		i, ok := index[b.Course.Subject]
		if !ok {
			i = len(loads)
			index[b.Course.Subject] = i
			loads = append(loads, WeeklyLoad{Subject: b.Course.Subject})
		}
		loads[i].Hours[b.Day] += timetable.BlockHours(b)
	}
	return loads
}

// GenerateChart renders a stacked bar chart of the week's hours per day and subject as HTML.
func GenerateChart(g timetable.Grid, w timetable.Week, out io.Writer) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: w.Label(),
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Heures de cours",
			Subtitle: w.Label(),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)

	bar.SetXAxis(timetable.WeekdayNames[:])
	for _, load := range LoadBySubject(g) {
		data := make([]opts.BarData, 0, len(load.Hours))
		for _, h := range load.Hours {
			data = append(data, opts.BarData{Value: h})
		}
		bar.AddSeries(load.Subject, data, charts.WithBarChartOpts(opts.BarChart{Stack: "hours"}))
	}

	if err := bar.Render(out); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
