package cmd

import (
	"context"
	"fmt"
	"time"

	"edtctl/pkg/config"
	"edtctl/pkg/scraper"
	"edtctl/pkg/timetable"
	"edtctl/pkg/tui"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

// addWeekFlags registers the flags selecting which week a command works on
func addWeekFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("date", "d", "", "Any day of the week to show (format: DD/MM/YYYY), defaults to today")
	cmd.Flags().Int("next", 0, "Move forward this many weeks")
	cmd.Flags().Int("prev", 0, "Move back this many weeks")
}

func selectedWeek(cmd *cobra.Command) (timetable.Week, error) {
	dateStr, _ := cmd.Flags().GetString("date")
	next, _ := cmd.Flags().GetInt("next")
	prev, _ := cmd.Flags().GetInt("prev")

	date := time.Now()
	if dateStr != "" {
		parsed, err := timetable.ParseDate(dateStr)
		if err != nil {
			return timetable.Week{}, err
		}
		date = parsed
	}

	return timetable.WeekOf(date).Shift(next - prev), nil
}

// fetchGrid downloads the week and builds its merged grid, showing a spinner meanwhile
func fetchGrid(ctx context.Context, week timetable.Week) (timetable.Grid, error) {
	cfg, err := config.Load()
	if err != nil {
		return timetable.Grid{}, err
	}
	if cfg.Username == "" {
		return timetable.Grid{}, fmt.Errorf("no username configured, run 'edtctl config --set-user <name>' or set EDT_USERNAME")
	}

	client, err := scraper.NewClientFromConfig(ctx, cfg)
	if err != nil {
		return timetable.Grid{}, err
	}

	var days []timetable.DaySchedule
	_ = spinner.New().
		Title(fmt.Sprintf("Fetching timetable for %s...", week.Label())).
		Action(func() {
			days, err = client.FetchWeek(ctx, week.Start)
		}).
		Run()

	if err != nil {
		return timetable.Grid{}, fmt.Errorf("failed to fetch timetable: %w", err)
	}

	return timetable.BuildGrid(days, timetable.TimeSlots()), nil
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Print the timetable of a week",
	Long:  `Fetch the week containing the given date and print it as a grid where consecutive courses are merged into one block.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		week, err := selectedWeek(cmd)
		if err != nil {
			return err
		}
		list, _ := cmd.Flags().GetBool("list")

		grid, err := fetchGrid(cmd.Context(), week)
		if err != nil {
			return err
		}

		fmt.Println(week.Label())
		if list {
			fmt.Println(tui.RenderDays(grid))
		} else {
			fmt.Println(tui.RenderGrid(grid))
		}
		fmt.Println()
		fmt.Println(tui.RenderSummary(grid))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(weekCmd)
	addWeekFlags(weekCmd)
	weekCmd.Flags().BoolP("list", "l", false, "Print one line per course block instead of the grid")
}
