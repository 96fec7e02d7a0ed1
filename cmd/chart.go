package cmd

import (
	"fmt"
	"os"

	"edtctl/pkg/exporter"

	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render the hours per day of a week as an HTML bar chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		week, err := selectedWeek(cmd)
		if err != nil {
			return err
		}

		grid, err := fetchGrid(cmd.Context(), week)
		if err != nil {
			return err
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if err := exporter.GenerateChart(grid, week, file); err != nil {
			return err
		}

		fmt.Printf("Chart generated: %s\n", output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	addWeekFlags(chartCmd)
	chartCmd.Flags().StringP("output", "o", "chart.html", "Output file path")
}
