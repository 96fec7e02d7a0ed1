package cmd

import (
	"fmt"
	"os"

	"edtctl/pkg/exporter"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Directly export a week to an ICS or CSV file",
	Long:  `Export the merged course blocks of a week without using the interactive TUI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		if format != "ics" && format != "csv" {
			return fmt.Errorf("unknown format %q, expected ics or csv", format)
		}

		week, err := selectedWeek(cmd)
		if err != nil {
			return err
		}
		if output == "" {
			output = fmt.Sprintf("edt-%s.%s", week.Key(), format)
		}

		grid, err := fetchGrid(cmd.Context(), week)
		if err != nil {
			return err
		}

		if grid.BlockCount() == 0 {
			return fmt.Errorf("no courses found for the %s", week.Label())
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if format == "csv" {
			err = exporter.GenerateCSV(grid, week, file)
		} else {
			err = exporter.GenerateICS(grid, week, file)
		}
		if err != nil {
			return fmt.Errorf("failed to generate %s: %w", format, err)
		}

		fmt.Printf("Successfully exported %d course blocks to %s\n", grid.BlockCount(), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addWeekFlags(exportCmd)

	exportCmd.Flags().StringP("format", "f", "ics", "Output format (ics or csv)")
	exportCmd.Flags().StringP("output", "o", "", "Output file path, defaults to edt-<monday>.<format>")
}
