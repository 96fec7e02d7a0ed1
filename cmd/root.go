package cmd

import (
	"context"
	"fmt"
	"os"

	"edtctl/pkg/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "edtctl",
	Short: "A CLI and TUI for Wigor timetables",
	Long: `edtctl is an application for students to browse their weekly timetable
from the terminal, with consecutive courses merged into single blocks,
and export it to .ics, .csv or an HTML chart.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level, _ := cmd.Flags().GetString("log-level")
		if verbose {
			level = "debug"
		}
		logger.Configure(logger.Config{Level: level, Pretty: true})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
}
