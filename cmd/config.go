package cmd

import (
	"fmt"
	"strings"

	"edtctl/pkg/config"
	"edtctl/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage edtctl configuration",
	Long:  "View or edit your local configuration settings (username, theme, cache backend).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		setUser, _ := cmd.Flags().GetString("set-user")
		show, _ := cmd.Flags().GetBool("show")

		if setUser = strings.TrimSpace(setUser); setUser != "" {
			cfg.Username = setUser
			if err := config.Save(cfg); err != nil {
				return err
			}

			fmt.Printf("✅ Username successfully saved as: %s\n", setUser)
			return nil
		}

		if show {
			tui.PrintConfig(cfg)
			return nil
		}

		// If no flags are given, launch the interactive TUI flow
		return tui.RunConfigTUI()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringP("set-user", "u", "", "Set the username used to fetch your timetable")
	configCmd.Flags().Bool("show", false, "Print the effective configuration and exit")
}
