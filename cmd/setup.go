package cmd

import (
	"fmt"
	"strings"

	"parley/database"
	"parley/logger"

	"github.com/spf13/cobra"
)

var setupInstanceName string

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Runs first-time setup from the command line",
	Long: `Initializes the database (via the normal startup path) and marks setup as
complete with the given instance name. Equivalent to POST /api/setup/complete.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		complete, err := database.GetSetting(database.SettingSetupComplete, "false")
		if err != nil {
			return fmt.Errorf("reading setup state: %w", err)
		}
		if complete == "true" {
			name, _ := database.GetSetting(database.SettingInstanceName, "")
			fmt.Printf("Setup already completed (instance name: %q).\n", name)
			return nil
		}

		name := strings.TrimSpace(setupInstanceName)
		if name == "" {
			return fmt.Errorf("--name is required for first-time setup")
		}

		if err := database.SetSetting(database.SettingInstanceName, name); err != nil {
			return fmt.Errorf("recording instance name: %w", err)
		}
		if err := database.SetSetting(database.SettingSetupComplete, "true"); err != nil {
			return fmt.Errorf("recording setup flag: %w", err)
		}

		logger.Info("Setup completed from CLI, instance name '%s'", name)
		fmt.Printf("Setup complete. Instance name: %q.\n", name)
		fmt.Println("The first user to log in via OAuth becomes the admin.")
		return nil
	},
}

func init() {
	setupCmd.Flags().StringVar(&setupInstanceName, "name", "", "instance name to record")
	rootCmd.AddCommand(setupCmd)
}
