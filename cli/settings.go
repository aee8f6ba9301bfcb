package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	settingsWorkspaceName string
	settingsGreeting      string
	settingsSyncSchedule  string
	settingsRetentionDays int
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "View and change workspace settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the workspace settings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		settings, err := apiClient.Settings.Get(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(headerStyle.Render("Workspace settings"))
		fmt.Printf("  Workspace:      %s\n", settings.WorkspaceName)
		fmt.Printf("  Greeting:       %s\n", settings.GreetingText)
		fmt.Printf("  Sync schedule:  %s\n", settings.SyncSchedule)
		fmt.Printf("  Retention days: %d\n", settings.RetentionDays)
		fmt.Printf("  Allow signup:   %t\n", settings.AllowSignup)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update workspace settings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		settings, err := apiClient.Settings.Get(cmd.Context())
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("workspace-name") {
			settings.WorkspaceName = settingsWorkspaceName
		}
		if cmd.Flags().Changed("greeting") {
			settings.GreetingText = settingsGreeting
		}
		if cmd.Flags().Changed("sync-schedule") {
			settings.SyncSchedule = settingsSyncSchedule
		}
		if cmd.Flags().Changed("retention-days") {
			settings.RetentionDays = settingsRetentionDays
		}

		updated, err := apiClient.Settings.Update(cmd.Context(), *settings)
		if err != nil {
			return err
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("Settings updated for %s", updated.WorkspaceName)))
		return nil
	},
}

func init() {
	settingsSetCmd.Flags().StringVar(&settingsWorkspaceName, "workspace-name", "", "workspace display name")
	settingsSetCmd.Flags().StringVar(&settingsGreeting, "greeting", "", "assistant greeting text")
	settingsSetCmd.Flags().StringVar(&settingsSyncSchedule, "sync-schedule", "", "sync schedule (cron expression)")
	settingsSetCmd.Flags().IntVar(&settingsRetentionDays, "retention-days", 0, "sync log retention in days")
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
