package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-desk-client/api"
)

var (
	syncLogsStatus  string
	syncLogsPage    int
	syncLogsPerPage int
)

var syncLogsCmd = &cobra.Command{
	Use:   "synclogs",
	Short: "Show the document synchronisation log",
	RunE: func(cmd *cobra.Command, _ []string) error {
		list, err := apiClient.SyncLogs.List(cmd.Context(), api.SyncLogListOptions{
			ListOptions: api.ListOptions{Page: syncLogsPage, PerPage: syncLogsPerPage},
			Status:      syncLogsStatus,
		})
		if err != nil {
			return err
		}

		if len(list.Items) == 0 {
			fmt.Println(infoStyle.Render("No sync log entries."))
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("%-36s  %-10s  %-19s  %s", "ID", "STATUS", "STARTED", "MESSAGE")))
		for _, entry := range list.Items {
			status := entry.Status
			switch status {
			case api.SyncStatusFailed:
				status = failedStyle.Render(status)
			case api.SyncStatusSucceeded:
				status = activeStyle.Render(status)
			}
			fmt.Printf("%-36s  %-10s  %-19s  %s\n", entry.ID, status, entry.StartedAt.Format("2006-01-02 15:04:05"), entry.Message)
		}
		return nil
	},
}

func init() {
	syncLogsCmd.Flags().StringVar(&syncLogsStatus, "status", "", "filter by status (running, succeeded, failed)")
	syncLogsCmd.Flags().IntVar(&syncLogsPage, "page", 0, "page number")
	syncLogsCmd.Flags().IntVar(&syncLogsPerPage, "per-page", 0, "items per page")
	rootCmd.AddCommand(syncLogsCmd)
}
