package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove stored credentials",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := sessionManager.SignOut(); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Signed out."))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
