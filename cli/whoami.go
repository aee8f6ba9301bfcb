package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-desk-client/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, _ []string) error {
		profile, err := sessionManager.Profile()
		if errors.Is(err, session.ErrNoSession) {
			fmt.Println(warningStyle.Render("Not signed in."))
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Println(titleStyle.Render("Signed in"))
		fmt.Printf("  Username: %s\n", profile.Username)
		if profile.DisplayName != "" {
			fmt.Printf("  Name:     %s\n", profile.DisplayName)
		}
		if profile.Email != "" {
			fmt.Printf("  Email:    %s\n", profile.Email)
		}
		if profile.Role != "" {
			fmt.Printf("  Role:     %s\n", profile.Role)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
