package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the desk server",
	Long:  "Signs in with username and password and stores the issued tokens in the local credential file.",
	RunE:  runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username to sign in with")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (prompted when omitted)")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if err := promptForMissingCredentials(); err != nil {
		return err
	}

	if err := sessionManager.SignIn(cmd.Context(), loginUsername, loginPassword); err != nil {
		fmt.Println(errorStyle.Render("Sign in failed."))
		return err
	}

	profile, err := sessionManager.Profile()
	if err != nil {
		return err
	}

	name := profile.DisplayName
	if name == "" {
		name = profile.Username
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("Signed in as %s", name)))
	return nil
}

func promptForMissingCredentials() error {
	var fields []huh.Field
	if loginUsername == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(&loginUsername))
	}
	if loginPassword == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&loginPassword))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}
