package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-desk-client/api"
)

var (
	usersPage    int
	usersPerPage int
	usersRoleID  string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		list, err := apiClient.Users.List(cmd.Context(), api.ListOptions{
			Page:    usersPage,
			PerPage: usersPerPage,
		})
		if err != nil {
			return err
		}

		if len(list.Items) == 0 {
			fmt.Println(infoStyle.Render("No users."))
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("%-36s  %-20s  %-25s  %s", "ID", "USERNAME", "EMAIL", "ROLE")))
		for _, user := range list.Items {
			fmt.Printf("%-36s  %-20s  %-25s  %s\n", user.ID, user.Username, user.Email, user.Role)
		}
		return nil
	},
}

var usersSetRoleCmd = &cobra.Command{
	Use:   "set-role <user-id>",
	Short: "Assign a role to a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := apiClient.Users.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		user.RoleID = usersRoleID

		updated, err := apiClient.Users.Update(cmd.Context(), *user)
		if err != nil {
			return err
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("Updated %s, role is now %s", updated.Username, updated.Role)))
		return nil
	},
}

func init() {
	usersListCmd.Flags().IntVar(&usersPage, "page", 0, "page number")
	usersListCmd.Flags().IntVar(&usersPerPage, "per-page", 0, "items per page")
	usersSetRoleCmd.Flags().StringVar(&usersRoleID, "role-id", "", "role ID to assign")
	_ = usersSetRoleCmd.MarkFlagRequired("role-id")
	usersCmd.AddCommand(usersListCmd, usersSetRoleCmd)
	rootCmd.AddCommand(usersCmd)
}
