package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Manage roles",
}

var rolesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List roles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		roles, err := apiClient.Roles.List(cmd.Context())
		if err != nil {
			return err
		}

		if len(roles) == 0 {
			fmt.Println(infoStyle.Render("No roles."))
			return nil
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("%-36s  %-20s  %s", "ID", "NAME", "PERMISSIONS")))
		for _, role := range roles {
			fmt.Printf("%-36s  %-20s  %s\n", role.ID, role.Name, strings.Join(role.Permissions, ", "))
		}
		return nil
	},
}

var rolesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := apiClient.Roles.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Deleted."))
		return nil
	},
}

func init() {
	rolesCmd.AddCommand(rolesListCmd, rolesDeleteCmd)
	rootCmd.AddCommand(rolesCmd)
}
