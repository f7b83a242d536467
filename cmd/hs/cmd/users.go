package cmd

import (
	"github.com/spf13/cobra"

	"github.com/helpscout/helpscout-cli/internal/helpscout"
)

var usersPage int

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Work with staff users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the account's users",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _ := newClient()
		users, page, err := client.ListUsers(cmd.Context(), usersPage)
		if err != nil {
			return err
		}
		return printJSON(struct {
			Users []helpscout.User `json:"users"`
			Page  helpscout.Page   `json:"page"`
		}{users, page})
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("user", args[0])
		if err != nil {
			return err
		}
		client, _ := newClient()
		user, err := client.GetUser(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(user)
	},
}

var usersMeCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _ := newClient()
		user, err := client.GetMe(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(user)
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersGetCmd)
	usersCmd.AddCommand(usersMeCmd)

	usersListCmd.Flags().IntVar(&usersPage, "page", 0, "page number")
}
