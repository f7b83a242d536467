package cmd

import (
	"github.com/spf13/cobra"

	"github.com/helpscout/helpscout-cli/internal/helpscout"
)

var teamsPage int

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Work with teams",
}

var teamsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the account's teams",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _ := newClient()
		teams, page, err := client.ListTeams(cmd.Context(), teamsPage)
		if err != nil {
			return err
		}
		return printJSON(struct {
			Teams []helpscout.Team `json:"teams"`
			Page  helpscout.Page   `json:"page"`
		}{teams, page})
	},
}

var teamsMembersCmd = &cobra.Command{
	Use:   "members <team-id>",
	Short: "List a team's members",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("team", args[0])
		if err != nil {
			return err
		}
		client, _ := newClient()
		members, page, err := client.ListTeamMembers(cmd.Context(), id, teamsPage)
		if err != nil {
			return err
		}
		return printJSON(struct {
			Members []helpscout.User `json:"members"`
			Page    helpscout.Page   `json:"page"`
		}{members, page})
	},
}

func init() {
	rootCmd.AddCommand(teamsCmd)
	teamsCmd.AddCommand(teamsListCmd)
	teamsCmd.AddCommand(teamsMembersCmd)

	teamsListCmd.Flags().IntVar(&teamsPage, "page", 0, "page number")
	teamsMembersCmd.Flags().IntVar(&teamsPage, "page", 0, "page number")
}
