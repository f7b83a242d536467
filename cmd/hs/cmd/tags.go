package cmd

import (
	"github.com/spf13/cobra"

	"github.com/helpscout/helpscout-cli/internal/helpscout"
)

var tagsPage int

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Work with account-level tags",
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the account's tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _ := newClient()
		tags, page, err := client.ListTags(cmd.Context(), tagsPage)
		if err != nil {
			return err
		}
		return printJSON(struct {
			Tags []helpscout.AccountTag `json:"tags"`
			Page helpscout.Page         `json:"page"`
		}{tags, page})
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
	tagsCmd.AddCommand(tagsListCmd)

	tagsListCmd.Flags().IntVar(&tagsPage, "page", 0, "page number")
}
