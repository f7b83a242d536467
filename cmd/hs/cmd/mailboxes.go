package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helpscout/helpscout-cli/internal/credstore"
	"github.com/helpscout/helpscout-cli/internal/helpscout"
)

var mailboxesPage int

var mailboxesCmd = &cobra.Command{
	Use:   "mailboxes",
	Short: "Work with mailboxes",
}

var mailboxesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the account's mailboxes",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _ := newClient()
		mailboxes, page, err := client.ListMailboxes(cmd.Context(), mailboxesPage)
		if err != nil {
			return err
		}
		return printJSON(struct {
			Mailboxes []helpscout.Mailbox `json:"mailboxes"`
			Page      helpscout.Page      `json:"page"`
		}{mailboxes, page})
	},
}

var mailboxesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single mailbox",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("mailbox", args[0])
		if err != nil {
			return err
		}
		client, _ := newClient()
		mailbox, err := client.GetMailbox(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(mailbox)
	},
}

var mailboxesUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Set the default mailbox for other commands",
	Long: `Persist a default mailbox ID. Commands that take --mailbox fall back to
this value when the flag is absent.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("mailbox", args[0])
		if err != nil {
			return err
		}

		// Verify the mailbox exists before persisting it.
		client, store := newClient()
		mailbox, err := client.GetMailbox(cmd.Context(), id)
		if err != nil {
			return err
		}
		if err := store.Set(credstore.FieldDefaultMailbox, args[0]); err != nil {
			return fmt.Errorf("store default mailbox: %w", err)
		}
		fmt.Printf("Default mailbox set to %s (%d).\n", mailbox.Name, mailbox.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mailboxesCmd)
	mailboxesCmd.AddCommand(mailboxesListCmd)
	mailboxesCmd.AddCommand(mailboxesGetCmd)
	mailboxesCmd.AddCommand(mailboxesUseCmd)

	mailboxesListCmd.Flags().IntVar(&mailboxesPage, "page", 0, "page number")
}
