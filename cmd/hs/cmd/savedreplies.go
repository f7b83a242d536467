package cmd

import (
	"github.com/spf13/cobra"

	"github.com/helpscout/helpscout-cli/internal/errutil"
	"github.com/helpscout/helpscout-cli/internal/helpscout"
)

var (
	repliesMailbox string
	repliesPage    int
)

var savedRepliesCmd = &cobra.Command{
	Use:   "saved-replies",
	Short: "Work with a mailbox's saved replies",
}

var savedRepliesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a mailbox's saved replies",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, store := newClient()
		mailbox := resolveMailbox(repliesMailbox, store)
		if mailbox == "" {
			return errutil.NewCLIError("a mailbox is required; pass --mailbox or run 'hs mailboxes use'")
		}
		mailboxID, err := parseID("mailbox", mailbox)
		if err != nil {
			return err
		}

		replies, page, err := client.ListSavedReplies(cmd.Context(), mailboxID, repliesPage)
		if err != nil {
			return err
		}
		return printJSON(struct {
			SavedReplies []helpscout.SavedReply `json:"savedReplies"`
			Page         helpscout.Page         `json:"page"`
		}{replies, page})
	},
}

var savedRepliesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single saved reply with its body",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("saved reply", args[0])
		if err != nil {
			return err
		}

		client, store := newClient()
		mailbox := resolveMailbox(repliesMailbox, store)
		if mailbox == "" {
			return errutil.NewCLIError("a mailbox is required; pass --mailbox or run 'hs mailboxes use'")
		}
		mailboxID, err := parseID("mailbox", mailbox)
		if err != nil {
			return err
		}

		reply, err := client.GetSavedReply(cmd.Context(), mailboxID, id)
		if err != nil {
			return err
		}
		return printJSON(reply)
	},
}

func init() {
	rootCmd.AddCommand(savedRepliesCmd)
	savedRepliesCmd.AddCommand(savedRepliesListCmd)
	savedRepliesCmd.AddCommand(savedRepliesGetCmd)

	savedRepliesCmd.PersistentFlags().StringVar(&repliesMailbox, "mailbox", "", "mailbox ID (default: stored default mailbox)")
	savedRepliesListCmd.Flags().IntVar(&repliesPage, "page", 0, "page number")
}
