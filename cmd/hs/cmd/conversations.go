package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helpscout/helpscout-cli/internal/errutil"
	"github.com/helpscout/helpscout-cli/internal/helpscout"
	"github.com/helpscout/helpscout-cli/internal/summary"
)

var (
	convMailbox string
	convStatus  string
	convTag     string
	convQuery   string
	convPage    int
	convAll     bool
	convSummary bool

	getThreads bool

	createMailbox string
	createSubject string
	createBody    string
	createStatus  string
	createEmail   string
	createFirst   string
	createLast    string
	createTags    []string
	createAsDraft bool

	updateSubject string
	updateStatus  string
	updateMailbox string
)

var conversationsCmd = &cobra.Command{
	Use:     "conversations",
	Aliases: []string{"convs"},
	Short:   "Work with helpdesk conversations",
}

var conversationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations",
	Long: `List conversations, optionally filtered by mailbox, status, tag, or a
search query.

By default one page is returned along with page metadata. --all walks every
page; --summary walks every page with threads embedded and prints participant
and aggregate statistics instead of the raw conversations.

Examples:
  hs conversations list --status active
  hs conversations list --mailbox 123 --tag billing --all
  hs conversations list --summary`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, store := newClient()
		opts := helpscout.ListConversationsOptions{
			Mailbox: resolveMailbox(convMailbox, store),
			Status:  convStatus,
			Tag:     convTag,
			Query:   convQuery,
			Page:    convPage,
		}

		if convSummary {
			opts.EmbedThreads = true
			convs, err := client.ListAllConversations(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printJSON(summary.Summarize(convs))
		}

		if convAll {
			convs, err := client.ListAllConversations(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printJSON(convs)
		}

		convs, page, err := client.ListConversations(cmd.Context(), opts)
		if err != nil {
			return err
		}
		return printJSON(struct {
			Conversations []helpscout.Conversation `json:"conversations"`
			Page          helpscout.Page           `json:"page"`
		}{convs, page})
	},
}

var conversationsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("conversation", args[0])
		if err != nil {
			return err
		}
		client, _ := newClient()
		conv, err := client.GetConversation(cmd.Context(), id, getThreads)
		if err != nil {
			return err
		}
		return printJSON(conv)
	},
}

var conversationsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a conversation",
	Long: `Create a conversation with an initial customer thread.

Examples:
  hs conversations create --mailbox 123 --subject "Refund" \
    --customer-email alice@example.com --body "Please refund order 42"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, store := newClient()

		mailbox := resolveMailbox(createMailbox, store)
		if mailbox == "" {
			return errutil.NewCLIError("a mailbox is required; pass --mailbox or run 'hs mailboxes use'")
		}
		mailboxID, err := parseID("mailbox", mailbox)
		if err != nil {
			return err
		}
		if createSubject == "" || createEmail == "" || createBody == "" {
			return errutil.NewCLIError("--subject, --customer-email and --body are required")
		}

		status := createStatus
		if createAsDraft {
			status = "pending"
		}
		customer := &helpscout.Person{
			FirstName: createFirst,
			LastName:  createLast,
			Email:     createEmail,
		}
		req := helpscout.CreateConversationRequest{
			Subject:   createSubject,
			MailboxID: mailboxID,
			Type:      "email",
			Status:    status,
			Customer:  customer,
			Threads: []helpscout.NewThread{{
				Type:     helpscout.ThreadTypeCustomer,
				Customer: customer,
				Text:     createBody,
			}},
			Tags: createTags,
		}
		if err := client.CreateConversation(cmd.Context(), req); err != nil {
			return err
		}
		fmt.Println("Conversation created.")
		return nil
	},
}

var conversationsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a conversation field",
	Long: `Update one conversation field via a patch operation.

Exactly one of --subject, --status, or --mailbox must be given.

Examples:
  hs conversations update 123 --status closed
  hs conversations update 123 --subject "New subject"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("conversation", args[0])
		if err != nil {
			return err
		}
		op, err := buildPatch(updateSubject, updateStatus, updateMailbox)
		if err != nil {
			return err
		}

		client, _ := newClient()
		if err := client.UpdateConversation(cmd.Context(), id, op); err != nil {
			return err
		}
		fmt.Println("Conversation updated.")
		return nil
	},
}

var conversationsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("conversation", args[0])
		if err != nil {
			return err
		}
		client, _ := newClient()
		if err := client.DeleteConversation(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println("Conversation deleted.")
		return nil
	},
}

var conversationsTagCmd = &cobra.Command{
	Use:   "tag <id> [tag...]",
	Short: "Replace a conversation's tags",
	Long: `Replace the conversation's full tag list with the given tags. With no
tags, all tags are removed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("conversation", args[0])
		if err != nil {
			return err
		}
		tags := args[1:]
		if tags == nil {
			tags = []string{}
		}

		client, _ := newClient()
		if err := client.UpdateConversationTags(cmd.Context(), id, tags); err != nil {
			return err
		}
		fmt.Printf("Tags updated (%d).\n", len(tags))
		return nil
	},
}

var conversationsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search conversations across all result pages",
	Long: `Search conversations using Help Scout query syntax, walking every result
page.

Examples:
  hs conversations search 'email:alice@example.com'
  hs conversations search 'subject:"refund" AND tag:vip'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, store := newClient()
		opts := helpscout.ListConversationsOptions{
			Mailbox: resolveMailbox(convMailbox, store),
			Status:  convStatus,
			Query:   args[0],
		}
		convs, err := client.ListAllConversations(cmd.Context(), opts)
		if err != nil {
			return err
		}
		return printJSON(struct {
			Total         int                      `json:"total"`
			Conversations []helpscout.Conversation `json:"conversations"`
		}{len(convs), convs})
	},
}

// buildPatch maps update flags onto the API's patch shape. Exactly one field
// may be set.
func buildPatch(subject, status, mailbox string) (helpscout.PatchOp, error) {
	var ops []helpscout.PatchOp
	if subject != "" {
		ops = append(ops, helpscout.PatchOp{Op: "replace", Path: "/subject", Value: subject})
	}
	if status != "" {
		ops = append(ops, helpscout.PatchOp{Op: "replace", Path: "/status", Value: status})
	}
	if mailbox != "" {
		id, err := parseID("mailbox", mailbox)
		if err != nil {
			return helpscout.PatchOp{}, err
		}
		ops = append(ops, helpscout.PatchOp{Op: "move", Path: "/mailboxId", Value: id})
	}
	if len(ops) != 1 {
		return helpscout.PatchOp{}, errutil.NewCLIError("exactly one of --subject, --status, or --mailbox must be given")
	}
	return ops[0], nil
}

func init() {
	rootCmd.AddCommand(conversationsCmd)
	conversationsCmd.AddCommand(conversationsListCmd)
	conversationsCmd.AddCommand(conversationsGetCmd)
	conversationsCmd.AddCommand(conversationsCreateCmd)
	conversationsCmd.AddCommand(conversationsUpdateCmd)
	conversationsCmd.AddCommand(conversationsDeleteCmd)
	conversationsCmd.AddCommand(conversationsTagCmd)
	conversationsCmd.AddCommand(conversationsSearchCmd)

	conversationsListCmd.Flags().StringVar(&convMailbox, "mailbox", "", "mailbox ID (default: stored default mailbox)")
	conversationsListCmd.Flags().StringVar(&convStatus, "status", "", "filter by status (active, open, pending, closed, spam, all)")
	conversationsListCmd.Flags().StringVar(&convTag, "tag", "", "filter by tag name")
	conversationsListCmd.Flags().StringVar(&convQuery, "query", "", "search query")
	conversationsListCmd.Flags().IntVar(&convPage, "page", 0, "page number")
	conversationsListCmd.Flags().BoolVar(&convAll, "all", false, "walk every page")
	conversationsListCmd.Flags().BoolVar(&convSummary, "summary", false, "print participant and aggregate statistics")

	conversationsGetCmd.Flags().BoolVar(&getThreads, "threads", false, "include the conversation's threads")

	conversationsCreateCmd.Flags().StringVar(&createMailbox, "mailbox", "", "mailbox ID (default: stored default mailbox)")
	conversationsCreateCmd.Flags().StringVar(&createSubject, "subject", "", "conversation subject")
	conversationsCreateCmd.Flags().StringVar(&createBody, "body", "", "initial message body")
	conversationsCreateCmd.Flags().StringVar(&createStatus, "status", "active", "initial status")
	conversationsCreateCmd.Flags().StringVar(&createEmail, "customer-email", "", "customer email address")
	conversationsCreateCmd.Flags().StringVar(&createFirst, "customer-first", "", "customer first name")
	conversationsCreateCmd.Flags().StringVar(&createLast, "customer-last", "", "customer last name")
	conversationsCreateCmd.Flags().StringSliceVar(&createTags, "tag", nil, "tag to apply (repeatable)")
	conversationsCreateCmd.Flags().BoolVar(&createAsDraft, "draft", false, "create as pending instead of active")

	conversationsUpdateCmd.Flags().StringVar(&updateSubject, "subject", "", "new subject")
	conversationsUpdateCmd.Flags().StringVar(&updateStatus, "status", "", "new status")
	conversationsUpdateCmd.Flags().StringVar(&updateMailbox, "mailbox", "", "move to mailbox ID")

	conversationsSearchCmd.Flags().StringVar(&convMailbox, "mailbox", "", "mailbox ID (default: stored default mailbox)")
	conversationsSearchCmd.Flags().StringVar(&convStatus, "status", "", "filter by status")
}
