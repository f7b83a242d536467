package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helpscout/helpscout-cli/internal/errutil"
	"github.com/helpscout/helpscout-cli/internal/helpscout"
)

var (
	workflowsMailbox string
	workflowsPage    int
	runConversations []int64
)

var workflowsCmd = &cobra.Command{
	Use:   "workflows",
	Short: "Work with mailbox workflows",
}

var workflowsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workflows",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, store := newClient()
		workflows, page, err := client.ListWorkflows(cmd.Context(), resolveMailbox(workflowsMailbox, store), workflowsPage)
		if err != nil {
			return err
		}
		return printJSON(struct {
			Workflows []helpscout.Workflow `json:"workflows"`
			Page      helpscout.Page       `json:"page"`
		}{workflows, page})
	},
}

var workflowsRunCmd = &cobra.Command{
	Use:   "run <id>",
	Short: "Run a manual workflow on conversations",
	Long: `Run a manual workflow against one or more conversations.

Examples:
  hs workflows run 42 --conversation 100 --conversation 101`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("workflow", args[0])
		if err != nil {
			return err
		}
		if len(runConversations) == 0 {
			return errutil.NewCLIError("at least one --conversation is required")
		}

		client, _ := newClient()
		if err := client.RunWorkflow(cmd.Context(), id, runConversations); err != nil {
			return err
		}
		fmt.Printf("Workflow run on %d conversation(s).\n", len(runConversations))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(workflowsCmd)
	workflowsCmd.AddCommand(workflowsListCmd)
	workflowsCmd.AddCommand(workflowsRunCmd)

	workflowsListCmd.Flags().StringVar(&workflowsMailbox, "mailbox", "", "mailbox ID (default: stored default mailbox)")
	workflowsListCmd.Flags().IntVar(&workflowsPage, "page", 0, "page number")

	workflowsRunCmd.Flags().Int64SliceVar(&runConversations, "conversation", nil, "conversation ID to run against (repeatable)")
}
