package cmd

import (
	"github.com/spf13/cobra"

	"github.com/helpscout/helpscout-cli/internal/credstore"
	mcpserver "github.com/helpscout/helpscout-cli/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP server for AI assistant integration",
	Long: `Start an MCP (Model Context Protocol) server over stdio.

This lets Claude Desktop (or any MCP client) query the helpdesk using
tools like list_conversations, search_conversations, and
conversation_summary.

Add to Claude Desktop config:
  {
    "mcpServers": {
      "helpscout": {
        "command": "hs",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, store := newClient()
		defaultMailbox, _ := store.Get(credstore.FieldDefaultMailbox)
		return mcpserver.Serve(cmd.Context(), client, defaultMailbox)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
