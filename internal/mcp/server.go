// Package mcp exposes conversation tools over the Model Context Protocol.
package mcp

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/helpscout/helpscout-cli/internal/helpscout"
)

// Tool name constants.
const (
	ToolListConversations   = "list_conversations"
	ToolGetConversation     = "get_conversation"
	ToolSearchConversations = "search_conversations"
	ToolConversationSummary = "conversation_summary"
	ToolListMailboxes       = "list_mailboxes"
)

// API is the subset of the Help Scout client the tool surface uses.
type API interface {
	ListConversations(ctx context.Context, opts helpscout.ListConversationsOptions) ([]helpscout.Conversation, helpscout.Page, error)
	ListAllConversations(ctx context.Context, opts helpscout.ListConversationsOptions) ([]helpscout.Conversation, error)
	GetConversation(ctx context.Context, id int64, embedThreads bool) (*helpscout.Conversation, error)
	ListMailboxes(ctx context.Context, page int) ([]helpscout.Mailbox, helpscout.Page, error)
}

// Common argument helpers for recurring tool option definitions.

func withMailbox() mcp.ToolOption {
	return mcp.WithString("mailbox",
		mcp.Description("Mailbox ID to scope to (defaults to the configured default mailbox)"),
	)
}

func withStatus() mcp.ToolOption {
	return mcp.WithString("status",
		mcp.Description("Filter by conversation status"),
		mcp.Enum("active", "open", "pending", "closed", "spam", "all"),
	)
}

func withTag() mcp.ToolOption {
	return mcp.WithString("tag",
		mcp.Description("Filter by tag name"),
	)
}

// Serve creates an MCP server with helpdesk conversation tools and serves
// over stdio. It blocks until stdin is closed or the context is cancelled.
func Serve(ctx context.Context, api API, defaultMailbox string) error {
	s := server.NewMCPServer(
		"hs",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	h := &handlers{api: api, defaultMailbox: defaultMailbox}

	s.AddTool(listConversationsTool(), h.listConversations)
	s.AddTool(getConversationTool(), h.getConversation)
	s.AddTool(searchConversationsTool(), h.searchConversations)
	s.AddTool(conversationSummaryTool(), h.conversationSummary)
	s.AddTool(listMailboxesTool(), h.listMailboxes)

	stdio := server.NewStdioServer(s)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

func listConversationsTool() mcp.Tool {
	return mcp.NewTool(ToolListConversations,
		mcp.WithDescription("List one page of conversations with optional filters. Returns conversations plus page metadata."),
		mcp.WithReadOnlyHintAnnotation(true),
		withMailbox(),
		withStatus(),
		withTag(),
		mcp.WithNumber("page",
			mcp.Description("Page number to fetch (default 1)"),
		),
	)
}

func getConversationTool() mcp.Tool {
	return mcp.NewTool(ToolGetConversation,
		mcp.WithDescription("Get a single conversation by ID, optionally with its full message threads."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Conversation ID"),
		),
		mcp.WithBoolean("include_threads",
			mcp.Description("Embed the conversation's threads (default false)"),
		),
	)
}

func searchConversationsTool() mcp.Tool {
	return mcp.NewTool(ToolSearchConversations,
		mcp.WithDescription("Search conversations across all result pages using Help Scout query syntax (e.g. 'email:alice@example.com')."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query"),
		),
		withMailbox(),
		withStatus(),
	)
}

func conversationSummaryTool() mcp.Tool {
	return mcp.NewTool(ToolConversationSummary,
		mcp.WithDescription("Get aggregate conversation statistics: total plus counts by status and by tag."),
		mcp.WithReadOnlyHintAnnotation(true),
		withMailbox(),
		withStatus(),
		withTag(),
	)
}

func listMailboxesTool() mcp.Tool {
	return mcp.NewTool(ToolListMailboxes,
		mcp.WithDescription("List the account's mailboxes."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}
