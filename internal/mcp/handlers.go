package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/helpscout/helpscout-cli/internal/helpscout"
	"github.com/helpscout/helpscout-cli/internal/summary"
)

type handlers struct {
	api            API
	defaultMailbox string
}

// getIDArg extracts a required positive integer ID from the arguments map.
func getIDArg(args map[string]any, key string) (int64, error) {
	v, ok := args[key].(float64)
	if !ok {
		return 0, fmt.Errorf("%s parameter is required", key)
	}
	if v != math.Trunc(v) || v < 1 || v > math.MaxInt64 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return int64(v), nil
}

// pageArg extracts an optional page number, defaulting to 0 (first page).
func pageArg(args map[string]any) int {
	v, ok := args["page"].(float64)
	if !ok || v < 1 || v != math.Trunc(v) {
		return 0
	}
	return int(v)
}

// mailboxArg returns the mailbox argument, falling back to the configured
// default mailbox.
func (h *handlers) mailboxArg(args map[string]any) string {
	if v, ok := args["mailbox"].(string); ok && v != "" {
		return v
	}
	return h.defaultMailbox
}

func (h *handlers) listOptions(args map[string]any) helpscout.ListConversationsOptions {
	opts := helpscout.ListConversationsOptions{
		Mailbox: h.mailboxArg(args),
		Page:    pageArg(args),
	}
	if v, ok := args["status"].(string); ok {
		opts.Status = v
	}
	if v, ok := args["tag"].(string); ok {
		opts.Tag = v
	}
	return opts
}

func (h *handlers) listConversations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	convs, page, err := h.api.ListConversations(ctx, h.listOptions(args))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
	}

	resp := struct {
		Conversations []helpscout.Conversation `json:"conversations"`
		Page          helpscout.Page           `json:"page"`
	}{
		Conversations: convs,
		Page:          page,
	}
	return jsonResult(resp)
}

func (h *handlers) getConversation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	id, err := getIDArg(args, "id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	includeThreads, _ := args["include_threads"].(bool)

	conv, err := h.api.GetConversation(ctx, id, includeThreads)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("conversation not found: %v", err)), nil
	}
	return jsonResult(conv)
}

func (h *handlers) searchConversations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	query, _ := args["query"].(string)
	if query == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	opts := h.listOptions(args)
	opts.Query = query
	opts.Page = 0

	convs, err := h.api.ListAllConversations(ctx, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	resp := struct {
		Total         int                      `json:"total"`
		Conversations []helpscout.Conversation `json:"conversations"`
	}{
		Total:         len(convs),
		Conversations: convs,
	}
	return jsonResult(resp)
}

// conversationSummary returns the lightweight aggregate shape only; the full
// per-conversation detail is a CLI concern.
func (h *handlers) conversationSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	convs, err := h.api.ListAllConversations(ctx, h.listOptions(args))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summary failed: %v", err)), nil
	}
	return jsonResult(summary.Aggregate(convs))
}

func (h *handlers) listMailboxes(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mailboxes, _, err := h.api.ListMailboxes(ctx, 0)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list mailboxes failed: %v", err)), nil
	}
	return jsonResult(mailboxes)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
