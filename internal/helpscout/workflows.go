package helpscout

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListWorkflows returns one page of workflows, optionally filtered by mailbox.
func (c *Client) ListWorkflows(ctx context.Context, mailbox string, page int) ([]Workflow, Page, error) {
	params := url.Values{}
	if mailbox != "" {
		params.Set("mailboxId", mailbox)
	}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	data, err := c.request(ctx, http.MethodGet, "/workflows", params, nil)
	if err != nil {
		return nil, Page{}, err
	}
	return decodeList[Workflow](data, "workflows")
}

// RunWorkflow runs a manual workflow on the given conversations.
func (c *Client) RunWorkflow(ctx context.Context, id int64, conversationIDs []int64) error {
	body := struct {
		ConversationIDs []int64 `json:"conversationIds"`
	}{ConversationIDs: conversationIDs}
	_, err := c.request(ctx, http.MethodPost, fmt.Sprintf("/workflows/%d/run", id), nil, body)
	return err
}
