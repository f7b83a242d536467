package helpscout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListConversationsOptions filters a conversation listing.
type ListConversationsOptions struct {
	Mailbox      string
	Status       string
	Tag          string
	Query        string
	Page         int
	EmbedThreads bool
}

func (o ListConversationsOptions) values() url.Values {
	params := url.Values{}
	if o.Mailbox != "" {
		params.Set("mailbox", o.Mailbox)
	}
	if o.Status != "" {
		params.Set("status", o.Status)
	}
	if o.Tag != "" {
		params.Set("tag", o.Tag)
	}
	if o.Query != "" {
		params.Set("query", o.Query)
	}
	if o.Page > 0 {
		params.Set("page", strconv.Itoa(o.Page))
	}
	if o.EmbedThreads {
		params.Set("embed", "threads")
	}
	return params
}

// ListConversations returns one page of conversations.
func (c *Client) ListConversations(ctx context.Context, opts ListConversationsOptions) ([]Conversation, Page, error) {
	data, err := c.request(ctx, http.MethodGet, "/conversations", opts.values(), nil)
	if err != nil {
		return nil, Page{}, err
	}
	return decodeList[Conversation](data, "conversations")
}

// ListAllConversations walks every page of a conversation listing. Used by
// summary mode and cross-page search; ordinary listings return a single page.
func (c *Client) ListAllConversations(ctx context.Context, opts ListConversationsOptions) ([]Conversation, error) {
	return FetchAll(ctx, func(ctx context.Context, page int) ([]Conversation, Page, error) {
		opts.Page = page
		return c.ListConversations(ctx, opts)
	})
}

// GetConversation fetches a single conversation, optionally with its threads.
func (c *Client) GetConversation(ctx context.Context, id int64, embedThreads bool) (*Conversation, error) {
	params := url.Values{}
	if embedThreads {
		params.Set("embed", "threads")
	}

	data, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/conversations/%d", id), params, nil)
	if err != nil {
		return nil, err
	}

	var conv Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("parse conversation: %w", err)
	}
	return &conv, nil
}

// NewThread is a thread included in a conversation create request.
type NewThread struct {
	Type     string  `json:"type"`
	Customer *Person `json:"customer,omitempty"`
	Text     string  `json:"text"`
}

// CreateConversationRequest is the body of a conversation create call.
type CreateConversationRequest struct {
	Subject   string      `json:"subject"`
	MailboxID int64       `json:"mailboxId"`
	Type      string      `json:"type"`
	Status    string      `json:"status,omitempty"`
	Customer  *Person     `json:"customer"`
	Threads   []NewThread `json:"threads"`
	Tags      []string    `json:"tags,omitempty"`
}

// CreateConversation creates a conversation. The API answers 201 with no
// useful body.
func (c *Client) CreateConversation(ctx context.Context, req CreateConversationRequest) error {
	_, err := c.request(ctx, http.MethodPost, "/conversations", nil, req)
	return err
}

// PatchOp is a single JSON Patch operation, the API's update shape.
type PatchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// UpdateConversation applies one patch operation to a conversation.
func (c *Client) UpdateConversation(ctx context.Context, id int64, op PatchOp) error {
	_, err := c.request(ctx, http.MethodPatch, fmt.Sprintf("/conversations/%d", id), nil, op)
	return err
}

// DeleteConversation deletes a conversation.
func (c *Client) DeleteConversation(ctx context.Context, id int64) error {
	_, err := c.request(ctx, http.MethodDelete, fmt.Sprintf("/conversations/%d", id), nil, nil)
	return err
}

// UpdateConversationTags replaces the full tag list of a conversation.
func (c *Client) UpdateConversationTags(ctx context.Context, id int64, tags []string) error {
	body := struct {
		Tags []string `json:"tags"`
	}{Tags: tags}
	_, err := c.request(ctx, http.MethodPut, fmt.Sprintf("/conversations/%d/tags", id), nil, body)
	return err
}
