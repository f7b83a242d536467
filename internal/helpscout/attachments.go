package helpscout

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
)

// GetAttachmentData downloads an attachment's content. The API wraps the
// bytes in a base64 "data" field.
func (c *Client) GetAttachmentData(ctx context.Context, conversationID, attachmentID int64) ([]byte, error) {
	path := fmt.Sprintf("/conversations/%d/attachments/%d/data", conversationID, attachmentID)
	data, err := c.request(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data string `json:"data"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse attachment response: %w", err)
	}

	content, err := base64.StdEncoding.DecodeString(resp.Data)
	if err != nil {
		return nil, fmt.Errorf("decode attachment data: %w", err)
	}
	return content, nil
}

// DeleteAttachment removes an attachment from a conversation.
func (c *Client) DeleteAttachment(ctx context.Context, conversationID, attachmentID int64) error {
	path := fmt.Sprintf("/conversations/%d/attachments/%d", conversationID, attachmentID)
	_, err := c.request(ctx, http.MethodDelete, path, nil, nil)
	return err
}
