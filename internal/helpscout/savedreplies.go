package helpscout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListSavedReplies returns one page of a mailbox's saved replies.
func (c *Client) ListSavedReplies(ctx context.Context, mailboxID int64, page int) ([]SavedReply, Page, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	data, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/mailboxes/%d/saved-replies", mailboxID), params, nil)
	if err != nil {
		return nil, Page{}, err
	}
	return decodeList[SavedReply](data, "saved-replies")
}

// GetSavedReply fetches a single saved reply with its full text.
func (c *Client) GetSavedReply(ctx context.Context, mailboxID, replyID int64) (*SavedReply, error) {
	data, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/mailboxes/%d/saved-replies/%d", mailboxID, replyID), nil, nil)
	if err != nil {
		return nil, err
	}

	var sr SavedReply
	if err := json.Unmarshal(data, &sr); err != nil {
		return nil, fmt.Errorf("parse saved reply: %w", err)
	}
	return &sr, nil
}
