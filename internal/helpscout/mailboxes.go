package helpscout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListMailboxes returns one page of mailboxes.
func (c *Client) ListMailboxes(ctx context.Context, page int) ([]Mailbox, Page, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	data, err := c.request(ctx, http.MethodGet, "/mailboxes", params, nil)
	if err != nil {
		return nil, Page{}, err
	}
	return decodeList[Mailbox](data, "mailboxes")
}

// GetMailbox fetches a single mailbox.
func (c *Client) GetMailbox(ctx context.Context, id int64) (*Mailbox, error) {
	data, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/mailboxes/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}

	var mb Mailbox
	if err := json.Unmarshal(data, &mb); err != nil {
		return nil, fmt.Errorf("parse mailbox: %w", err)
	}
	return &mb, nil
}
