package helpscout

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// AccountTag is an account-level tag as returned by the tags listing. Unlike
// the tag objects embedded on conversations, these use a "name" field.
type AccountTag struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	TicketCount int    `json:"ticketCount,omitempty"`
}

// ListTags returns one page of account tags.
func (c *Client) ListTags(ctx context.Context, page int) ([]AccountTag, Page, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	data, err := c.request(ctx, http.MethodGet, "/tags", params, nil)
	if err != nil {
		return nil, Page{}, err
	}
	return decodeList[AccountTag](data, "tags")
}
