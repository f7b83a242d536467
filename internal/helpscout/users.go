package helpscout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListUsers returns one page of users.
func (c *Client) ListUsers(ctx context.Context, page int) ([]User, Page, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	data, err := c.request(ctx, http.MethodGet, "/users", params, nil)
	if err != nil {
		return nil, Page{}, err
	}
	return decodeList[User](data, "users")
}

// GetUser fetches a single user.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	data, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}

	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("parse user: %w", err)
	}
	return &u, nil
}

// GetMe fetches the authenticated user.
func (c *Client) GetMe(ctx context.Context) (*User, error) {
	data, err := c.request(ctx, http.MethodGet, "/users/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("parse user: %w", err)
	}
	return &u, nil
}
