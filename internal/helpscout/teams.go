package helpscout

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListTeams returns one page of teams.
func (c *Client) ListTeams(ctx context.Context, page int) ([]Team, Page, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	data, err := c.request(ctx, http.MethodGet, "/teams", params, nil)
	if err != nil {
		return nil, Page{}, err
	}
	return decodeList[Team](data, "teams")
}

// ListTeamMembers returns one page of a team's members.
func (c *Client) ListTeamMembers(ctx context.Context, teamID int64, page int) ([]User, Page, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}

	data, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/teams/%d/members", teamID), params, nil)
	if err != nil {
		return nil, Page{}, err
	}
	return decodeList[User](data, "users")
}
