// Package helpscout implements the Help Scout Mailbox API v2 client: the
// authenticated request layer and one method per remote operation.
package helpscout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/helpscout/helpscout-cli/internal/errutil"
)

const defaultTimeout = 30 * time.Second

// Client issues authenticated calls against the API. All methods run
// sequentially; the only shared mutable state is the session's token cache.
type Client struct {
	baseURL    string
	session    *Session
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the logger for the client.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates an API client that draws bearer tokens from the session.
func NewClient(baseURL string, session *Session, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		session:    session,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request performs one logical API call. A 401 triggers exactly one forced
// re-authentication and retry; a second 401 is terminal.
func (c *Client) request(ctx context.Context, method, path string, params url.Values, body any) ([]byte, error) {
	return c.do(ctx, method, path, params, body, true)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any, retryAllowed bool) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	token, err := c.session.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	var bodyBytes []byte
	if body != nil {
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
	}

	var reader io.Reader
	if bodyBytes != nil {
		reader = bytes.NewReader(bodyBytes)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if bodyBytes != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && retryAllowed {
		c.logger.Debug("token rejected, re-authenticating", "method", method, "path", path)
		c.session.Invalidate()
		if _, err := c.session.Authenticate(ctx); err != nil {
			return nil, err
		}
		return c.do(ctx, method, path, params, body, false)
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &errutil.APIError{StatusCode: resp.StatusCode, Body: decodeErrorBody(respBody)}
	}

	return respBody, nil
}

// decodeErrorBody parses an error response body as JSON, substituting an
// empty object when the body is absent or not JSON.
func decodeErrorBody(body []byte) map[string]any {
	m := map[string]any{}
	if len(body) == 0 {
		return m
	}
	if err := json.Unmarshal(body, &m); err != nil {
		return map[string]any{}
	}
	return m
}
