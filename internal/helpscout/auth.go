package helpscout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/helpscout/helpscout-cli/internal/credstore"
	"github.com/helpscout/helpscout-cli/internal/errutil"
)

// Session owns the OAuth2 token lifecycle: obtaining, caching, and refreshing
// bearer tokens. The in-memory token is a per-process shortcut; the credential
// store holds the authoritative state. Token freshness is reactive: a token is
// used until the API rejects it with a 401, there is no expiry bookkeeping.
type Session struct {
	store      credstore.Store
	tokenURL   string
	httpClient *http.Client
	logger     *slog.Logger

	mu    sync.Mutex
	token string
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionLogger sets the logger for the session.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithSessionHTTPClient sets the HTTP client used for token endpoint calls.
func WithSessionHTTPClient(hc *http.Client) SessionOption {
	return func(s *Session) {
		s.httpClient = hc
	}
}

// NewSession creates a session backed by the given credential store.
func NewSession(store credstore.Store, tokenURL string, opts ...SessionOption) *Session {
	s := &Session{
		store:      store,
		tokenURL:   tokenURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AccessToken returns a valid bearer token: the in-memory one if cached, else
// the persisted one, else the result of a full authentication. At most one
// authentication round-trip happens when a cached or persisted token exists.
func (s *Session) AccessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" {
		return s.token, nil
	}

	stored, err := s.store.Get(credstore.FieldAccessToken)
	if err != nil {
		return "", err
	}
	if stored != "" {
		s.token = stored
		return stored, nil
	}

	return s.authenticate(ctx)
}

// Authenticate performs a full authentication regardless of cached state and
// returns the new token. Used by the request retry path after Invalidate, and
// by 'auth login' to verify stored credentials.
func (s *Session) Authenticate(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticate(ctx)
}

// Invalidate clears the in-memory cached token only. The persisted refresh
// token survives so the next authentication can use the refresh grant.
func (s *Session) Invalidate() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// authenticate runs the grant sequence: refresh_token first when one is
// stored, silently falling back to client_credentials on any refresh failure.
// Callers must hold s.mu.
func (s *Session) authenticate(ctx context.Context) (string, error) {
	appID, err := s.store.Get(credstore.FieldAppID)
	if err != nil {
		return "", err
	}
	appSecret, err := s.store.Get(credstore.FieldAppSecret)
	if err != nil {
		return "", err
	}
	if appID == "" || appSecret == "" {
		return "", &errutil.CLIError{
			Detail:     "Not authenticated. Run 'hs auth login' or set HELPSCOUT_APP_ID and HELPSCOUT_APP_SECRET.",
			StatusCode: 401,
		}
	}

	if refresh, _ := s.store.Get(credstore.FieldRefreshToken); refresh != "" {
		tok, err := s.grant(ctx, url.Values{
			"grant_type":    {"refresh_token"},
			"refresh_token": {refresh},
			"client_id":     {appID},
			"client_secret": {appSecret},
		})
		if err == nil {
			return s.adopt(tok, refresh)
		}
		// A failed refresh, whether an expired token or a network error,
		// falls through to the client_credentials grant without surfacing.
		s.logger.Debug("refresh grant failed, falling back to client credentials", "error", err)
	}

	tok, err := s.grant(ctx, url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {appID},
		"client_secret": {appSecret},
	})
	if err != nil {
		return "", err
	}
	return s.adopt(tok, "")
}

// adopt persists and caches a freshly granted token. The refresh token is
// only rewritten when the endpoint rotated it.
func (s *Session) adopt(tok *oauth2.Token, oldRefresh string) (string, error) {
	if err := s.store.Set(credstore.FieldAccessToken, tok.AccessToken); err != nil {
		return "", fmt.Errorf("persist access token: %w", err)
	}
	if tok.RefreshToken != "" && tok.RefreshToken != oldRefresh {
		if err := s.store.Set(credstore.FieldRefreshToken, tok.RefreshToken); err != nil {
			return "", fmt.Errorf("persist refresh token: %w", err)
		}
	}
	s.token = tok.AccessToken
	return s.token, nil
}

// grant POSTs a form-encoded request to the token endpoint.
func (s *Session) grant(ctx context.Context, form url.Values) (*oauth2.Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &errutil.APIError{StatusCode: resp.StatusCode, Body: decodeErrorBody(body)}
	}

	var tr struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
		ExpiresIn    int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("parse token response: %w", err)
	}
	if tr.AccessToken == "" {
		return nil, fmt.Errorf("token endpoint returned no access token")
	}

	return &oauth2.Token{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		TokenType:    tr.TokenType,
		Expiry:       time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}, nil
}
