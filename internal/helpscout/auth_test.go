package helpscout

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/helpscout/helpscout-cli/internal/credstore"
	"github.com/helpscout/helpscout-cli/internal/errutil"
)

// tokenEndpoint is a fake OAuth2 token endpoint that records the grant types
// it sees and answers each from a canned response.
type tokenEndpoint struct {
	grants    []string
	responses map[string]func(w http.ResponseWriter) // keyed by grant_type
}

func (te *tokenEndpoint) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		grant := r.PostForm.Get("grant_type")
		te.grants = append(te.grants, grant)

		if fn, ok := te.responses[grant]; ok {
			fn(w)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error":             "invalid_grant",
			"error_description": "unsupported grant",
		})
	}
}

func grantToken(access, refresh string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  access,
			"refresh_token": refresh,
			"token_type":    "bearer",
			"expires_in":    7200,
		})
	}
}

func grantError(status int, name, desc string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"error":             name,
			"error_description": desc,
		})
	}
}

func newTestSession(t *testing.T, te *tokenEndpoint, seed map[credstore.Field]string) (*Session, *credstore.MemStore) {
	t.Helper()
	srv := httptest.NewServer(te.handler())
	t.Cleanup(srv.Close)

	store := credstore.NewMemStore(seed)
	sess := NewSession(store, srv.URL, WithSessionLogger(slog.New(slog.DiscardHandler)))
	return sess, store
}

func appCreds() map[credstore.Field]string {
	return map[credstore.Field]string{
		credstore.FieldAppID:     "app",
		credstore.FieldAppSecret: "secret",
	}
}

func TestAccessTokenClientCredentials(t *testing.T) {
	te := &tokenEndpoint{responses: map[string]func(http.ResponseWriter){
		"client_credentials": grantToken("at-1", "rt-1"),
	}}
	sess, store := newTestSession(t, te, appCreds())

	tok, err := sess.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("AccessToken: %v", err)
	}
	if tok != "at-1" {
		t.Errorf("token = %q, want at-1", tok)
	}
	if got := te.grants; len(got) != 1 || got[0] != "client_credentials" {
		t.Errorf("grants = %v, want [client_credentials]", got)
	}

	// Both tokens are persisted.
	if v, _ := store.Get(credstore.FieldAccessToken); v != "at-1" {
		t.Errorf("persisted access token = %q", v)
	}
	if v, _ := store.Get(credstore.FieldRefreshToken); v != "rt-1" {
		t.Errorf("persisted refresh token = %q", v)
	}

	// A second call within the session hits the network zero times.
	if _, err := sess.AccessToken(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(te.grants) != 1 {
		t.Errorf("second AccessToken made %d extra network calls", len(te.grants)-1)
	}
}

func TestAccessTokenUsesPersistedToken(t *testing.T) {
	te := &tokenEndpoint{}
	seed := appCreds()
	seed[credstore.FieldAccessToken] = "persisted"
	sess, _ := newTestSession(t, te, seed)

	tok, err := sess.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("AccessToken: %v", err)
	}
	if tok != "persisted" {
		t.Errorf("token = %q, want persisted", tok)
	}
	if len(te.grants) != 0 {
		t.Errorf("expected no network calls, got %v", te.grants)
	}
}

func TestAuthenticateRefreshFirst(t *testing.T) {
	te := &tokenEndpoint{responses: map[string]func(http.ResponseWriter){
		"refresh_token": grantToken("at-2", "rt-2"),
	}}
	seed := appCreds()
	seed[credstore.FieldRefreshToken] = "rt-1"
	sess, store := newTestSession(t, te, seed)

	tok, err := sess.Authenticate(context.Background())
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if tok != "at-2" {
		t.Errorf("token = %q, want at-2", tok)
	}
	if got := te.grants; len(got) != 1 || got[0] != "refresh_token" {
		t.Errorf("grants = %v, want [refresh_token]", got)
	}

	// The rotated refresh token replaces the old one.
	if v, _ := store.Get(credstore.FieldRefreshToken); v != "rt-2" {
		t.Errorf("refresh token = %q, want rt-2", v)
	}
}

func TestAuthenticateRefreshFallsBackSilently(t *testing.T) {
	te := &tokenEndpoint{responses: map[string]func(http.ResponseWriter){
		"refresh_token":      grantError(http.StatusUnauthorized, "invalid_grant", "refresh token expired"),
		"client_credentials": grantToken("at-3", ""),
	}}
	seed := appCreds()
	seed[credstore.FieldRefreshToken] = "rt-stale"
	sess, store := newTestSession(t, te, seed)

	tok, err := sess.Authenticate(context.Background())
	if err != nil {
		t.Fatalf("refresh failure must not surface, got %v", err)
	}
	if tok != "at-3" {
		t.Errorf("token = %q, want at-3", tok)
	}
	if got := te.grants; len(got) != 2 || got[0] != "refresh_token" || got[1] != "client_credentials" {
		t.Errorf("grants = %v, want [refresh_token client_credentials]", got)
	}

	// The stale refresh token is never cleared by the fallback path.
	if v, _ := store.Get(credstore.FieldRefreshToken); v != "rt-stale" {
		t.Errorf("refresh token = %q, want rt-stale", v)
	}
}

func TestAuthenticateBothGrantsFail(t *testing.T) {
	te := &tokenEndpoint{responses: map[string]func(http.ResponseWriter){
		"refresh_token":      grantError(http.StatusUnauthorized, "invalid_grant", "expired"),
		"client_credentials": grantError(http.StatusUnauthorized, "unauthorized", "Invalid client credentials"),
	}}
	seed := appCreds()
	seed[credstore.FieldRefreshToken] = "rt"
	sess, _ := newTestSession(t, te, seed)

	_, err := sess.Authenticate(context.Background())
	var apiErr *errutil.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", apiErr.StatusCode)
	}
	if apiErr.Body["error"] != "unauthorized" {
		t.Errorf("body = %v, want the client_credentials failure", apiErr.Body)
	}
}

func TestAuthenticateMissingAppCredentials(t *testing.T) {
	te := &tokenEndpoint{}
	sess, _ := newTestSession(t, te, nil)

	_, err := sess.AccessToken(context.Background())
	var cliErr *errutil.CLIError
	if !errors.As(err, &cliErr) {
		t.Fatalf("expected CLIError, got %v", err)
	}
	if cliErr.StatusCode != 401 {
		t.Errorf("status = %d, want 401", cliErr.StatusCode)
	}
	if len(te.grants) != 0 {
		t.Errorf("no network call may happen without app credentials, got %v", te.grants)
	}
}

func TestInvalidateClearsMemoryOnly(t *testing.T) {
	te := &tokenEndpoint{responses: map[string]func(http.ResponseWriter){
		"client_credentials": grantToken("at-1", "rt-1"),
	}}
	sess, store := newTestSession(t, te, appCreds())

	if _, err := sess.AccessToken(context.Background()); err != nil {
		t.Fatal(err)
	}
	sess.Invalidate()

	if v, _ := store.Get(credstore.FieldRefreshToken); v != "rt-1" {
		t.Errorf("Invalidate cleared the persisted refresh token")
	}

	// The next AccessToken reads the persisted token, no network.
	tok, err := sess.AccessToken(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if tok != "at-1" {
		t.Errorf("token = %q, want persisted at-1", tok)
	}
	if len(te.grants) != 1 {
		t.Errorf("grants = %v, want a single initial exchange", te.grants)
	}
}
