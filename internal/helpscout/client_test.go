package helpscout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/helpscout/helpscout-cli/internal/credstore"
	"github.com/helpscout/helpscout-cli/internal/errutil"
)

// apiCall records one request seen by the fake API.
type apiCall struct {
	Method string
	Path   string
	Query  string
	Token  string
	Body   string
}

// newTestClient wires a Client against a fake API handler and a token
// endpoint that always issues "fresh" tokens. The seeded session starts with
// the access token "stale".
func newTestClient(t *testing.T, apiHandler http.HandlerFunc) (*Client, *[]apiCall, *tokenEndpoint) {
	t.Helper()

	calls := &[]apiCall{}
	recording := func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*calls = append(*calls, apiCall{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Token:  r.Header.Get("Authorization"),
			Body:   string(body),
		})
		apiHandler(w, r)
	}
	apiSrv := httptest.NewServer(http.HandlerFunc(recording))
	t.Cleanup(apiSrv.Close)

	te := &tokenEndpoint{responses: map[string]func(http.ResponseWriter){
		"client_credentials": grantToken("fresh", ""),
	}}
	tokenSrv := httptest.NewServer(te.handler())
	t.Cleanup(tokenSrv.Close)

	seed := appCreds()
	seed[credstore.FieldAccessToken] = "stale"
	store := credstore.NewMemStore(seed)

	logger := slog.New(slog.DiscardHandler)
	sess := NewSession(store, tokenSrv.URL, WithSessionLogger(logger))
	client := NewClient(apiSrv.URL, sess, WithLogger(logger))
	return client, calls, te
}

func TestRequestRetriesOnceOn401(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 1})
	}
	client, calls, te := newTestClient(t, handler)

	data, err := client.request(context.Background(), http.MethodGet, "/conversations/1", nil, nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if string(data) == "" {
		t.Fatal("expected a body")
	}

	if len(*calls) != 2 {
		t.Fatalf("api calls = %d, want 2", len(*calls))
	}
	if (*calls)[0].Token != "Bearer stale" || (*calls)[1].Token != "Bearer fresh" {
		t.Errorf("tokens = %q, %q", (*calls)[0].Token, (*calls)[1].Token)
	}
	if got := te.grants; len(got) != 1 || got[0] != "client_credentials" {
		t.Errorf("re-auth grants = %v", got)
	}
}

func TestRequestSecond401IsTerminal(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"error": "unauthorized"})
	}
	client, calls, _ := newTestClient(t, handler)

	_, err := client.request(context.Background(), http.MethodGet, "/users/me", nil, nil)
	var apiErr *errutil.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", apiErr.StatusCode)
	}
	if len(*calls) != 2 {
		t.Errorf("api calls = %d, want exactly 2 (no third attempt)", len(*calls))
	}
}

func TestRequest204YieldsEmptyResult(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
	client, _, _ := newTestClient(t, handler)

	data, err := client.request(context.Background(), http.MethodPut, "/conversations/1/tags", nil,
		map[string]any{"tags": []string{"vip"}})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if data != nil {
		t.Errorf("204 should yield no body, got %q", data)
	}
}

func TestRequestErrorBodyParsed(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"_embedded": map[string]any{
				"errors": []any{
					map[string]any{"path": "subject", "message": "Subject is required"},
				},
			},
		})
	}
	client, _, _ := newTestClient(t, handler)

	_, err := client.request(context.Background(), http.MethodPost, "/conversations", nil, map[string]any{})
	var apiErr *errutil.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	ce := errutil.Normalize(err)
	if ce.Detail != "Subject is required" {
		t.Errorf("detail = %q", ce.Detail)
	}
}

func TestRequestUnparseableErrorBody(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, "<html>gateway timeout</html>")
	}
	client, _, _ := newTestClient(t, handler)

	_, err := client.request(context.Background(), http.MethodGet, "/mailboxes", nil, nil)
	var apiErr *errutil.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if len(apiErr.Body) != 0 {
		t.Errorf("unparseable body should become an empty object, got %v", apiErr.Body)
	}
	if apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
}

func TestRequestAttachesParamsAndBody(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{})
	}
	client, calls, _ := newTestClient(t, handler)

	opts := ListConversationsOptions{Mailbox: "42", Status: "active", EmbedThreads: true}
	if _, _, err := client.ListConversations(context.Background(), opts); err != nil {
		t.Fatalf("ListConversations: %v", err)
	}

	call := (*calls)[0]
	if call.Path != "/conversations" {
		t.Errorf("path = %q", call.Path)
	}
	q, err := url.ParseQuery(call.Query)
	if err != nil {
		t.Fatalf("parse query %q: %v", call.Query, err)
	}
	if q.Get("mailbox") != "42" || q.Get("status") != "active" || q.Get("embed") != "threads" {
		t.Errorf("query = %v", q)
	}
	// Unset filters never appear as query parameters.
	for _, absent := range []string{"tag", "query", "page"} {
		if q.Has(absent) {
			t.Errorf("query %v should omit %q", q, absent)
		}
	}
}

func TestListConversationsDecodesEnvelope(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{
			"_embedded": {
				"conversations": [
					{"id": 11, "subject": "Refund", "status": "active", "tags": [{"id": 1, "tag": "billing"}]},
					{"id": 12, "subject": "Bug report", "status": "pending"}
				]
			},
			"page": {"size": 25, "totalElements": 2, "totalPages": 1, "number": 1}
		}`)
	}
	client, _, _ := newTestClient(t, handler)

	convs, page, err := client.ListConversations(context.Background(), ListConversationsOptions{})
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}

	wantPage := Page{Size: 25, TotalElements: 2, TotalPages: 1, Number: 1}
	if diff := cmp.Diff(wantPage, page); diff != "" {
		t.Errorf("page mismatch (-want +got):\n%s", diff)
	}
	if len(convs) != 2 || convs[0].ID != 11 || convs[0].Tags[0].Name != "billing" {
		t.Errorf("conversations = %+v", convs)
	}
}
