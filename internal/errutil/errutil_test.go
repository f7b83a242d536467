package errutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSanitizeMessageRedaction(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		leaks []string
	}{
		{
			name:  "authorization header",
			in:    "Authorization: Bearer abc123token456",
			leaks: []string{"abc123token456"},
		},
		{
			name:  "token key value",
			in:    "request failed: access_token=sekrit123 rejected",
			leaks: []string{"sekrit123"},
		},
		{
			name:  "token colon pair",
			in:    `body was {"token": "sekrit123"}`,
			leaks: []string{"sekrit123"},
		},
		{
			name:  "client secret underscore",
			in:    "client_secret=supersecret was invalid",
			leaks: []string{"supersecret"},
		},
		{
			name:  "client secret dash case insensitive",
			in:    "Client-Secret: supersecret",
			leaks: []string{"supersecret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeMessage(tt.in)
			if !strings.Contains(got, RedactionMark) {
				t.Errorf("SanitizeMessage(%q) = %q, want redaction mark", tt.in, got)
			}
			for _, leak := range tt.leaks {
				if strings.Contains(got, leak) {
					t.Errorf("SanitizeMessage(%q) = %q, leaked %q", tt.in, got, leak)
				}
			}
		})
	}
}

func TestSanitizeMessageTruncation(t *testing.T) {
	long := strings.Repeat("x", 600)
	got := SanitizeMessage(long)
	if len(got) != 503 {
		t.Errorf("truncated length = %d, want 503", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated message should end with marker, got %q", got[490:])
	}
}

func TestSanitizeMessagePassthrough(t *testing.T) {
	in := "mailbox 42 not found"
	if got := SanitizeMessage(in); got != in {
		t.Errorf("SanitizeMessage(%q) = %q, want unchanged", in, got)
	}
}

func TestSanitizeAPIError(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		wantName   string
		wantDetail string
	}{
		{
			name:       "oauth error description",
			body:       map[string]any{"error_description": "Invalid client credentials", "error": "unauthorized"},
			wantName:   "unauthorized",
			wantDetail: "Invalid client credentials",
		},
		{
			name: "embedded validation errors",
			body: map[string]any{
				"_embedded": map[string]any{
					"errors": []any{
						map[string]any{"path": "subject", "message": "Subject is required"},
						map[string]any{"path": "body", "message": "Body is required"},
					},
				},
			},
			wantName:   "api_error",
			wantDetail: "Subject is required; Body is required",
		},
		{
			name: "embedded entry falls back to path",
			body: map[string]any{
				"_embedded": map[string]any{
					"errors": []any{
						map[string]any{"path": "threads", "message": ""},
						map[string]any{},
					},
				},
			},
			wantName:   "api_error",
			wantDetail: "threads",
		},
		{
			name:       "message field",
			body:       map[string]any{"message": "Resource not found"},
			wantName:   "api_error",
			wantDetail: "Resource not found",
		},
		{
			name:       "empty body",
			body:       map[string]any{},
			wantName:   "api_error",
			wantDetail: "An error occurred",
		},
		{
			name:       "non-object body",
			body:       "boom",
			wantName:   "api_error",
			wantDetail: "An error occurred",
		},
		{
			name:       "nil body",
			body:       nil,
			wantName:   "api_error",
			wantDetail: "An error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, detail := SanitizeAPIError(tt.body)
			if name != tt.wantName || detail != tt.wantDetail {
				t.Errorf("SanitizeAPIError() = (%q, %q), want (%q, %q)",
					name, detail, tt.wantName, tt.wantDetail)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want CanonicalError
	}{
		{
			name: "cli error default status",
			err:  NewCLIError("missing required argument: %s", "id"),
			want: CanonicalError{Name: "cli_error", Detail: "missing required argument: id", StatusCode: 1},
		},
		{
			name: "cli error explicit status",
			err:  &CLIError{Detail: "Not authenticated. Run 'hs auth login' first.", StatusCode: 401},
			want: CanonicalError{Name: "cli_error", Detail: "Not authenticated. Run 'hs auth login' first.", StatusCode: 401},
		},
		{
			name: "api error with explicit status",
			err:  &APIError{StatusCode: 404, Body: map[string]any{"message": "Conversation not found"}},
			want: CanonicalError{Name: "api_error", Detail: "Conversation not found", StatusCode: 404},
		},
		{
			name: "api error status from name table",
			err:  &APIError{Body: map[string]any{"error": "forbidden", "error_description": "Access denied"}},
			want: CanonicalError{Name: "forbidden", Detail: "Access denied", StatusCode: 403},
		},
		{
			name: "api error unnamed defaults to 500",
			err:  &APIError{Body: map[string]any{}},
			want: CanonicalError{Name: "api_error", Detail: "An error occurred", StatusCode: 500},
		},
		{
			name: "wrapped api error",
			err:  errors.Join(errors.New("request failed"), &APIError{StatusCode: 409, Body: map[string]any{"message": "Duplicate"}}),
			want: CanonicalError{Name: "api_error", Detail: "Duplicate", StatusCode: 409},
		},
		{
			name: "opaque error",
			err:  errors.New("dial tcp: connection refused"),
			want: CanonicalError{Name: "unknown_error", Detail: "dial tcp: connection refused", StatusCode: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeRateLimitAdvisory(t *testing.T) {
	got := Normalize(&APIError{StatusCode: 429, Body: map[string]any{"error": "too_many_requests"}})
	if got.Name != "too_many_requests" || got.StatusCode != 429 {
		t.Fatalf("got %+v", got)
	}
	if !strings.Contains(got.Detail, "400 requests per minute") {
		t.Errorf("detail should carry the rate budget advisory, got %q", got.Detail)
	}
}

func TestNormalizeRedactsSecrets(t *testing.T) {
	got := Normalize(errors.New("POST failed: Authorization: Bearer abc123token456"))
	if strings.Contains(got.Detail, "abc123token456") {
		t.Errorf("normalized detail leaked token: %q", got.Detail)
	}
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	WriteError(&buf, &CLIError{Detail: "operation cancelled", StatusCode: 1})

	out := buf.String()
	if strings.Count(out, "\n") != 1 || !strings.HasSuffix(out, "\n") {
		t.Errorf("expected a single JSON line, got %q", out)
	}

	var payload struct {
		Error CanonicalError `json:"error"`
	}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	want := CanonicalError{Name: "cli_error", Detail: "operation cancelled", StatusCode: 1}
	if diff := cmp.Diff(want, payload.Error); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}
