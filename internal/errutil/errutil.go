// Package errutil converts failures into the canonical {name, detail,
// statusCode} shape emitted at the output boundary. Every command failure,
// whatever its origin, passes through Normalize exactly once.
package errutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Canonical error names for failures that originate locally.
const (
	NameCLIError        = "cli_error"
	NameAPIError        = "api_error"
	NameUnknownError    = "unknown_error"
	NameTooManyRequests = "too_many_requests"
)

const (
	// RedactionMark replaces credential material in error details.
	RedactionMark = "[REDACTED]"

	maxDetailLen   = 500
	truncationMark = "..."

	genericAPIDetail     = "An error occurred"
	genericUnknownDetail = "An unexpected error occurred"

	// Advisory appended to rate-limit errors. No backoff is scheduled; the
	// remote budget is 400 requests per minute.
	rateLimitNote = " The API allows up to 400 requests per minute; wait a moment and retry."
)

// statusByName maps canonical names to HTTP status codes for errors that
// arrive without an explicit one.
var statusByName = map[string]int{
	"bad_request":           400,
	"unauthorized":          401,
	"forbidden":             403,
	"not_found":             404,
	"conflict":              409,
	"too_many_requests":     429,
	"internal_server_error": 500,
	"service_unavailable":   503,
}

// CanonicalError is the stable shape every failure is reduced to before it
// crosses the JSON output boundary. Never mutated after creation.
type CanonicalError struct {
	Name       string `json:"name"`
	Detail     string `json:"detail"`
	StatusCode int    `json:"statusCode"`
}

func (e CanonicalError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Name, e.StatusCode, e.Detail)
}

// CLIError is a local precondition failure: missing configuration, missing
// required argument, cancelled operation. It never involves the remote API.
type CLIError struct {
	Detail     string
	StatusCode int // 0 means exit-style status 1
}

func (e *CLIError) Error() string { return e.Detail }

// NewCLIError builds a CLIError with a formatted detail message.
func NewCLIError(format string, args ...any) *CLIError {
	return &CLIError{Detail: fmt.Sprintf(format, args...)}
}

// APIError carries a non-2xx remote response: the HTTP status and the decoded
// JSON body (empty map when the body was absent or unparseable).
type APIError struct {
	StatusCode int
	Body       map[string]any
}

func (e *APIError) Error() string {
	name, detail := SanitizeAPIError(e.Body)
	return fmt.Sprintf("%s (%d): %s", name, e.StatusCode, detail)
}

// Normalize reduces any error to its canonical form. The three upstream
// failure shapes (local validation, structured API error, opaque error) are
// matched exhaustively here and nowhere else.
func Normalize(err error) CanonicalError {
	var cliErr *CLIError
	var apiErr *APIError

	switch {
	case errors.As(err, &cliErr):
		status := cliErr.StatusCode
		if status == 0 {
			status = 1
		}
		return CanonicalError{
			Name:       NameCLIError,
			Detail:     SanitizeMessage(cliErr.Detail),
			StatusCode: status,
		}

	case errors.As(err, &apiErr):
		name, detail := SanitizeAPIError(apiErr.Body)
		status := apiErr.StatusCode
		if status == 0 {
			if s, ok := statusByName[name]; ok {
				status = s
			} else {
				status = 500
			}
		}
		detail = SanitizeMessage(detail)
		if name == NameTooManyRequests || status == 429 {
			detail += rateLimitNote
		}
		return CanonicalError{Name: name, Detail: detail, StatusCode: status}

	default:
		detail := genericUnknownDetail
		if err != nil && strings.TrimSpace(err.Error()) != "" {
			detail = SanitizeMessage(err.Error())
		}
		return CanonicalError{Name: NameUnknownError, Detail: detail, StatusCode: 1}
	}
}

// SanitizeAPIError extracts a canonical name and human detail from a decoded
// API error body. Detail preference: error_description, then message, then
// the joined messages of _embedded.errors.
func SanitizeAPIError(body any) (name, detail string) {
	m, ok := body.(map[string]any)
	if !ok {
		return NameAPIError, genericAPIDetail
	}

	name = NameAPIError
	if v, ok := m["error"].(string); ok && v != "" {
		name = v
	}

	if v, ok := m["error_description"].(string); ok && v != "" {
		detail = v
	}
	if detail == "" {
		if v, ok := m["message"].(string); ok {
			detail = v
		}
	}
	if detail == "" {
		detail = joinEmbeddedErrors(m)
	}
	if detail == "" {
		detail = genericAPIDetail
	}
	return name, detail
}

// joinEmbeddedErrors flattens validation entries of shape
// {_embedded: {errors: [{path, message}, ...]}} into "msg; msg".
func joinEmbeddedErrors(m map[string]any) string {
	embedded, ok := m["_embedded"].(map[string]any)
	if !ok {
		return ""
	}
	entries, ok := embedded["errors"].([]any)
	if !ok {
		return ""
	}

	var parts []string
	for _, entry := range entries {
		em, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		msg, _ := em["message"].(string)
		if msg == "" {
			msg, _ = em["path"].(string)
		}
		if msg != "" {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}

// sensitivePatterns match credential material that must never reach output:
// bearer tokens, token key-value pairs (access_token=, refresh_token=,
// token:), and client secret key-value pairs.
var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bearer\s+[^\s"',;]+`),
	regexp.MustCompile(`(?i)\w*token["']?\s*[:=]\s*["']?[^\s"',;&]+`),
	regexp.MustCompile(`(?i)client[_-]secret["']?\s*[:=]\s*["']?[^\s"',;&]+`),
}

// SanitizeMessage redacts secrets from a message and caps its length at 500
// characters, appending a truncation marker when cut.
func SanitizeMessage(s string) string {
	for _, re := range sensitivePatterns {
		s = re.ReplaceAllString(s, RedactionMark)
	}
	if len(s) > maxDetailLen {
		s = s[:maxDetailLen] + truncationMark
	}
	return s
}

// WriteError emits the canonical error payload as a single JSON line. This is
// the sole failure output of the process; the caller exits non-zero after.
func WriteError(w io.Writer, err error) CanonicalError {
	ce := Normalize(err)
	payload := struct {
		Error CanonicalError `json:"error"`
	}{ce}
	_ = json.NewEncoder(w).Encode(payload)
	return ce
}
