package util

import (
	"regexp"
	"strings"
)

var (
	// Matches "Bearer <token>" (JWTs and opaque tokens). Keep it broad: tokens show up
	// in logs via downstream libraries and HTTP error messages.
	bearerTokenRe = regexp.MustCompile(`(?i)\bBearer\s+[^\s"']+`)

	// Common key=value formats that sometimes leak in error strings.
	apiKeyKVRe = regexp.MustCompile(`(?i)\b(api[_-]?key|gemini[_-]?api[_-]?key|x-goog-api-key)\b\s*[:=]\s*[^\s"']+`)

	// The REST transport sends the API key as a "key" query parameter, and *url.Error
	// messages echo the full request URL.
	queryKeyRe = regexp.MustCompile(`([?&])key=[^&\s"']+`)
)

// RedactSecrets removes obvious secret-bearing substrings from error/log strings.
//
// This is intentionally conservative: it should be safe to call on any message,
// including user-provided inputs and upstream error strings.
func RedactSecrets(s string) string {
	if s == "" {
		return ""
	}
	out := s
	out = bearerTokenRe.ReplaceAllString(out, "Bearer <redacted>")
	out = apiKeyKVRe.ReplaceAllString(out, "<redacted_kv>")
	out = queryKeyRe.ReplaceAllString(out, "${1}key=<redacted>")
	return strings.TrimSpace(out)
}

// Truncate redacts s and caps it at max bytes, flattening line breaks so the
// result fits on one log line. An ellipsis marks truncated output.
func Truncate(s string, max int) string {
	if s == "" {
		return ""
	}
	cut := s
	if max > 0 && len(cut) > max {
		cut = cut[:max]
	}
	out := RedactSecrets(cut)
	out = strings.ReplaceAll(out, "\n", " ")
	out = strings.ReplaceAll(out, "\r", " ")
	out = strings.TrimSpace(out)
	if out == "" {
		return ""
	}
	if len(s) > len(cut) {
		return out + "..."
	}
	return out
}
