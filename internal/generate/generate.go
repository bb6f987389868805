// Package generate defines the boundary to the external text-generation service.
//
// A Generator performs exactly one outbound call per Generate invocation and never
// retries.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shpitdev/air-assist/internal/util"
)

// DefaultTimeout bounds a single generation call when Config.Timeout is unset.
const DefaultTimeout = 30 * time.Second

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gemini-1.5-flash-latest"

// snippetMax caps how much of a response payload is attached to errors.
const snippetMax = 256

// ErrEmptyResponse reports a successful call whose text part was blank.
var ErrEmptyResponse = errors.New("generate: empty response text")

// Generator turns a prompt into raw model text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Func adapts a function to the Generator interface.
type Func func(ctx context.Context, prompt string) (string, error)

func (f Func) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Config is the explicit configuration for a Generator implementation.
type Config struct {
	APIKey string
	Model  string

	// BaseURL overrides the Gemini API base URL. Useful for proxies/testing.
	BaseURL string

	// Timeout caps one Generate call. <=0 means DefaultTimeout.
	Timeout time.Duration
}

// WithDefaults returns a trimmed copy with Model and Timeout filled in.
func (c Config) WithDefaults() Config {
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.Model = strings.TrimSpace(c.Model)
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Validate reports configuration that cannot produce a working client.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	return nil
}

// TransportError reports a failed exchange with the generation service: the call
// could not be made, or its response did not carry the expected content path.
type TransportError struct {
	Op string

	// Snippet is a redacted, truncated hint of the received payload.
	Snippet string

	Err error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "generate: transport error"
	}
	parts := []string{"generate: " + strings.TrimSpace(e.Op)}
	if e.Err != nil {
		parts = append(parts, util.RedactSecrets(e.Err.Error()))
	}
	if strings.TrimSpace(e.Snippet) != "" {
		parts = append(parts, "body="+strings.TrimSpace(e.Snippet))
	}
	return strings.Join(parts, ": ")
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// HTTPError is a sanitized summary of a non-2xx response from the generation service.
//
// Important: do not include raw response bodies here (can leak prompts/keys).
type HTTPError struct {
	StatusCode int
	Status     string

	// Message is the upstream error.message when the body is a Google API error envelope.
	Message string

	// Snippet is a redacted, truncated hint for non-envelope responses.
	Snippet string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "generation http error"
	}
	parts := []string{fmt.Sprintf("generation api error: status=%d", e.StatusCode)}
	if strings.TrimSpace(e.Status) != "" {
		parts = append(parts, "statusText="+strings.TrimSpace(e.Status))
	}
	if strings.TrimSpace(e.Message) != "" {
		parts = append(parts, "message="+strings.TrimSpace(e.Message))
	}
	if strings.TrimSpace(e.Snippet) != "" {
		parts = append(parts, "body="+strings.TrimSpace(e.Snippet))
	}
	return strings.Join(parts, " ")
}

// Snippet returns a redacted, bounded excerpt of a response payload.
func Snippet(body []byte) string {
	return util.Truncate(string(body), snippetMax)
}

// MissingContent builds the TransportError for a response lacking
// candidates[0].content.parts[0].text.
func MissingContent(payload []byte) error {
	return &TransportError{
		Op:      "response missing candidates[0].content.parts[0].text",
		Snippet: Snippet(payload),
	}
}

// IsEmpty reports whether err marks a blank response text.
func IsEmpty(err error) bool {
	return errors.Is(err, ErrEmptyResponse)
}
