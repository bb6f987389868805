// Package rest calls the Gemini generateContent endpoint with a hand-built JSON
// envelope and the API key in the "key" query parameter.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shpitdev/air-assist/internal/generate"
)

// DefaultBaseURL is the public Gemini API host.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

const apiVersion = "v1beta"

// Client is a minimal HTTP client for the generateContent endpoint.
type Client struct {
	baseURL *url.URL
	apiKey  string
	model   string
	http    *http.Client
}

type requestPart struct {
	Text string `json:"text"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestEnvelope struct {
	Contents []requestContent `json:"contents"`
}

type responseEnvelope struct {
	Candidates []struct {
		Content *struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// googleErrorEnvelope is the standard error envelope used by Google APIs.
type googleErrorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// New constructs a client from cfg. The configured timeout is applied to the
// underlying http.Client as well as to each call's context.
func New(cfg generate.Config) (*Client, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: u,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		http:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Generate posts prompt and returns candidates[0].content.parts[0].text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(requestEnvelope{
		Contents: []requestContent{{Parts: []requestPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", &generate.TransportError{Op: "encode request", Err: err}
	}

	if c.http.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.http.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", &generate.TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &generate.TransportError{Op: "post generateContent", Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &generate.TransportError{Op: "read response", Err: err}
	}
	if resp.StatusCode/100 != 2 {
		return "", &generate.TransportError{Op: "post generateContent", Err: newHTTPError(resp, b)}
	}

	return extractText(b)
}

func (c *Client) endpoint() string {
	u := c.baseURL.ResolveReference(&url.URL{
		Path: fmt.Sprintf("%s/models/%s:generateContent", apiVersion, c.model),
	})
	q := url.Values{}
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()
	return u.String()
}

func extractText(b []byte) (string, error) {
	var env responseEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return "", &generate.TransportError{
			Op:      "decode response envelope",
			Snippet: generate.Snippet(b),
			Err:     err,
		}
	}
	if len(env.Candidates) == 0 ||
		env.Candidates[0].Content == nil ||
		len(env.Candidates[0].Content.Parts) == 0 ||
		env.Candidates[0].Content.Parts[0].Text == nil {
		return "", generate.MissingContent(b)
	}
	text := *env.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", generate.ErrEmptyResponse
	}
	return text, nil
}

func newHTTPError(resp *http.Response, body []byte) error {
	h := &generate.HTTPError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}

	// Best effort: parse the Google API error envelope.
	var env googleErrorEnvelope
	if len(body) > 0 && json.Unmarshal(body, &env) == nil && strings.TrimSpace(env.Error.Message) != "" {
		h.Message = generate.Snippet([]byte(env.Error.Message))
		return h
	}

	// Fallback: include a small, redacted hint only.
	h.Snippet = generate.Snippet(body)
	return h
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse gemini base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("gemini base URL must include a host (got %q)", raw)
	}
	// Ensure the base path ends with a slash so ResolveReference treats it as a directory.
	u.Path = strings.TrimRight(u.Path, "/") + "/"
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
