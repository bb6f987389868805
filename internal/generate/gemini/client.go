package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/shpitdev/air-assist/internal/generate"
)

// Client generates text through the official genai SDK.
type Client struct {
	client *genai.Client
	model  string
	cfg    generate.Config
}

// New constructs a Client. cfg is validated and defaulted; the timeout applies to
// both the SDK's HTTP client and each call's context.
func New(ctx context.Context, cfg generate.Config) (*Client, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	return &Client{
		client: client,
		model:  cfg.Model,
		cfg:    cfg,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Generate sends prompt as a single user turn and returns the first candidate's
// first text part.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(
		ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			CandidateCount:   1,
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return "", classifyErr(err)
	}
	return firstText(resp)
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil ||
		len(resp.Candidates) == 0 ||
		resp.Candidates[0] == nil ||
		resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 ||
		resp.Candidates[0].Content.Parts[0] == nil {
		return "", generate.MissingContent(marshalForSnippet(resp))
	}
	text := resp.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", generate.ErrEmptyResponse
	}
	return text, nil
}

func classifyErr(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &generate.TransportError{
			Op: "generateContent",
			Err: &generate.HTTPError{
				StatusCode: apiErr.Code,
				Status:     apiErr.Status,
				Message:    generate.Snippet([]byte(apiErr.Message)),
			},
		}
	}
	return &generate.TransportError{Op: "generateContent", Err: err}
}

func marshalForSnippet(resp *genai.GenerateContentResponse) []byte {
	if resp == nil {
		return nil
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return nil
	}
	return b
}
