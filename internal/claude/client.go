package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/yt-scriptsmith/internal/models"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
	model          = "claude-3-opus-20240229"

	// Bounded output, moderate temperature: creative but consistent.
	maxOutputTokens = 4000
	temperature     = 0.7
)

var (
	ErrUpstream          = errors.New("Claude API request failed")
	ErrMalformedResponse = errors.New("malformed script response")
)

// Client calls the Anthropic messages API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a new Claude client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{},
	}
}

// NewClientWithBaseURL creates a client against a non-default endpoint.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

type messageRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateScript sends the prompt as a single user turn and parses the
// structured script out of the completion. One attempt only; any
// failure is terminal for the request.
func (c *Client) GenerateScript(ctx context.Context, prompt string) (*models.GeneratedScript, error) {
	body, err := json.Marshal(messageRequest{
		Model:       model,
		MaxTokens:   maxOutputTokens,
		Messages:    []message{{Role: "user", Content: prompt}},
		Temperature: temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp apiError
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
			return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, errResp.Error.Message)
		}
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var msg messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(msg.Content) == 0 || msg.Content[0].Text == "" {
		return nil, fmt.Errorf("%w: empty completion", ErrMalformedResponse)
	}

	return ParseScript(msg.Content[0].Text)
}

// ParseScript extracts the script object from free-form model output.
// The JSON span is located greedily, from the first '{' to the last
// '}'. That is a best-effort heuristic, not a parser: a stray closing
// brace in trailing prose breaks it, and that behavior is kept as is.
func ParseScript(text string) (*models.GeneratedScript, error) {
	text = stripFences(text)

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in completion", ErrMalformedResponse)
	}

	var raw struct {
		Title        string          `json:"title"`
		Introduction string          `json:"introduction"`
		Sections     json.RawMessage `json:"sections"`
		Conclusion   string          `json:"conclusion"`
		CallToAction string          `json:"callToAction"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if raw.Title == "" || raw.Introduction == "" || raw.Conclusion == "" || raw.CallToAction == "" {
		return nil, fmt.Errorf("%w: required field missing", ErrMalformedResponse)
	}
	trimmed := bytes.TrimSpace(raw.Sections)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: sections must be an array", ErrMalformedResponse)
	}

	sections := []models.ScriptSection{}
	if err := json.Unmarshal(trimmed, &sections); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &models.GeneratedScript{
		Title:        raw.Title,
		Introduction: raw.Introduction,
		Sections:     sections,
		Conclusion:   raw.Conclusion,
		CallToAction: raw.CallToAction,
	}, nil
}

// stripFences removes markdown code fences the model sometimes wraps
// JSON output in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
