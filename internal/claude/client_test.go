package claude

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yt-scriptsmith/internal/models"
)

const validScriptJSON = `{
	"title": "How Acme Does It",
	"introduction": "Welcome back!",
	"sections": [{"title": "Part one", "content": "The good stuff"}],
	"conclusion": "That is a wrap.",
	"callToAction": "Subscribe for more."
}`

func TestParseScript(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{
			name: "bare object",
			text: validScriptJSON,
		},
		{
			name: "object surrounded by prose",
			text: "Here is the script you asked for:\n\n" + validScriptJSON + "\n\nLet me know if you want changes",
		},
		{
			name: "markdown fenced",
			text: "```json\n" + validScriptJSON + "\n```",
		},
		{
			name:    "no braces at all",
			text:    "I am unable to produce a script for this channel.",
			wantErr: true,
		},
		{
			name:    "empty text",
			text:    "",
			wantErr: true,
		},
		{
			name:    "span is not JSON",
			text:    "{this is not json}",
			wantErr: true,
		},
		{
			name:    "missing title",
			text:    `{"introduction": "i", "sections": [], "conclusion": "c", "callToAction": "cta"}`,
			wantErr: true,
		},
		{
			name:    "missing callToAction",
			text:    `{"title": "t", "introduction": "i", "sections": [], "conclusion": "c"}`,
			wantErr: true,
		},
		{
			name:    "sections absent",
			text:    `{"title": "t", "introduction": "i", "conclusion": "c", "callToAction": "cta"}`,
			wantErr: true,
		},
		{
			name:    "sections null",
			text:    `{"title": "t", "introduction": "i", "sections": null, "conclusion": "c", "callToAction": "cta"}`,
			wantErr: true,
		},
		{
			name:    "sections not an array",
			text:    `{"title": "t", "introduction": "i", "sections": "none", "conclusion": "c", "callToAction": "cta"}`,
			wantErr: true,
		},
		{
			name: "empty sections array is accepted",
			text: `{"title": "t", "introduction": "i", "sections": [], "conclusion": "c", "callToAction": "cta"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, err := ParseScript(tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedResponse)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, script.Title)
			assert.NotEmpty(t, script.Introduction)
			assert.NotNil(t, script.Sections)
			assert.NotEmpty(t, script.Conclusion)
			assert.NotEmpty(t, script.CallToAction)
		})
	}
}

func TestParseScriptFields(t *testing.T) {
	script, err := ParseScript("Sure! " + validScriptJSON)
	require.NoError(t, err)

	assert.Equal(t, "How Acme Does It", script.Title)
	assert.Equal(t, "Welcome back!", script.Introduction)
	require.Len(t, script.Sections, 1)
	assert.Equal(t, models.ScriptSection{Title: "Part one", Content: "The good stuff"}, script.Sections[0])
	assert.Equal(t, "That is a wrap.", script.Conclusion)
	assert.Equal(t, "Subscribe for more.", script.CallToAction)
}

// TestParseScriptGreedySpan pins down the documented heuristic: the
// span runs from the first '{' to the last '}', so a closing brace in
// trailing prose poisons the parse.
func TestParseScriptGreedySpan(t *testing.T) {
	_, err := ParseScript(validScriptJSON + "\n\nP.S. remember to escape } in templates")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func completionResponse(text string) string {
	body, _ := json.Marshal(map[string]any{
		"content": []map[string]string{{"type": "text", "text": text}},
	})
	return string(body)
}

func TestGenerateScript(t *testing.T) {
	var gotReq messageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "secret-key", r.Header.Get("x-api-key"))
		assert.Equal(t, apiVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionResponse("Here you go: " + validScriptJSON)))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("secret-key", srv.URL)
	script, err := client.GenerateScript(context.Background(), "write me a script")
	require.NoError(t, err)

	assert.Equal(t, "How Acme Does It", script.Title)

	assert.Equal(t, model, gotReq.Model)
	assert.Equal(t, maxOutputTokens, gotReq.MaxTokens)
	assert.Equal(t, temperature, gotReq.Temperature)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "write me a script", gotReq.Messages[0].Content)
}

func TestGenerateScriptUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL("k", srv.URL)
	_, err := client.GenerateScript(context.Background(), "p")

	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestGenerateScriptTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClientWithBaseURL("k", srv.URL)
	_, err := client.GenerateScript(context.Background(), "p")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGenerateScriptMalformedCompletion(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "completion without JSON", body: completionResponse("sorry, no script today")},
		{name: "empty content", body: `{"content": []}`},
		{name: "empty text block", body: completionResponse("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClientWithBaseURL("k", srv.URL)
			_, err := client.GenerateScript(context.Background(), "p")
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}
