package summarize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSummarizer(baseURL string) *Anthropic {
	return NewAnthropic(AnthropicConfig{
		APIKey:  "test-key",
		Model:   "claude-haiku-4-5-20251001",
		Options: []option.RequestOption{option.WithBaseURL(baseURL), option.WithMaxRetries(0)},
	}, zap.NewNop())
}

func TestAnthropic_Summarize(t *testing.T) {
	var body map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "/messages")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"id":   "msg_test_001",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": "  Bestbuy has the best value.  "},
			},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": "end_turn",
			"usage": map[string]any{
				"input_tokens":  120,
				"output_tokens": 12,
			},
		})
	}))
	defer ts.Close()

	got, err := newTestSummarizer(ts.URL).Summarize(context.Background(), "Price Comparison for: x")
	require.NoError(t, err)
	assert.Equal(t, "Bestbuy has the best value.", got)

	assert.EqualValues(t, 500, body["max_tokens"])
	assert.InDelta(t, 0.7, body["temperature"], 1e-9)
	assert.Equal(t, "claude-haiku-4-5-20251001", body["model"])
	assert.Contains(t, string(mustJSON(t, body["messages"])), "Price Comparison for: x")
}

func TestAnthropic_ZeroTemperature(t *testing.T) {
	var body map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_test_002","type":"message","role":"assistant",` +
			`"content":[{"type":"text","text":"Newegg."}],"model":"claude-haiku-4-5-20251001",` +
			`"stop_reason":"end_turn","usage":{"input_tokens":10,"output_tokens":2}}`))
	}))
	defer ts.Close()

	zero := 0.0
	s := NewAnthropic(AnthropicConfig{
		APIKey:      "test-key",
		Model:       "claude-haiku-4-5-20251001",
		Temperature: &zero,
		Options:     []option.RequestOption{option.WithBaseURL(ts.URL), option.WithMaxRetries(0)},
	}, zap.NewNop())

	_, err := s.Summarize(context.Background(), "report")
	require.NoError(t, err)

	require.Contains(t, body, "temperature")
	assert.InDelta(t, 0, body["temperature"], 1e-9)
}

func TestAnthropic_SummarizeError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"bad"}}`))
	}))
	defer ts.Close()

	_, err := newTestSummarizer(ts.URL).Summarize(context.Background(), "report")
	assert.Error(t, err)
}

func TestPrompt_EmbedsReport(t *testing.T) {
	p := Prompt("REPORT BODY")
	assert.Contains(t, p, "REPORT BODY")
	assert.Contains(t, p, "Best value options")
	assert.Contains(t, p, "Analysis:")
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
