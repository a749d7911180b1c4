package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patient-companion/internal/core"
)

type capturedRequest struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	Messages  []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestAnswerRelaysCompletionVerbatim(t *testing.T) {
	var captured capturedRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		// Citations are part of the upstream response but unused here.
		json.NewEncoder(w).Encode(map[string]any{
			"id":        "cmpl-1",
			"citations": []string{"https://example.org/flu"},
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "Drink fluids and rest."}},
			},
		})
	}))
	defer ts.Close()

	client := NewSearchClient("test-key", ts.URL, "")
	answer, err := client.Answer(context.Background(), "what helps with the flu?")
	require.NoError(t, err)

	assert.Equal(t, "Drink fluids and rest.", answer)
	assert.Equal(t, defaultModel, captured.Model)
	assert.Equal(t, answerMaxTokens, captured.MaxTokens)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, systemInstruction, captured.Messages[0].Content)
	assert.Equal(t, "what helps with the flu?", captured.Messages[1].Content)
}

func TestAnswerUpstreamFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := NewSearchClient("test-key", ts.URL, "")
	_, err := client.Answer(context.Background(), "anything")
	assert.ErrorIs(t, err, core.ErrUpstream)
}

func TestAnswerEmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "cmpl-2", "choices": []any{}})
	}))
	defer ts.Close()

	client := NewSearchClient("test-key", ts.URL, "")
	_, err := client.Answer(context.Background(), "anything")
	assert.ErrorIs(t, err, core.ErrUpstream)
}
