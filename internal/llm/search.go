package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"patient-companion/internal/core"
)

// Client answers free-text questions by delegating to an external
// completion service.
type Client interface {
	Answer(ctx context.Context, question string) (string, error)
}

const (
	// defaultBaseURL points at the Perplexity API, which speaks the OpenAI
	// chat-completion wire format.
	defaultBaseURL = "https://api.perplexity.ai"
	defaultModel   = "sonar"

	systemInstruction = "You are an AI assistant."
	answerMaxTokens   = 1024
)

// SearchClient relays questions to a Perplexity-compatible completion
// endpoint. Single attempt, no caching; the completion text is returned
// verbatim and citations are ignored.
type SearchClient struct {
	client *openai.Client
	model  string
}

// NewSearchClient constructs a relay client. Empty baseURL and model fall
// back to the Perplexity defaults.
func NewSearchClient(apiKey, baseURL, model string) *SearchClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &SearchClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Answer forwards the question as a single chat turn and returns the
// completion text unmodified.
func (c *SearchClient) Answer(ctx context.Context, question string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: answerMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %v: %w", err, core.ErrUpstream)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices: %w", core.ErrUpstream)
	}
	return resp.Choices[0].Message.Content, nil
}
