package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type groqProvider struct {
	client *openai.Client
	model  string
}

// NewGroqProvider talks to Groq's OpenAI-compatible chat completion API.
// baseURL can be overridden to point at any other OpenAI-compatible server.
func NewGroqProvider(apiKey, baseURL, model string) Provider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &groqProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (p *groqProvider) Name() string { return "groq" }

// Ping lists the available models, which validates connectivity and the API
// key without spending completion tokens.
func (p *groqProvider) Ping(ctx context.Context) error {
	if _, err := p.client.ListModels(ctx); err != nil {
		return fmt.Errorf("groq is unreachable: %w", err)
	}
	return nil
}

func (p *groqProvider) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: req.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return &GenerateResponse{Model: resp.Model, Response: resp.Choices[0].Message.Content}, nil
}
