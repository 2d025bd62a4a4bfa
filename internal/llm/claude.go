package llm

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/KaanSezen1923/MovieRag/internal/config"
)

type ClaudeClient struct {
	client *anthropic.Client
	cfg    config.LLMConfig
}

func NewClaudeClient(cfg config.LLMConfig) *ClaudeClient {
	var opts []anthropic.ClientOption
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}
	client := anthropic.NewClient(cfg.APIKey, opts...)

	return &ClaudeClient{
		client: client,
		cfg:    cfg,
	}
}

func (c *ClaudeClient) Generate(ctx context.Context, systemInstruction, userMessage string, expectJSON bool) (string, error) {
	// Anthropic has no response-format switch; the JSON requirement lives in
	// the system instruction and the caller's parser tolerates extra prose.
	if expectJSON {
		systemInstruction += "\n\nRespond with valid JSON only, no surrounding text."
	}

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       anthropic.Model(c.cfg.Model),
		System:      systemInstruction,
		Temperature: c.cfg.Temperature,
		TopP:        c.cfg.TopP,
		MaxTokens:   c.cfg.MaxTokens,
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewTextMessageContent(userMessage),
				},
			},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Content) > 0 && resp.Content[0].Text != nil {
		return *resp.Content[0].Text, nil
	}
	return "", fmt.Errorf("no response content")
}
