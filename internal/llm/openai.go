package llm

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/KaanSezen1923/MovieRag/internal/config"
)

type OpenAIClient struct {
	client *openai.Client
	cfg    config.LLMConfig
}

func NewOpenAIClient(cfg config.LLMConfig) *OpenAIClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	client := openai.NewClientWithConfig(clientCfg)
	return &OpenAIClient{
		client: client,
		cfg:    cfg,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, systemInstruction, userMessage string, expectJSON bool) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemInstruction,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userMessage,
			},
		},
	}
	if c.cfg.Temperature != nil {
		req.Temperature = *c.cfg.Temperature
	}
	if c.cfg.TopP != nil {
		req.TopP = *c.cfg.TopP
	}
	if expectJSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) > 0 {
		return resp.Choices[0].Message.Content, nil
	}
	return "", fmt.Errorf("no response choices")
}
