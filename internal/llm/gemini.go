package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/KaanSezen1923/MovieRag/internal/config"
)

type GeminiClient struct {
	client *genai.Client
	cfg    config.LLMConfig
}

func NewGeminiClient(ctx context.Context, cfg config.LLMConfig) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, err
	}
	return &GeminiClient{
		client: client,
		cfg:    cfg,
	}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, systemInstruction, userMessage string, expectJSON bool) (string, error) {
	model := c.client.GenerativeModel(c.cfg.Model)
	if c.cfg.Temperature != nil {
		model.SetTemperature(*c.cfg.Temperature)
	}
	if c.cfg.TopP != nil {
		model.SetTopP(*c.cfg.TopP)
	}
	model.SetTopK(c.cfg.TopK)
	model.SetMaxOutputTokens(int32(c.cfg.MaxTokens))
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	if expectJSON {
		model.ResponseMIMEType = "application/json"
	} else {
		model.ResponseMIMEType = "text/plain"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(userMessage))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil && len(resp.Candidates[0].Content.Parts) > 0 {
		if txt, ok := resp.Candidates[0].Content.Parts[0].(genai.Text); ok {
			return string(txt), nil
		}
	}

	return "", fmt.Errorf("no response candidates or content")
}
