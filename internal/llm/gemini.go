package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

type GeminiBackend struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

func NewGeminiBackend(ctx context.Context, cfg Config) (*GeminiBackend, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiBackend{
		client:      client,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   int32(cfg.MaxTokens),
	}, nil
}

func (b *GeminiBackend) Complete(ctx context.Context, system, user string) (string, error) {
	conf := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(b.temperature),
	}
	if b.maxTokens > 0 {
		conf.MaxOutputTokens = b.maxTokens
	}

	resp, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(user), conf)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}
