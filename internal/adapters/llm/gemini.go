package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// TextGenerator produces a single completion for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

type GenerateOptions struct {
	Temperature     float32
	MaxOutputTokens int32
}

// Gemini is a TextGenerator backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini: api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) GenerateText(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(opts.Temperature),
	}
	if opts.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = opts.MaxOutputTokens
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("gemini: empty response")
	}
	return text, nil
}
