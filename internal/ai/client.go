// Package ai turns the aggregated plan context into a personalized itinerary
// using Gemini, with a rule-based fallback when the model is unreachable.
package ai

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Generation settings per call type.
const (
	planTemperature     = 0.8
	planMaxTokens       = 800
	followUpTemperature = 0.7
	followUpMaxTokens   = 300

	defaultModel = "gemini-2.0-flash"
)

// Generator produces text for a prompt. The Gemini client implements it;
// tests substitute fakes.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float32, maxTokens int32) (string, error)
}

// GeminiClient is the Generator backed by the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient dials the Gemini API.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: defaultModel}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string, temperature float32, maxTokens int32) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(temperature)
	model.SetMaxOutputTokens(maxTokens)

	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	var text string
	if len(res.Candidates) > 0 && res.Candidates[0].Content != nil {
		for _, part := range res.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text += string(txt)
			}
		}
	}
	if text == "" {
		return "", fmt.Errorf("gemini returned no text candidates")
	}
	return text, nil
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
