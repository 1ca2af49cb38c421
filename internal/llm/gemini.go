package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiClient implements Client using Google's Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed completion client.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-pro"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Model returns the configured model identifier.
func (c *GeminiClient) Model() string {
	return c.model
}

// Complete sends one prompt and returns the full reply with token counts
// taken from the response usage metadata.
func (c *GeminiClient) Complete(ctx context.Context, prompt string, maxTokens int) (Reply, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	})
	if err != nil {
		return Reply{}, fmt.Errorf("gemini generate failed: %w", err)
	}

	reply := Reply{Text: result.Text()}
	if result.UsageMetadata != nil {
		reply.InputTokens = int(result.UsageMetadata.PromptTokenCount)
		reply.OutputTokens = int(result.UsageMetadata.CandidatesTokenCount)
	}
	if reply.Text == "" {
		return Reply{}, fmt.Errorf("gemini returned no text")
	}
	return reply, nil
}
