package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const openAISystemPrompt = "You are an AI ethics and compliance assistant that analyzes workflow steps and outputs JSON."

// OpenAIClient implements Client for OpenAI chat completion models
type OpenAIClient struct {
	client *openai.Client
	config *Config
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		config: config,
	}, nil
}

// GenerateContent generates text content using the specified model tier
func (c *OpenAIClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.complete(ctx, prompt, tier, nil)
}

// GenerateJSON generates JSON content using the specified model tier
func (c *OpenAIClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	format := &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONObject,
	}
	text, err := c.complete(ctx, prompt, tier, format)
	if err != nil {
		return "", err
	}
	// JSON mode should suppress fences, but older models still emit them
	return CleanJSONBlock(text), nil
}

func (c *OpenAIClient) complete(ctx context.Context, prompt string, tier ModelTier, format *openai.ChatCompletionResponseFormat) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	req := openai.ChatCompletionRequest{
		Model:       modelName,
		Temperature: assessmentTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openAISystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: format,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *OpenAIClient) Close() error {
	return nil
}
