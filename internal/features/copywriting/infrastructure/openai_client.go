package infrastructure

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"sangbangcopy/backend/internal/features/copywriting/domain"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"golang.org/x/sync/errgroup"
)

// aiClient is the implementation of AIClient over the chat-completions API.
// With the default base URL this talks to Gemini's OpenAI-compatible endpoint.
type aiClient struct {
	client *openai.Client
}

// NewAIClient creates a new generative API client.
func NewAIClient(apiKey, baseURL string) (AIClient, error) {
	if apiKey == "" {
		return nil, errors.New("generative API key is not configured")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &aiClient{client: openai.NewClientWithConfig(cfg)}, nil
}

func (c *aiClient) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	return c.complete(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
}

func (c *aiClient) GenerateStructured(ctx context.Context, model, prompt string, schema *jsonschema.Definition) (string, error) {
	format := &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONObject,
	}
	if schema != nil {
		format = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "generated_copy",
				Schema: schema,
				Strict: true,
			},
		}
	}

	return c.complete(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: format,
	})
}

func (c *aiClient) GenerateWithImages(ctx context.Context, model, prompt string, images []domain.ImageFile) (string, error) {
	parts := make([]openai.ChatMessagePart, len(images)+1)
	parts[0] = openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeText,
		Text: prompt,
	}

	// Encode all images concurrently; each goroutine writes its own slot so
	// the part order matches the input order.
	g, _ := errgroup.WithContext(ctx)
	for i, img := range images {
		g.Go(func() error {
			if len(img.Data) == 0 {
				return fmt.Errorf("image %d is empty", i)
			}
			parts[i+1] = openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    fmt.Sprintf("data:%s;base64,%s", img.MIMEType, base64.StdEncoding.EncodeToString(img.Data)),
					Detail: openai.ImageURLDetailAuto,
				},
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	return c.complete(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
	})
}

func (c *aiClient) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
