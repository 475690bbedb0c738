package openai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/akarpov/ai-relay/pkg/domain"
)

type client struct {
	api   *openai.Client
	model string
}

// NewClient creates a chat-completion and image-generation client. The
// client is constructed once at startup and reused across requests; it
// holds no per-request state.
func NewClient(token, model string) (*client, error) {
	if token == "" {
		return nil, fmt.Errorf("token is empty")
	}
	return &client{
		api:   openai.NewClient(token),
		model: model,
	}, nil
}

func (c *client) CompleteChat(ctx context.Context, messages []domain.ChatMessage) (*domain.Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: mapMessages(messages),
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("creating chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	return &domain.Completion{
		Text: resp.Choices[0].Message.Content,
		Usage: domain.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func (c *client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	req := openai.ImageRequest{
		Prompt:         prompt,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	}

	resp, err := c.api.CreateImage(ctx, req)
	if err != nil {
		return "", fmt.Errorf("creating image: %w", err)
	}

	if len(resp.Data) == 0 {
		return "", fmt.Errorf("no images in response")
	}

	return resp.Data[0].URL, nil
}

func mapMessages(messages []domain.ChatMessage) []openai.ChatCompletionMessage {
	mapped := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		mapped = append(mapped, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return mapped
}
