// Package client wraps the hosted chat-completion API behind a small
// request/response surface. One client is bound to one API key; the model
// is chosen per call because the user can switch it between generations.
package client

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/schema"

	"linkdraft/internal/prompt"
)

type OpenAIClient struct {
	apiKey string
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{apiKey: apiKey}
}

// Complete sends a system + user message pair to the given model and returns
// the assistant content verbatim. A blank reply is not an error here; the
// caller decides how to surface it.
func (c *OpenAIClient) Complete(ctx context.Context, model, systemMessage, userMessage string) (string, error) {
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey: c.apiKey,
		Model:  model,
	})
	if err != nil {
		log.Printf("Error creating OpenAI client: %v", err)
		return "", fmt.Errorf("create chat model: %w", err)
	}

	out, err := chatModel.Generate(ctx, []*schema.Message{
		schema.SystemMessage(systemMessage),
		schema.UserMessage(userMessage),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if out == nil {
		return "", nil
	}
	return out.Content, nil
}

// CleanProfile summarizes noisy page innerText into a usable profile
// description. Returns trimmed content; empty means cleanup produced
// nothing useful.
func (c *OpenAIClient) CleanProfile(ctx context.Context, model, rawProfile string) (string, error) {
	content, err := c.Complete(ctx, model, prompt.ProfileCleanupPrompt(), rawProfile)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}
