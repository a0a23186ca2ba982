// Package claude is an Anthropic Messages API backend for highlight
// summaries.
package claude

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
)

const DefaultModel = anthropic.Model("claude-haiku-4-5")

const maxTokens = 1024

var ErrRateLimited = errors.New("anthropic rate limit hit")

type Client struct {
	client anthropic.Client
	model  anthropic.Model
}

func NewClient(apiKey, model string, opts ...anthropicopt.RequestOption) *Client {
	m := anthropic.Model(model)
	if model == "" {
		m = DefaultModel
	}
	opts = append([]anthropicopt.RequestOption{anthropicopt.WithAPIKey(apiKey)}, opts...)
	return &Client{
		client: anthropic.NewClient(opts...),
		model:  m,
	}
}

// Complete sends prompt as a single user message and joins the text blocks
// of the reply.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(0.2),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("%w: %w", ErrRateLimited, err)
	}
	if err != nil {
		return "", fmt.Errorf("failed to create message: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no text in response from Anthropic")
	}
	return b.String(), nil
}
