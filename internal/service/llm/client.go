package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// temperature is fixed for every completion request.
const temperature float32 = 0.8

// DefaultTimeout bounds a completion request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// ErrEmptyCompletion reports a backend response with no usable content.
var ErrEmptyCompletion = errors.New("empty completion")

// Completer issues a single chat-completion request. Implementations report
// failures to the caller instead of retrying.
type Completer interface {
	Complete(ctx context.Context, messages []*schema.Message, maxTokens int) (string, error)
}

// Client wraps a chat model: one request per call, bounded by a timeout,
// no retries.
type Client struct {
	chatModel model.BaseChatModel
	timeout   time.Duration
}

// New wraps the given chat model.
func New(chatModel model.BaseChatModel, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{chatModel: chatModel, timeout: timeout}
}

// Complete sends the message list to the backend and returns the trimmed
// completion text. A timeout counts as a failure like any other backend error.
func (c *Client) Complete(ctx context.Context, messages []*schema.Message, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.chatModel.Generate(ctx, messages,
		model.WithMaxTokens(maxTokens),
		model.WithTemperature(temperature),
	)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if resp == nil {
		return "", ErrEmptyCompletion
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
