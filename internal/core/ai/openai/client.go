// Package openai is the chat-completion client used by the generation
// engines. Every call requests a JSON object response.
package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"tariften-backend/internal/infrastructure/config"
	"tariften-backend/internal/pkg/common"
)

const defaultBaseURL = "https://api.openai.com/v1"

// LLM is the completion interface the engines depend on.
type LLM interface {
	// Complete sends a system and user message and returns the raw
	// assistant text, expected to be a JSON object.
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
	Configured() bool
}

// Client calls the OpenAI chat completions API.
type Client struct {
	client    *resty.Client
	apiKey    string
	model     string
	maxTokens int
}

// NewClient creates the completion client from configuration.
func NewClient(cfg config.OpenAIConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	client := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &Client{
		client:    client,
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Complete sends one chat completion request and returns the assistant
// message content.
func (c *Client) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	if !c.Configured() {
		return "", common.NewConfigurationError("OpenAI API key is not configured")
	}

	req := chatRequest{
		Model:       c.model,
		Temperature: temperature,
		MaxTokens:   c.maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	req.ResponseFormat.Type = "json_object"

	start := time.Now()
	var body chatResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetBody(req).
		SetResult(&body).
		SetError(&body).
		Post("/chat/completions")
	common.LogAICall("chat_completion", time.Since(start), err, "")

	if err != nil {
		return "", common.NewProviderError("chat completion request failed", err)
	}
	if body.Error != nil {
		if body.Error.Code == "insufficient_quota" || body.Error.Type == "insufficient_quota" {
			return "", common.NewProviderError("OpenAI quota exhausted", nil)
		}
		return "", common.NewProviderError(
			fmt.Sprintf("OpenAI error: %s", body.Error.Message), nil)
	}
	if resp.IsError() {
		return "", common.NewProviderError(
			fmt.Sprintf("chat completion returned status %d", resp.StatusCode()), nil)
	}
	if len(body.Choices) == 0 {
		return "", common.NewMalformedResponseError("chat completion returned no choices")
	}

	content := strings.TrimSpace(body.Choices[0].Message.Content)
	if content == "" {
		return "", common.NewMalformedResponseError("chat completion returned empty content")
	}
	if body.Choices[0].FinishReason == "length" {
		common.LogWarn("chat completion truncated by max_tokens",
			zap.String("model", c.model))
	}
	return content, nil
}
