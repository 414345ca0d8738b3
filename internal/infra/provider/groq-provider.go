package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"converse-backend/internal/infra/logger"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider generates assistant replies through Groq's OpenAI-compatible
// chat completion API.
type GroqProvider struct {
	Logger *logger.Logger
	client *openai.Client
}

func NewGroqProvider(log *logger.Logger, apiKey string, baseURL string, timeout time.Duration) *GroqProvider {
	if baseURL == "" {
		baseURL = groqBaseURL
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &GroqProvider{
		Logger: log,
		client: openai.NewClientWithConfig(cfg),
	}
}

func (gp *GroqProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := gp.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		gp.Logger.Error(fmt.Sprintf("Completion request failed: %v", err))
		return "", &UpstreamError{Stage: StageCompletion, Err: err}
	}

	if len(resp.Choices) == 0 {
		err := errors.New("completion returned no choices")
		gp.Logger.Error(err.Error())
		return "", &UpstreamError{Stage: StageCompletion, Err: err}
	}

	return resp.Choices[0].Message.Content, nil
}
