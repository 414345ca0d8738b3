package provider

import "context"

type Message struct {
	Role    string
	Content string
}

type CompletionRequest struct {
	Model       string
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

type ICompletionProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type ISpeechProvider interface {
	Synthesize(ctx context.Context, text string, languageCode string) ([]byte, error)
}
