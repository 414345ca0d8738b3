package Iservices

import (
	"context"

	"converse-backend/internal/domain/dto"
)

type IChatService interface {
	HandleChat(ctx context.Context, conversationID string, prompt string) (dto.ChatResponse, error)
}
