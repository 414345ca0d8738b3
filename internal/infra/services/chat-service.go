package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"converse-backend/internal/domain/dto"
	"converse-backend/internal/domain/entities"
	Irepository "converse-backend/internal/domain/interfaces/repository"
	"converse-backend/internal/infra/logger"
	"converse-backend/internal/infra/provider"
)

// ChatService runs one chat exchange: record the user turn, ask the
// completion provider for a reply with the full history as context, narrate
// the reply when voice output is enabled, record the assistant turn.
type ChatService struct {
	Logger        *logger.Logger
	Settings      Irepository.SettingsRepository
	Conversations Irepository.ConversationRepository
	Completion    provider.ICompletionProvider
	Speech        provider.ISpeechProvider
	Model         string
}

func NewChatService(log *logger.Logger, settings Irepository.SettingsRepository, conversations Irepository.ConversationRepository, completion provider.ICompletionProvider, speech provider.ISpeechProvider, model string) *ChatService {
	return &ChatService{
		Logger:        log,
		Settings:      settings,
		Conversations: conversations,
		Completion:    completion,
		Speech:        speech,
		Model:         model,
	}
}

func (cs *ChatService) HandleChat(ctx context.Context, conversationID string, prompt string) (dto.ChatResponse, error) {
	settings := cs.Settings.Read()

	history := cs.Conversations.Append(conversationID, entities.Turn{
		Role:    entities.RoleUser,
		Content: prompt,
	})

	reply, err := cs.Completion.Complete(ctx, provider.CompletionRequest{
		Model:       cs.Model,
		Messages:    BuildPrompt(settings, history),
		Temperature: settings.Temperature,
		MaxTokens:   settings.MaxTokens,
	})
	if err != nil {
		// The user turn stays; no assistant turn is recorded for a failed
		// completion.
		return dto.ChatResponse{}, err
	}

	var audio *string
	if settings.VoiceEnabled {
		raw, synthErr := cs.Speech.Synthesize(ctx, reply, settings.LanguageCode)
		if synthErr != nil {
			// Narration failure degrades to text only.
			cs.Logger.Warn(fmt.Sprintf("Speech synthesis failed, returning text only: %v", synthErr))
		} else {
			encoded := base64.StdEncoding.EncodeToString(raw)
			audio = &encoded
		}
	}

	cs.Conversations.Append(conversationID, entities.Turn{
		Role:    entities.RoleAssistant,
		Content: reply,
		Audio:   audio,
	})

	return dto.ChatResponse{Response: reply, Audio: audio}, nil
}
