package services

import (
	"fmt"
	"strings"

	"converse-backend/internal/domain/entities"
	"converse-backend/internal/infra/provider"
)

const interestsFallback = "various topics"

// BuildPrompt assembles the message list sent to the completion provider:
// one system instruction derived from the settings, then every stored turn
// as role and content only. Audio stays local.
func BuildPrompt(settings entities.Settings, history []entities.Turn) []provider.Message {
	messages := make([]provider.Message, 0, len(history)+1)
	messages = append(messages, provider.Message{
		Role:    entities.RoleSystem,
		Content: systemInstruction(settings),
	})
	for _, turn := range history {
		messages = append(messages, provider.Message{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	return messages
}

func systemInstruction(settings entities.Settings) string {
	interests := interestsFallback
	if len(settings.Interests) > 0 {
		interests = strings.Join(settings.Interests, ", ")
	}
	behavior := strings.ToLower(settings.Behavior)

	return fmt.Sprintf(
		"You are a %s assistant specialized in %s. Your interests include %s. Respond in a %s manner. Provide clear, concise answers in a structured bullet-point format.",
		behavior, settings.Expertise, interests, behavior,
	)
}
