package repository

import (
	"converse-backend/internal/domain/dto"
	"converse-backend/internal/domain/entities"
)

// ConversationRepository resolves and mutates the turn sequence of one
// conversation, addressed by an opaque conversation id.
type ConversationRepository interface {
	Append(conversationID string, turn entities.Turn) []entities.Turn
	Snapshot(conversationID string) []entities.Turn
	Clear(conversationID string)
}

// SettingsRepository exposes the shared assistant settings.
type SettingsRepository interface {
	Read() entities.Settings
	Merge(patch dto.SettingsPatch) (entities.Settings, error)
}
