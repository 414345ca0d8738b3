package repository

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"converse-backend/internal/domain/dto"
	"converse-backend/internal/domain/entities"
)

// SettingsStore holds the process-wide assistant settings behind a lock so
// concurrent reads and merges stay consistent.
type SettingsStore struct {
	mu       sync.RWMutex
	settings entities.Settings
}

func NewSettingsStore(initial entities.Settings) *SettingsStore {
	return &SettingsStore{settings: initial}
}

func (ss *SettingsStore) Read() entities.Settings {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.copySettings()
}

// Merge applies the non-nil fields of the patch and returns the resulting
// settings. An out-of-range value rejects the whole patch and leaves the
// store untouched.
func (ss *SettingsStore) Merge(patch dto.SettingsPatch) (entities.Settings, error) {
	if patch.Temperature != nil && (*patch.Temperature < 0 || *patch.Temperature > 2) {
		return entities.Settings{}, fmt.Errorf("temperature must be between 0 and 2, got %g", *patch.Temperature)
	}
	if patch.MaxTokens != nil && *patch.MaxTokens < 1 {
		return entities.Settings{}, fmt.Errorf("max_tokens must be positive, got %d", *patch.MaxTokens)
	}
	if patch.LanguageCode != nil && strings.TrimSpace(*patch.LanguageCode) == "" {
		return entities.Settings{}, errors.New("language_code must not be empty")
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if patch.Behavior != nil {
		ss.settings.Behavior = *patch.Behavior
	}
	if patch.Expertise != nil {
		ss.settings.Expertise = *patch.Expertise
	}
	if patch.Interests != nil {
		ss.settings.Interests = append([]string(nil), (*patch.Interests)...)
	}
	if patch.Temperature != nil {
		ss.settings.Temperature = *patch.Temperature
	}
	if patch.MaxTokens != nil {
		ss.settings.MaxTokens = *patch.MaxTokens
	}
	if patch.VoiceEnabled != nil {
		ss.settings.VoiceEnabled = *patch.VoiceEnabled
	}
	if patch.LanguageCode != nil {
		ss.settings.LanguageCode = *patch.LanguageCode
	}

	return ss.copySettings(), nil
}

// copySettings must be called with at least a read lock held.
func (ss *SettingsStore) copySettings() entities.Settings {
	s := ss.settings
	s.Interests = append([]string(nil), ss.settings.Interests...)
	return s
}
