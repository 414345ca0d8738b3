package dto

// SettingsPatch is a partial settings update. Nil fields are left untouched
// by the merge; unknown JSON fields are dropped at decode time.
type SettingsPatch struct {
	Behavior     *string   `json:"behavior"`
	Expertise    *string   `json:"expertise"`
	Interests    *[]string `json:"interests"`
	Temperature  *float32  `json:"temperature"`
	MaxTokens    *int      `json:"max_tokens"`
	VoiceEnabled *bool     `json:"voice_enabled"`
	LanguageCode *string   `json:"language_code"`
}
