package entities

// Settings is the process-wide assistant configuration. It is shared by
// every conversation in a deployment; updating it affects all subsequent
// chat requests immediately.
type Settings struct {
	Behavior     string   `json:"behavior"`
	Expertise    string   `json:"expertise"`
	Interests    []string `json:"interests"`
	Temperature  float32  `json:"temperature"`
	MaxTokens    int      `json:"max_tokens"`
	VoiceEnabled bool     `json:"voice_enabled"`
	LanguageCode string   `json:"language_code"`
}

func DefaultSettings() Settings {
	return Settings{
		Behavior:     "Casual",
		Expertise:    "General Knowledge",
		Interests:    []string{"AI", "Space"},
		Temperature:  0.7,
		MaxTokens:    500,
		VoiceEnabled: true,
		LanguageCode: "en",
	}
}
