package entities

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in a conversation. Audio holds a base64-encoded MP3
// payload on assistant turns generated while voice output was enabled; it is
// nil everywhere else, never attached to a user turn.
type Turn struct {
	Role    string  `json:"role"`
	Content string  `json:"content"`
	Audio   *string `json:"audio"`
}
