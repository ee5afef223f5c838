package ai

// Role names the author of a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one turn of a conversation sent ahead of the prompt.
type Message struct {
	Role Role
	Text string
}

// GenerationConfig carries the sampling parameters for a single call.
type GenerationConfig struct {
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32

	// ResponseMIMEType asks the model for a specific output encoding,
	// e.g. "application/json". Empty means plain text.
	ResponseMIMEType string
}

// MIMETypeJSON requests JSON output from providers that support it.
const MIMETypeJSON = "application/json"
