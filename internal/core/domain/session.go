package domain

// Conversation roles.
const (
	// RoleUser marks a turn written by the querying user.
	RoleUser = "user"

	// RoleAssistant marks a turn written by the model.
	RoleAssistant = "assistant"
)

// ConversationTurn is one message in a session's history.
// Turns are appended in arrival order and never mutated afterwards.
type ConversationTurn struct {
	// Role is RoleUser or RoleAssistant.
	Role string

	// Text is the message content.
	Text string
}

// DefaultMaxExchanges is the default number of user/assistant exchange
// pairs kept per session. Older turns are evicted oldest-first.
const DefaultMaxExchanges = 2
