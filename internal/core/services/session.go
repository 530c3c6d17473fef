package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
)

// SessionManager keeps bounded per-session conversation history.
//
// History is capped at maxExchanges user/assistant pairs; older turns
// are evicted oldest-first so the window always holds the most recent
// exchanges. Sessions are created lazily: recording an exchange against
// an unknown id simply starts that session's history.
type SessionManager struct {
	mu           sync.RWMutex
	sessions     map[string][]domain.ConversationTurn
	maxExchanges int
}

// NewSessionManager creates a session manager. maxExchanges <= 0 uses
// the default of 2 exchange pairs.
func NewSessionManager(maxExchanges int) *SessionManager {
	if maxExchanges <= 0 {
		maxExchanges = domain.DefaultMaxExchanges
	}
	return &SessionManager{
		sessions:     make(map[string][]domain.ConversationTurn),
		maxExchanges: maxExchanges,
	}
}

// NewSession returns a fresh session id.
func (m *SessionManager) NewSession() string {
	return uuid.NewString()
}

// History returns a copy of the session's turns, oldest first. An
// unknown session id yields an empty history.
func (m *SessionManager) History(sessionID string) []domain.ConversationTurn {
	m.mu.RLock()
	defer m.mu.RUnlock()

	turns := m.sessions[sessionID]
	out := make([]domain.ConversationTurn, len(turns))
	copy(out, turns)
	return out
}

// AddExchange records one user/assistant exchange and trims history to
// the configured window.
func (m *SessionManager) AddExchange(sessionID, userText, assistantText string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	turns := append(m.sessions[sessionID],
		domain.ConversationTurn{Role: domain.RoleUser, Text: userText},
		domain.ConversationTurn{Role: domain.RoleAssistant, Text: assistantText},
	)

	if max := m.maxExchanges * 2; len(turns) > max {
		turns = turns[len(turns)-max:]
	}
	m.sessions[sessionID] = turns
}

// Clear removes a session's history.
func (m *SessionManager) Clear(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}
