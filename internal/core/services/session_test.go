package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
)

func TestSessionManagerNewSessionIsUnique(t *testing.T) {
	m := NewSessionManager(0)

	a := m.NewSession()
	b := m.NewSession()

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestSessionManagerUnknownSessionIsEmpty(t *testing.T) {
	m := NewSessionManager(0)

	assert.Empty(t, m.History("never-seen"))
}

func TestSessionManagerRecordsExchanges(t *testing.T) {
	m := NewSessionManager(2)

	m.AddExchange("s1", "What is MCP?", "MCP is a protocol.")

	history := m.History("s1")
	require.Len(t, history, 2)
	assert.Equal(t, domain.RoleUser, history[0].Role)
	assert.Equal(t, "What is MCP?", history[0].Text)
	assert.Equal(t, domain.RoleAssistant, history[1].Role)
	assert.Equal(t, "MCP is a protocol.", history[1].Text)
}

func TestSessionManagerEvictsOldestFirst(t *testing.T) {
	m := NewSessionManager(2)

	for i := 1; i <= 3; i++ {
		m.AddExchange("s1", fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
	}

	history := m.History("s1")
	require.Len(t, history, 4, "window holds two exchange pairs")
	assert.Equal(t, "q2", history[0].Text)
	assert.Equal(t, "a2", history[1].Text)
	assert.Equal(t, "q3", history[2].Text)
	assert.Equal(t, "a3", history[3].Text)
}

func TestSessionManagerIsolatesSessions(t *testing.T) {
	m := NewSessionManager(2)

	m.AddExchange("s1", "q1", "a1")
	m.AddExchange("s2", "q2", "a2")

	require.Len(t, m.History("s1"), 2)
	assert.Equal(t, "q1", m.History("s1")[0].Text)
	assert.Equal(t, "q2", m.History("s2")[0].Text)
}

func TestSessionManagerClear(t *testing.T) {
	m := NewSessionManager(2)

	m.AddExchange("s1", "q", "a")
	m.Clear("s1")

	assert.Empty(t, m.History("s1"))
}

func TestSessionManagerHistoryIsACopy(t *testing.T) {
	m := NewSessionManager(2)
	m.AddExchange("s1", "q", "a")

	history := m.History("s1")
	history[0].Text = "mutated"

	assert.Equal(t, "q", m.History("s1")[0].Text)
}

func TestSessionManagerConcurrentAccess(t *testing.T) {
	m := NewSessionManager(2)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", n%3)
			m.AddExchange(id, "q", "a")
			m.History(id)
		}(i)
	}
	wg.Wait()
}
