package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
)

// runCommand executes the root command with the given args and mocked
// services, restoring package state afterwards.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func withAssistant(t *testing.T, mock *mockAssistantService) {
	t.Helper()
	original := assistantService
	assistantService = mock
	t.Cleanup(func() { assistantService = original })
}

func TestAskCmd_PrintsAnswerWithSources(t *testing.T) {
	mock := &mockAssistantService{
		answer: &domain.Answer{
			Text: "Chunks overlap so context survives the split.",
			Sources: []domain.Source{
				{CourseTitle: "RAG Basics", LessonNumber: 1, Link: "https://example.com/l1"},
				{CourseTitle: "RAG Basics", LessonNumber: 2},
			},
			SessionID: "session-1",
		},
	}
	withAssistant(t, mock)

	out, err := runCommand(t, "ask", "Why do chunks overlap?")

	require.NoError(t, err)
	assert.Contains(t, out, "Chunks overlap so context survives the split.")
	assert.Contains(t, out, "RAG Basics - Lesson 1 (https://example.com/l1)")
	assert.Contains(t, out, "RAG Basics - Lesson 2")
	assert.Contains(t, out, "Session: session-1")
	assert.Equal(t, "Why do chunks overlap?", mock.lastQuery)
}

func TestAskCmd_PassesSessionFlag(t *testing.T) {
	mock := &mockAssistantService{
		answer: &domain.Answer{Text: "Continued.", SessionID: "session-7"},
	}
	withAssistant(t, mock)

	originalSession := askSession
	defer func() { askSession = originalSession }()

	_, err := runCommand(t, "ask", "And then?", "--session", "session-7")

	require.NoError(t, err)
	assert.Equal(t, "session-7", mock.lastSession)
}

func TestAskCmd_JSON(t *testing.T) {
	mock := &mockAssistantService{
		answer: &domain.Answer{
			Text:      "An answer.",
			Sources:   []domain.Source{{CourseTitle: "RAG Basics", LessonNumber: 3}},
			SessionID: "session-2",
		},
	}
	withAssistant(t, mock)

	originalJSON := askJSON
	defer func() { askJSON = originalJSON }()

	out, err := runCommand(t, "ask", "What?", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"answer": "An answer."`)
	assert.Contains(t, out, `"label": "RAG Basics - Lesson 3"`)
	assert.Contains(t, out, `"session_id": "session-2"`)
}

func TestAskCmd_GenerationFailure(t *testing.T) {
	mock := &mockAssistantService{err: domain.ErrGenerationFailed}
	withAssistant(t, mock)

	_, err := runCommand(t, "ask", "What?")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
}
