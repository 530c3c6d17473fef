package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		mockSearch := &mockSearchTool{
			output: domain.ToolOutput{
				Content: "[RAG Basics - Lesson 2]\nEmbeddings map text to vectors.",
				Sources: []domain.Source{
					{CourseTitle: "RAG Basics", LessonNumber: 2, Link: "https://example.com/l2"},
				},
			},
		}

		ports := validPorts()
		ports.Search = mockSearch
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SearchInput{Query: "embeddings", CourseName: "RAG", LessonNumber: 2}
		_, output, err := server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.Contains(t, output.Content, "Embeddings map text to vectors.")
		require.Len(t, output.Sources, 1)
		assert.Equal(t, "RAG Basics - Lesson 2", output.Sources[0].Label)
		assert.Equal(t, "https://example.com/l2", output.Sources[0].Link)

		assert.Equal(t, "embeddings", mockSearch.lastArgs["query"])
		assert.Equal(t, "RAG", mockSearch.lastArgs["course_name"])
		assert.Equal(t, 2, mockSearch.lastArgs["lesson_number"])
	})

	t.Run("omits unset filters", func(t *testing.T) {
		mockSearch := &mockSearchTool{}
		ports := validPorts()
		ports.Search = mockSearch
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SearchInput{Query: "chunking"}
		_, _, err = server.handleSearch(ctx, nil, input)

		require.NoError(t, err)
		assert.NotContains(t, mockSearch.lastArgs, "course_name")
		assert.NotContains(t, mockSearch.lastArgs, "lesson_number")
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mockSearch := &mockSearchTool{
			err: errors.New("search failed"),
		}

		ports := validPorts()
		ports.Search = mockSearch
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := SearchInput{Query: "test"}
		_, _, err = server.handleSearch(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns answer with sources", func(t *testing.T) {
		mockAssistant := &mockAssistantService{
			answer: &domain.Answer{
				Text: "Chunks overlap so context survives the split.",
				Sources: []domain.Source{
					{CourseTitle: "RAG Basics", LessonNumber: 1},
				},
				SessionID: "session-1",
			},
		}

		ports := validPorts()
		ports.Assistant = mockAssistant
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AskInput{Question: "Why do chunks overlap?", SessionID: "session-1"}
		_, output, err := server.handleAsk(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "Chunks overlap so context survives the split.", output.Answer)
		assert.Equal(t, "session-1", output.SessionID)
		require.Len(t, output.Sources, 1)
		assert.Equal(t, "RAG Basics - Lesson 1", output.Sources[0].Label)

		assert.Equal(t, "Why do chunks overlap?", mockAssistant.lastQuery)
		assert.Equal(t, "session-1", mockAssistant.lastSession)
	})

	t.Run("empty session id starts a fresh session", func(t *testing.T) {
		mockAssistant := &mockAssistantService{
			answer: &domain.Answer{Text: "Hello.", SessionID: "session-new"},
		}

		ports := validPorts()
		ports.Assistant = mockAssistant
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AskInput{Question: "Hi"}
		_, output, err := server.handleAsk(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "session-new", output.SessionID)
		assert.Empty(t, mockAssistant.lastSession)
	})

	t.Run("returns error on generation failure", func(t *testing.T) {
		mockAssistant := &mockAssistantService{
			err: domain.ErrGenerationFailed,
		}

		ports := validPorts()
		ports.Assistant = mockAssistant
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AskInput{Question: "test"}
		_, _, err = server.handleAsk(ctx, nil, input)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	})
}
