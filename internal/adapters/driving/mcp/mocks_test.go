package mcp

import (
	"context"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
)

// mockAssistantService is a mock implementation of driving.AssistantService.
type mockAssistantService struct {
	answer      *domain.Answer
	err         error
	lastQuery   string
	lastSession string
}

func (m *mockAssistantService) Answer(
	_ context.Context,
	query, sessionID string,
) (*domain.Answer, error) {
	m.lastQuery = query
	m.lastSession = sessionID
	return m.answer, m.err
}

func (m *mockAssistantService) NewSession() string {
	return "session-new"
}

// mockSearchTool is a mock implementation of SearchTool.
type mockSearchTool struct {
	output   domain.ToolOutput
	err      error
	lastArgs map[string]any
}

func (m *mockSearchTool) Execute(
	_ context.Context,
	args map[string]any,
) (domain.ToolOutput, error) {
	m.lastArgs = args
	return m.output, m.err
}

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	stats domain.CourseStats
	err   error
}

func (m *mockCatalogService) Stats(_ context.Context) (domain.CourseStats, error) {
	return m.stats, m.err
}

// validPorts returns ports with all required services mocked.
func validPorts() *Ports {
	return &Ports{
		Assistant: &mockAssistantService{},
		Search:    &mockSearchTool{},
	}
}
