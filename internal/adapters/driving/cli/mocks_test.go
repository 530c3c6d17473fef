package cli

import (
	"context"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
	"github.com/opencourse-ai/tutor-cli/internal/core/ports/driving"
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

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	stats domain.CourseStats
	err   error
}

func (m *mockCatalogService) Stats(_ context.Context) (domain.CourseStats, error) {
	return m.stats, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	report  driving.IngestReport
	err     error
	lastDir string
	watched bool
}

func (m *mockIngestService) IngestDirectory(
	_ context.Context,
	dir string,
) (driving.IngestReport, error) {
	m.lastDir = dir
	return m.report, m.err
}

func (m *mockIngestService) Watch(_ context.Context, dir string) error {
	m.lastDir = dir
	m.watched = true
	return m.err
}
