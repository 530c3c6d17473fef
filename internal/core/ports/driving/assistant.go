package driving

import (
	"context"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
)

// AssistantService answers course questions through the tool-calling
// generation loop.
type AssistantService interface {
	// Answer processes one query. An empty sessionID starts a fresh
	// session; the created id is reported on the Answer. Failures are
	// domain.ErrGenerationFailed or domain.ErrIndexUnavailable.
	Answer(ctx context.Context, query, sessionID string) (*domain.Answer, error)

	// NewSession creates a session id for a multi-turn conversation.
	NewSession() string
}

// CatalogService exposes read-only course statistics.
type CatalogService interface {
	// Stats returns the indexed course count and titles.
	Stats(ctx context.Context) (domain.CourseStats, error)
}
