package mcp

import (
	"context"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
	"github.com/opencourse-ai/tutor-cli/internal/core/ports/driving"
)

// SearchTool executes a course content search with model-style
// arguments. Implemented by services.CourseSearchTool.
type SearchTool interface {
	Execute(ctx context.Context, args map[string]any) (domain.ToolOutput, error)
}

// Ports aggregates the services the MCP server exposes.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Assistant answers course questions.
	Assistant driving.AssistantService

	// Search performs direct course content search.
	Search SearchTool

	// Catalog provides course statistics. Optional; the catalog
	// resource reports an empty catalog when nil.
	Catalog driving.CatalogService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Assistant == nil {
		return ErrMissingAssistantService
	}
	if p.Search == nil {
		return ErrMissingSearchTool
	}
	return nil
}
