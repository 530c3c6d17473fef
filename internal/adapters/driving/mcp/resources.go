package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for Tutor resources.
const uriScheme = "tutor://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "courses",
		Name:        "courses",
		Description: "Statistics for the indexed course catalog",
		MIMEType:    "application/json",
	}, s.handleCoursesResource)
}

// handleCoursesResource returns the indexed course count and titles.
func (s *Server) handleCoursesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Mirrors the stats payload the CLI prints for `tutor courses`.
	type statsInfo struct {
		TotalCourses int      `json:"total_courses"`
		CourseTitles []string `json:"course_titles"`
	}

	info := statsInfo{CourseTitles: []string{}}
	if s.ports.Catalog != nil {
		stats, err := s.ports.Catalog.Stats(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting course stats: %w", err)
		}
		info.TotalCourses = stats.TotalCourses
		if stats.CourseTitles != nil {
			info.CourseTitles = stats.CourseTitles
		}
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling stats: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
