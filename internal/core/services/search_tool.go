package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
	"github.com/opencourse-ai/tutor-cli/internal/core/ports/driven"
	"github.com/opencourse-ai/tutor-cli/internal/logger"
)

// SearchToolName is the wire name of the course content search tool.
const SearchToolName = "search_course_content"

// CourseSearchTool searches course materials on behalf of the model.
//
// Course names resolve fuzzily through the catalog collection: the
// nearest course wins with no threshold, so "MCP" finds "MCP: Build
// Rich-Context AI Apps". A name that cannot resolve (empty catalog) is
// a soft failure reported as tool content, not an error, so the model
// can tell the user which course was not found.
type CourseSearchTool struct {
	index      driven.CourseIndex
	catalog    driven.CatalogStore
	maxResults int
}

// NewCourseSearchTool creates the search tool. maxResults <= 0 uses
// the index default.
func NewCourseSearchTool(index driven.CourseIndex, catalog driven.CatalogStore, maxResults int) *CourseSearchTool {
	return &CourseSearchTool{
		index:      index,
		catalog:    catalog,
		maxResults: maxResults,
	}
}

var _ Tool = (*CourseSearchTool)(nil)

// Definition declares the tool to the model.
func (t *CourseSearchTool) Definition() driven.ToolDefinition {
	return driven.ToolDefinition{
		Name:        SearchToolName,
		Description: "Search course materials with smart course name matching and lesson filtering",
		InputSchema: driven.InputSchema{
			Type: "object",
			Properties: map[string]driven.Property{
				"query": {
					Type:        "string",
					Description: "What to search for in the course content",
				},
				"course_name": {
					Type:        "string",
					Description: "Course title (partial matches work)",
				},
				"lesson_number": {
					Type:        "integer",
					Description: "Specific lesson number to search within",
				},
			},
			Required: []string{"query"},
		},
	}
}

// Execute runs the search and formats the hits for the model.
func (t *CourseSearchTool) Execute(ctx context.Context, args map[string]any) (domain.ToolOutput, error) {
	query, _ := args["query"].(string)
	courseName := stringArg(args, "course_name")
	lessonNumber := intArg(args, "lesson_number")

	logger.Section("Course Search")
	logger.Debug("query=%q course=%q lesson=%d", query, courseName, lessonNumber)

	filter := domain.ContentFilter{LessonNumber: lessonNumber}

	if courseName != "" {
		title, err := t.index.ResolveCourseTitle(ctx, courseName)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Debug("no course matched %q", courseName)
				return domain.ToolOutput{
					Content: fmt.Sprintf("No course found matching '%s'.", courseName),
				}, nil
			}
			return domain.ToolOutput{}, fmt.Errorf("resolving course name: %w", err)
		}
		filter.CourseTitle = title
	}

	result, err := t.index.SearchContent(ctx, query, filter, t.maxResults)
	if err != nil {
		return domain.ToolOutput{}, fmt.Errorf("searching content: %w", err)
	}

	if result.IsEmpty() {
		return domain.ToolOutput{Content: emptyResultMessage(filter)}, nil
	}

	return t.formatHits(ctx, result.Hits), nil
}

// formatHits renders hits as labelled blocks and collects their
// deduplicated sources in result order.
func (t *CourseSearchTool) formatHits(ctx context.Context, hits []domain.ScoredChunk) domain.ToolOutput {
	var blocks []string
	var sources []domain.Source
	seen := make(map[string]bool)

	for _, hit := range hits {
		source := domain.Source{
			CourseTitle:  hit.Chunk.CourseTitle,
			LessonNumber: hit.Chunk.LessonNumber,
			Link:         t.lookupLink(ctx, hit.Chunk),
		}

		blocks = append(blocks, fmt.Sprintf("[%s]\n%s", source.Label(), hit.Chunk.Content))

		if label := source.Label(); !seen[label] {
			seen[label] = true
			sources = append(sources, source)
		}
	}

	return domain.ToolOutput{
		Content: strings.Join(blocks, "\n\n"),
		Sources: sources,
	}
}

// lookupLink resolves the lesson link (preferred) or course link for a
// chunk. Link resolution is best-effort; a missing catalog entry just
// yields an unlinked source.
func (t *CourseSearchTool) lookupLink(ctx context.Context, chunk domain.CourseChunk) string {
	course, err := t.catalog.GetCourse(ctx, chunk.CourseTitle)
	if err != nil {
		return ""
	}
	if chunk.HasLesson() {
		if lesson := course.LessonByNumber(chunk.LessonNumber); lesson != nil && lesson.Link != "" {
			return lesson.Link
		}
	}
	return course.Link
}

// emptyResultMessage describes an empty search in terms of its filters.
func emptyResultMessage(filter domain.ContentFilter) string {
	var sb strings.Builder
	sb.WriteString("No relevant content found")
	if filter.CourseTitle != "" {
		fmt.Fprintf(&sb, " in course '%s'", filter.CourseTitle)
	}
	if filter.LessonNumber > 0 {
		fmt.Fprintf(&sb, " in lesson %d", filter.LessonNumber)
	}
	sb.WriteString(".")
	return sb.String()
}

// stringArg reads an optional string argument.
func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return strings.TrimSpace(s)
}

// intArg reads an optional integer argument. JSON numbers decode as
// float64, but tolerate int for direct callers.
func intArg(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
