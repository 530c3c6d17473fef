package driven

import (
	"context"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
)

// CourseIndex provides semantic search over two collections that share
// one embedding model: a catalog collection holding one vector per
// course (built from title/instructor/link text, used for fuzzy name
// resolution) and a content collection holding one vector per chunk.
type CourseIndex interface {
	// AddCourse indexes a course's catalog entry and its content
	// chunks. Callers deduplicate by title before calling; AddCourse
	// itself does not check for prior presence.
	AddCourse(ctx context.Context, course domain.Course, chunks []domain.CourseChunk) error

	// ResolveCourseTitle maps a fuzzy name fragment to the best
	// matching exact course title. The single nearest neighbour wins
	// with no similarity threshold; a low-confidence match is still a
	// match. Returns domain.ErrNotFound only when the catalog
	// collection is empty.
	ResolveCourseTitle(ctx context.Context, nameFragment string) (string, error)

	// SearchContent performs filtered nearest-neighbour search over the
	// content collection. Filters apply before ranking as a structural
	// AND. A limit of zero means the configured default. An empty
	// result is returned as a successful SearchResult with zero hits.
	// Structurally invalid input (empty query, negative lesson number,
	// negative limit) is rejected with domain.ErrInvalidQuery;
	// backend failures surface as domain.ErrIndexUnavailable.
	SearchContent(ctx context.Context, query string, filter domain.ContentFilter, limit int) (domain.SearchResult, error)

	// CourseCount returns the number of courses in the catalog collection.
	CourseCount(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
