package driven

import (
	"context"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
)

// CatalogStore persists course and lesson metadata.
//
// The catalog mirrors the index's catalog collection and serves the
// lookups that must not cost an embedding call: startup deduplication
// by title, course statistics, and lesson-link resolution for source
// attribution.
type CatalogStore interface {
	// SaveCourse stores a course and its lessons.
	SaveCourse(ctx context.Context, course *domain.Course) error

	// GetCourse retrieves a course by exact title.
	// Returns domain.ErrNotFound if the title is not in the catalog.
	GetCourse(ctx context.Context, title string) (*domain.Course, error)

	// HasCourse reports whether a title is already catalogued.
	HasCourse(ctx context.Context, title string) (bool, error)

	// ListTitles returns all course titles in insertion order.
	ListTitles(ctx context.Context) ([]string, error)

	// CountCourses returns the number of catalogued courses.
	CountCourses(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
