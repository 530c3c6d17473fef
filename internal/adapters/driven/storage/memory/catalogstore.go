// Package memory provides in-memory implementations of driven port
// interfaces, used in tests and for ephemeral sessions where nothing
// should touch the disk.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
	"github.com/opencourse-ai/tutor-cli/internal/core/ports/driven"
)

// CatalogStore is an in-memory implementation of driven.CatalogStore.
type CatalogStore struct {
	mu      sync.RWMutex
	courses map[string]*domain.Course
	order   []string
}

var _ driven.CatalogStore = (*CatalogStore)(nil)

// NewCatalogStore creates a new in-memory catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		courses: make(map[string]*domain.Course),
	}
}

// SaveCourse stores a course and its lessons.
func (s *CatalogStore) SaveCourse(_ context.Context, course *domain.Course) error {
	if err := course.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *course
	stored.Lessons = make([]domain.Lesson, len(course.Lessons))
	copy(stored.Lessons, course.Lessons)
	if stored.IngestedAt.IsZero() {
		stored.IngestedAt = time.Now().UTC()
	}

	if _, exists := s.courses[course.Title]; !exists {
		s.order = append(s.order, course.Title)
	}
	s.courses[course.Title] = &stored
	return nil
}

// GetCourse retrieves a course by exact title.
func (s *CatalogStore) GetCourse(_ context.Context, title string) (*domain.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, ok := s.courses[title]
	if !ok {
		return nil, domain.ErrNotFound
	}

	out := *course
	out.Lessons = make([]domain.Lesson, len(course.Lessons))
	copy(out.Lessons, course.Lessons)
	return &out, nil
}

// HasCourse reports whether a title is already catalogued.
func (s *CatalogStore) HasCourse(_ context.Context, title string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.courses[title]
	return ok, nil
}

// ListTitles returns all course titles in insertion order.
func (s *CatalogStore) ListTitles(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	titles := make([]string, len(s.order))
	copy(titles, s.order)
	return titles, nil
}

// CountCourses returns the number of catalogued courses.
func (s *CatalogStore) CountCourses(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.courses), nil
}

// Close releases resources. No-op for the in-memory store.
func (s *CatalogStore) Close() error {
	return nil
}
