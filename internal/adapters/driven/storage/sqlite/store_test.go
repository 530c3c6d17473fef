package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testCourse() *domain.Course {
	return &domain.Course{
		Title:      "Building RAG Applications",
		Link:       "https://example.com/rag",
		Instructor: "Ada Lovelace",
		Lessons: []domain.Lesson{
			{Number: 1, Title: "Introduction", Link: "https://example.com/rag/1"},
			{Number: 2, Title: "Chunking"},
		},
		IngestedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSaveAndGetCourse(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCourse(ctx, testCourse()))

	got, err := store.GetCourse(ctx, "Building RAG Applications")
	require.NoError(t, err)

	assert.Equal(t, "Building RAG Applications", got.Title)
	assert.Equal(t, "https://example.com/rag", got.Link)
	assert.Equal(t, "Ada Lovelace", got.Instructor)
	require.Len(t, got.Lessons, 2)
	assert.Equal(t, "https://example.com/rag/1", got.Lessons[0].Link)
	assert.Equal(t, "Chunking", got.Lessons[1].Title)

	lesson := got.LessonByNumber(2)
	require.NotNil(t, lesson)
	assert.Equal(t, "Chunking", lesson.Title)
}

func TestGetCourseNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetCourse(context.Background(), "Nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaveCourseRejectsInvalid(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.SaveCourse(ctx, &domain.Course{})
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)

	err = store.SaveCourse(ctx, &domain.Course{
		Title:   "Dup Lessons",
		Lessons: []domain.Lesson{{Number: 1}, {Number: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestSaveCourseReplacesLessons(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	course := testCourse()
	require.NoError(t, store.SaveCourse(ctx, course))

	course.Lessons = []domain.Lesson{{Number: 1, Title: "Revised"}}
	require.NoError(t, store.SaveCourse(ctx, course))

	got, err := store.GetCourse(ctx, course.Title)
	require.NoError(t, err)
	require.Len(t, got.Lessons, 1)
	assert.Equal(t, "Revised", got.Lessons[0].Title)
}

func TestHasCourse(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ok, err := store.HasCourse(ctx, "Building RAG Applications")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SaveCourse(ctx, testCourse()))

	ok, err = store.HasCourse(ctx, "Building RAG Applications")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestListTitlesInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"Zeta Course", "Alpha Course", "Mid Course"} {
		require.NoError(t, store.SaveCourse(ctx, &domain.Course{Title: title}))
	}

	titles, err := store.ListTitles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta Course", "Alpha Course", "Mid Course"}, titles)
}

func TestCountCourses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	count, err := store.CountCourses(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, store.SaveCourse(ctx, testCourse()))
	require.NoError(t, store.SaveCourse(ctx, &domain.Course{Title: "Second"}))

	count, err = store.CountCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SaveCourse(context.Background(), testCourse()))
	require.NoError(t, store.Close())

	// Reopening the same directory must not re-run applied migrations
	// or lose data.
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.GetCourse(context.Background(), "Building RAG Applications")
	require.NoError(t, err)
	assert.Len(t, got.Lessons, 2)
}
