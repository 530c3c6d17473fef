package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
)

func TestCatalogStoreSaveAndGet(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	course := &domain.Course{
		Title:      "Prompt Engineering Basics",
		Instructor: "Grace Hopper",
		Lessons:    []domain.Lesson{{Number: 1, Title: "Intro", Link: "https://example.com/1"}},
	}
	require.NoError(t, store.SaveCourse(ctx, course))

	got, err := store.GetCourse(ctx, course.Title)
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", got.Instructor)
	require.Len(t, got.Lessons, 1)
	assert.False(t, got.IngestedAt.IsZero())

	// Mutating the returned course must not affect the store.
	got.Lessons[0].Title = "Changed"
	again, err := store.GetCourse(ctx, course.Title)
	require.NoError(t, err)
	assert.Equal(t, "Intro", again.Lessons[0].Title)
}

func TestCatalogStoreGetNotFound(t *testing.T) {
	store := NewCatalogStore()

	_, err := store.GetCourse(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogStoreRejectsInvalidCourse(t *testing.T) {
	store := NewCatalogStore()

	err := store.SaveCourse(context.Background(), &domain.Course{})
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestCatalogStoreInsertionOrderAndCount(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	for _, title := range []string{"C", "A", "B"} {
		require.NoError(t, store.SaveCourse(ctx, &domain.Course{Title: title}))
	}
	// Re-saving an existing title keeps its original position.
	require.NoError(t, store.SaveCourse(ctx, &domain.Course{Title: "A", Instructor: "X"}))

	titles, err := store.ListTitles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, titles)

	count, err := store.CountCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	ok, err := store.HasCourse(ctx, "B")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCatalogStoreConcurrentAccess(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			course := &domain.Course{Title: string(rune('A' + n))}
			_ = store.SaveCourse(ctx, course)
			_, _ = store.ListTitles(ctx)
			_, _ = store.CountCourses(ctx)
		}(i)
	}
	wg.Wait()

	count, err := store.CountCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}
