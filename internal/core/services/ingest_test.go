package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencourse-ai/tutor-cli/internal/adapters/driven/storage/memory"
	"github.com/opencourse-ai/tutor-cli/internal/docparse"
)

// The processor must satisfy the ingest dependency as one value.
var _ DocumentProcessor = (*docparse.Processor)(nil)

const courseDoc = `Course Title: Building RAG Applications
Course Link: https://example.com/rag
Lesson 1: Introduction
Retrieval augmented generation combines search with generation.
Lesson 2: Chunking
Documents are split into overlapping chunks.
`

const secondDoc = `Course Title: Prompt Engineering Basics
Lesson 1: Prompts
Prompts steer the model output.
`

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newIngest(index *mockIndex) (*IngestService, *memory.CatalogStore) {
	catalog := memory.NewCatalogStore()
	return NewIngestService(docparse.New(), catalog, index), catalog
}

func TestIngestDirectory(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "rag.txt", courseDoc)
	writeDoc(t, dir, "prompts.txt", secondDoc)
	writeDoc(t, dir, "notes.md", "not a course document")

	index := &mockIndex{}
	svc, catalog := newIngest(index)

	report, err := svc.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, report.CoursesAdded)
	assert.Greater(t, report.ChunksAdded, 0)
	assert.Zero(t, report.Skipped)
	assert.Zero(t, report.Failed)

	assert.ElementsMatch(t, []string{"Building RAG Applications", "Prompt Engineering Basics"}, index.added)

	course, err := catalog.GetCourse(context.Background(), "Building RAG Applications")
	require.NoError(t, err)
	assert.Len(t, course.Lessons, 2)
}

func TestIngestDirectorySkipsKnownTitles(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "rag.txt", courseDoc)

	index := &mockIndex{}
	svc, _ := newIngest(index)
	ctx := context.Background()

	_, err := svc.IngestDirectory(ctx, dir)
	require.NoError(t, err)

	report, err := svc.IngestDirectory(ctx, dir)
	require.NoError(t, err)

	assert.Zero(t, report.CoursesAdded)
	assert.Equal(t, 1, report.Skipped)
	assert.Len(t, index.added, 1, "dedup must prevent re-indexing")
}

func TestIngestDirectoryAbsorbsBadDocuments(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "bad.txt", "No title header here.\nJust text.")
	writeDoc(t, dir, "good.txt", courseDoc)

	svc, _ := newIngest(&mockIndex{})

	report, err := svc.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 1, report.CoursesAdded)
	assert.Equal(t, 1, report.Failed)
}

func TestIngestDirectoryCountsIndexFailures(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "rag.txt", courseDoc)

	index := &mockIndex{addErr: assert.AnError}
	svc, _ := newIngest(index)

	report, err := svc.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)

	assert.Zero(t, report.CoursesAdded)
	assert.Equal(t, 1, report.Failed)
}

func TestIngestDirectoryUnreadableDirFails(t *testing.T) {
	svc, _ := newIngest(&mockIndex{})

	_, err := svc.IngestDirectory(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestWatchIngestsNewFiles(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "rag.txt", courseDoc)

	index := &mockIndex{}
	svc, catalog := newIngest(index)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Watch(ctx, dir)
	}()

	// The initial pass picks up the pre-existing document.
	require.Eventually(t, func() bool {
		ok, err := catalog.HasCourse(context.Background(), "Building RAG Applications")
		return err == nil && ok
	}, 2*time.Second, 10*time.Millisecond)

	writeDoc(t, dir, "prompts.txt", secondDoc)

	require.Eventually(t, func() bool {
		ok, err := catalog.HasCourse(context.Background(), "Prompt Engineering Basics")
		return err == nil && ok
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
