package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencourse-ai/tutor-cli/internal/core/ports/driving"
)

func withIngest(t *testing.T, mock *mockIngestService) {
	t.Helper()
	original := ingestService
	ingestService = mock
	t.Cleanup(func() { ingestService = original })
}

func TestIngestCmd_ReportsCounts(t *testing.T) {
	mock := &mockIngestService{
		report: driving.IngestReport{
			CoursesAdded: 3,
			ChunksAdded:  42,
			Skipped:      1,
			Failed:       1,
		},
	}
	withIngest(t, mock)

	out, err := runCommand(t, "ingest", "/tmp/docs")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/docs", mock.lastDir)
	assert.Contains(t, out, "Added 3 courses (42 chunks).")
	assert.Contains(t, out, "Skipped 1 already indexed.")
	assert.Contains(t, out, "Failed to process 1 documents.")
}

func TestIngestCmd_QuietWhenNothingSkipped(t *testing.T) {
	withIngest(t, &mockIngestService{
		report: driving.IngestReport{CoursesAdded: 1, ChunksAdded: 5},
	})

	out, err := runCommand(t, "ingest", "/tmp/docs")

	require.NoError(t, err)
	assert.NotContains(t, out, "Skipped")
	assert.NotContains(t, out, "Failed")
}

func TestIngestCmd_WatchFlag(t *testing.T) {
	mock := &mockIngestService{}
	withIngest(t, mock)

	originalWatch := ingestWatch
	defer func() { ingestWatch = originalWatch }()

	out, err := runCommand(t, "ingest", "/tmp/docs", "--watch")

	require.NoError(t, err)
	assert.True(t, mock.watched)
	assert.Contains(t, out, "Watching /tmp/docs")
}

func TestIngestCmd_DirectoryFailure(t *testing.T) {
	withIngest(t, &mockIngestService{err: errors.New("no such directory")})

	_, err := runCommand(t, "ingest", "/tmp/missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingesting /tmp/missing")
}
