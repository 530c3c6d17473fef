package driving

import "context"

// IngestReport summarises one ingestion pass.
type IngestReport struct {
	// CoursesAdded is the number of newly indexed courses.
	CoursesAdded int

	// ChunksAdded is the number of newly indexed chunks.
	ChunksAdded int

	// Skipped counts documents whose course title was already indexed.
	Skipped int

	// Failed counts documents that could not be parsed or indexed.
	// Failures are logged and do not abort the pass.
	Failed int
}

// IngestService loads course documents into the index and catalog.
type IngestService interface {
	// IngestDirectory processes every course document in dir once,
	// skipping already-indexed titles. Per-document failures are
	// absorbed; only setup errors (unreadable directory) are returned.
	IngestDirectory(ctx context.Context, dir string) (IngestReport, error)

	// Watch ingests new files as they appear in dir until ctx is
	// cancelled. It runs an initial IngestDirectory pass first.
	Watch(ctx context.Context, dir string) error
}
