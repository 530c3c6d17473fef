package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
	"github.com/opencourse-ai/tutor-cli/internal/core/ports/driven"
	"github.com/opencourse-ai/tutor-cli/internal/core/ports/driving"
	"github.com/opencourse-ai/tutor-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DocumentProcessor turns raw document text into a course and its
// chunks. Implemented by docparse.Processor.
type DocumentProcessor interface {
	// ParseTitle extracts just the course title, for cheap
	// deduplication before full processing.
	ParseTitle(text string) (string, error)

	// Process parses and chunks a complete document.
	Process(text string) (*domain.Course, []domain.CourseChunk, error)
}

// IngestService loads course documents into the catalog and index.
//
// Deduplication is by course title: a document whose title is already
// catalogued is skipped, so re-running ingestion over the same
// directory is cheap and idempotent.
type IngestService struct {
	processor DocumentProcessor
	catalog   driven.CatalogStore
	index     driven.CourseIndex
}

// NewIngestService creates the ingest service.
func NewIngestService(processor DocumentProcessor, catalog driven.CatalogStore, index driven.CourseIndex) *IngestService {
	return &IngestService{
		processor: processor,
		catalog:   catalog,
		index:     index,
	}
}

// IngestDirectory processes every .txt document in dir once.
// Per-document failures are counted and logged, not returned; only a
// setup failure (unreadable directory) aborts the pass.
func (s *IngestService) IngestDirectory(ctx context.Context, dir string) (driving.IngestReport, error) {
	var report driving.IngestReport

	entries, err := os.ReadDir(dir)
	if err != nil {
		return report, fmt.Errorf("reading directory: %w", err)
	}

	logger.Section("Ingestion")
	logger.Debug("scanning %s (%d entries)", dir, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !isCourseDocument(entry.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}
		s.ingestFile(ctx, filepath.Join(dir, entry.Name()), &report)
	}

	logger.Info("ingestion done: %d added, %d skipped, %d failed",
		report.CoursesAdded, report.Skipped, report.Failed)
	return report, nil
}

// ingestFile processes one document and records the outcome on report.
func (s *IngestService) ingestFile(ctx context.Context, path string, report *driving.IngestReport) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("skipping %s: %v", path, err)
		report.Failed++
		return
	}
	text := string(data)

	// Cheap title probe first so duplicates cost no chunking or
	// embedding work.
	title, err := s.processor.ParseTitle(text)
	if err != nil {
		logger.Warn("skipping %s: %v", path, err)
		report.Failed++
		return
	}

	exists, err := s.catalog.HasCourse(ctx, title)
	if err != nil {
		logger.Warn("skipping %s: %v", path, err)
		report.Failed++
		return
	}
	if exists {
		logger.Debug("skipping %s: course %q already indexed", path, title)
		report.Skipped++
		return
	}

	course, chunks, err := s.processor.Process(text)
	if err != nil {
		logger.Warn("skipping %s: %v", path, err)
		report.Failed++
		return
	}

	if err := s.catalog.SaveCourse(ctx, course); err != nil {
		logger.Warn("cataloguing %s failed: %v", path, err)
		report.Failed++
		return
	}
	if err := s.index.AddCourse(ctx, *course, chunks); err != nil {
		logger.Warn("indexing %s failed: %v", path, err)
		report.Failed++
		return
	}

	report.CoursesAdded++
	report.ChunksAdded += len(chunks)
	logger.Info("indexed %q (%d chunks) from %s", course.Title, len(chunks), filepath.Base(path))
}

// Watch ingests new files as they appear in dir until ctx is
// cancelled. An initial full pass runs first so pre-existing documents
// are not missed.
func (s *IngestService) Watch(ctx context.Context, dir string) error {
	if _, err := s.IngestDirectory(ctx, dir); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	logger.Info("watching %s for new course documents", dir)

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !isCourseDocument(event.Name) {
				continue
			}
			// Title dedup makes re-ingesting a file on repeated write
			// events harmless.
			var report driving.IngestReport
			s.ingestFile(ctx, event.Name, &report)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// isCourseDocument reports whether a file name looks like a course
// document.
func isCourseDocument(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".txt")
}
