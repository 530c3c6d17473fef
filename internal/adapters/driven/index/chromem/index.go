// Package chromem provides a course index adapter backed by chromem-go,
// an embeddable vector database with on-disk persistence.
//
// Two collections share one embedding model: course_catalog holds one
// vector per course for fuzzy name resolution, course_content holds one
// vector per chunk for content search.
package chromem

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	chromemgo "github.com/philippgille/chromem-go"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
	"github.com/opencourse-ai/tutor-cli/internal/core/ports/driven"
	"github.com/opencourse-ai/tutor-cli/internal/logger"
)

// Ensure CourseIndex implements the interface.
var _ driven.CourseIndex = (*CourseIndex)(nil)

// Collection names within the database.
const (
	catalogCollection = "course_catalog"
	contentCollection = "course_content"
)

// DefaultLimit is the number of content hits returned when the caller
// does not specify a limit.
const DefaultLimit = 5

// Metadata keys stored on content chunks.
const (
	metaCourseTitle  = "course_title"
	metaLessonNumber = "lesson_number"
	metaChunkIndex   = "chunk_index"
)

// Config holds configuration for the chromem course index.
type Config struct {
	// Path is the persistence directory. Empty means in-memory only.
	Path string

	// DefaultLimit is the result count used when a search passes
	// limit <= 0 (default: 5).
	DefaultLimit int
}

// CourseIndex provides semantic search over courses using chromem-go.
type CourseIndex struct {
	db           *chromemgo.DB
	catalog      *chromemgo.Collection
	content      *chromemgo.Collection
	embedder     driven.EmbeddingService
	defaultLimit int
}

// NewCourseIndex creates a course index.
// The embedder must be the same model across the life of the database;
// vectors embedded with different models are not comparable.
func NewCourseIndex(cfg Config, embedder driven.EmbeddingService) (*CourseIndex, error) {
	var db *chromemgo.DB
	var err error
	if cfg.Path == "" {
		db = chromemgo.NewDB()
	} else {
		db, err = chromemgo.NewPersistentDB(cfg.Path, false)
		if err != nil {
			return nil, fmt.Errorf("open vector db: %w", err)
		}
	}

	metadata := map[string]string{"hnsw:space": "cosine"}
	catalog, err := db.GetOrCreateCollection(catalogCollection, metadata, nil)
	if err != nil {
		return nil, fmt.Errorf("create catalog collection: %w", err)
	}
	content, err := db.GetOrCreateCollection(contentCollection, metadata, nil)
	if err != nil {
		return nil, fmt.Errorf("create content collection: %w", err)
	}

	limit := cfg.DefaultLimit
	if limit <= 0 {
		limit = DefaultLimit
	}

	return &CourseIndex{
		db:           db,
		catalog:      catalog,
		content:      content,
		embedder:     embedder,
		defaultLimit: limit,
	}, nil
}

// AddCourse indexes a course's catalog entry and its content chunks.
func (x *CourseIndex) AddCourse(ctx context.Context, course domain.Course, chunks []domain.CourseChunk) error {
	vector, err := x.embedder.Embed(ctx, catalogText(course))
	if err != nil {
		return fmt.Errorf("embed catalog entry: %w", err)
	}

	// The course title is the document ID, so re-adding a title
	// overwrites its catalog entry instead of duplicating it.
	err = x.catalog.Add(ctx,
		[]string{course.Title},
		[][]float32{vector},
		[]map[string]string{{metaCourseTitle: course.Title}},
		[]string{catalogText(course)},
	)
	if err != nil {
		return fmt.Errorf("add catalog entry: %w", err)
	}

	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	vectors, err := x.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}

	ids := make([]string, len(chunks))
	metadatas := make([]map[string]string, len(chunks))
	for i, chunk := range chunks {
		ids[i] = fmt.Sprintf("%s#%d", chunk.CourseTitle, chunk.Index)
		metadatas[i] = map[string]string{
			metaCourseTitle:  chunk.CourseTitle,
			metaLessonNumber: strconv.Itoa(chunk.LessonNumber),
			metaChunkIndex:   strconv.Itoa(chunk.Index),
		}
	}

	if err := x.content.Add(ctx, ids, vectors, metadatas, texts); err != nil {
		return fmt.Errorf("add chunks: %w", err)
	}

	logger.Debug("indexed course %q (%d chunks)", course.Title, len(chunks))
	return nil
}

// ResolveCourseTitle maps a fuzzy name fragment to the best matching
// exact course title. The nearest catalog entry wins unconditionally;
// there is no similarity threshold.
func (x *CourseIndex) ResolveCourseTitle(ctx context.Context, nameFragment string) (string, error) {
	if x.catalog.Count() == 0 {
		return "", domain.ErrNotFound
	}

	vector, err := x.embedder.Embed(ctx, nameFragment)
	if err != nil {
		return "", fmt.Errorf("%w: embed course name: %v", domain.ErrIndexUnavailable, err)
	}

	results, err := x.catalog.QueryEmbedding(ctx, vector, 1, nil, nil)
	if err != nil {
		return "", fmt.Errorf("%w: query catalog: %v", domain.ErrIndexUnavailable, err)
	}
	if len(results) == 0 {
		return "", domain.ErrNotFound
	}

	title := results[0].ID
	logger.Debug("resolved course name %q to %q (similarity %.3f)", nameFragment, title, results[0].Similarity)
	return title, nil
}

// SearchContent performs filtered nearest-neighbour search over the
// content collection.
func (x *CourseIndex) SearchContent(ctx context.Context, query string, filter domain.ContentFilter, limit int) (domain.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return domain.SearchResult{}, fmt.Errorf("%w: empty query", domain.ErrInvalidQuery)
	}
	if filter.LessonNumber < 0 {
		return domain.SearchResult{}, fmt.Errorf("%w: negative lesson number", domain.ErrInvalidQuery)
	}
	if limit < 0 {
		return domain.SearchResult{}, fmt.Errorf("%w: negative limit", domain.ErrInvalidQuery)
	}
	if limit == 0 {
		limit = x.defaultLimit
	}

	// chromem rejects nResults above the collection size.
	count := x.content.Count()
	if count == 0 {
		return domain.SearchResult{}, nil
	}
	if limit > count {
		limit = count
	}

	where := contentFilterWhere(filter)

	vector, err := x.embedder.Embed(ctx, query)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("%w: embed query: %v", domain.ErrIndexUnavailable, err)
	}

	results, err := x.content.QueryEmbedding(ctx, vector, limit, where, nil)
	if err != nil {
		return domain.SearchResult{}, fmt.Errorf("%w: query content: %v", domain.ErrIndexUnavailable, err)
	}

	hits := make([]domain.ScoredChunk, 0, len(results))
	for _, result := range results {
		score := float64(result.Similarity)
		hits = append(hits, domain.ScoredChunk{
			Chunk: domain.CourseChunk{
				Content:      result.Content,
				CourseTitle:  result.Metadata[metaCourseTitle],
				LessonNumber: atoiOrZero(result.Metadata[metaLessonNumber]),
				Index:        atoiOrZero(result.Metadata[metaChunkIndex]),
			},
			Score:    score,
			Distance: 1 - score,
		})
	}

	logger.Debug("content search %q matched %d chunks", query, len(hits))
	return domain.SearchResult{Hits: hits}, nil
}

// CourseCount returns the number of courses in the catalog collection.
func (x *CourseIndex) CourseCount(ctx context.Context) (int, error) {
	return x.catalog.Count(), nil
}

// Close releases resources. The persistent database flushes on write,
// so there is nothing to do here.
func (x *CourseIndex) Close() error {
	return nil
}

// catalogText is the text a course is embedded under for name
// resolution. It includes the instructor so queries like "the course by
// Ada" still resolve.
func catalogText(course domain.Course) string {
	var sb strings.Builder
	sb.WriteString(course.Title)
	if course.Instructor != "" {
		sb.WriteString("\nInstructor: ")
		sb.WriteString(course.Instructor)
	}
	if course.Link != "" {
		sb.WriteString("\n")
		sb.WriteString(course.Link)
	}
	return sb.String()
}

// contentFilterWhere builds the metadata filter map, or nil when the
// filter is empty. Filters combine as an AND.
func contentFilterWhere(filter domain.ContentFilter) map[string]string {
	where := make(map[string]string, 2)
	if filter.CourseTitle != "" {
		where[metaCourseTitle] = filter.CourseTitle
	}
	if filter.LessonNumber > 0 {
		where[metaLessonNumber] = strconv.Itoa(filter.LessonNumber)
	}
	if len(where) == 0 {
		return nil
	}
	return where
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
