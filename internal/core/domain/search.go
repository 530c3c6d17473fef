package domain

import "fmt"

// ContentFilter narrows a content search structurally before ranking.
// Filters combine as a logical AND.
type ContentFilter struct {
	// CourseTitle restricts hits to an exact course title.
	// Empty means all courses.
	CourseTitle string

	// LessonNumber restricts hits to an exact lesson number.
	// Zero means all lessons.
	LessonNumber int
}

// ScoredChunk is a single content search hit.
type ScoredChunk struct {
	// Chunk is the matched chunk.
	Chunk CourseChunk

	// Score is the cosine similarity (1 = identical direction).
	Score float64

	// Distance is 1 minus the cosine similarity. Results are ordered
	// by increasing distance, most relevant first.
	Distance float64
}

// SearchResult is the transient outcome of one content search.
// An empty Hits slice is a successful search with no matches, which is
// distinct from a search failure (reported as an error).
type SearchResult struct {
	// Hits are the matched chunks, most relevant first.
	Hits []ScoredChunk
}

// IsEmpty reports whether the search matched nothing.
func (r SearchResult) IsEmpty() bool {
	return len(r.Hits) == 0
}

// Source identifies course material that contributed to an answer.
type Source struct {
	// CourseTitle is the contributing course.
	CourseTitle string

	// LessonNumber is the contributing lesson, or 0 if none.
	LessonNumber int

	// Link points at the lesson (preferred) or the course.
	Link string
}

// Label returns the display form of the source, e.g.
// "Building RAG Systems - Lesson 3".
func (s Source) Label() string {
	if s.LessonNumber > 0 {
		return fmt.Sprintf("%s - Lesson %d", s.CourseTitle, s.LessonNumber)
	}
	return s.CourseTitle
}

// ToolOutput is what a tool execution hands back to the orchestrator:
// the text the model sees plus the structured sources behind it.
// Sources travel as a return value through the whole call chain rather
// than as shared state, so they cannot leak across queries.
type ToolOutput struct {
	// Content is the formatted tool result text.
	Content string

	// Sources lists the material the content was drawn from.
	Sources []Source
}

// Answer is the final outcome of one query.
type Answer struct {
	// Text is the assistant's reply.
	Text string

	// Sources lists the course material used, in result order.
	// Empty when the model answered without searching.
	Sources []Source

	// SessionID identifies the conversation the turn was recorded in.
	SessionID string
}

// CourseStats summarises the indexed catalog.
type CourseStats struct {
	// TotalCourses is the number of indexed courses.
	TotalCourses int

	// CourseTitles lists the indexed course titles.
	CourseTitles []string
}
