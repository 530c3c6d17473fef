package domain

import "time"

// Course represents an ingested course document.
// The title is the identity key: it must be unique in the index and is
// used both for deduplication and as the join key for chunks.
type Course struct {
	// Title is the unique, human-readable course title.
	Title string

	// Link is the course URL, if the document declared one.
	Link string

	// Instructor is the course instructor, if the document declared one.
	Instructor string

	// Lessons is the ordered sequence of lessons in the course.
	Lessons []Lesson

	// IngestedAt is when the course was first indexed.
	IngestedAt time.Time
}

// Lesson is a single lesson within a course. Lessons are owned by their
// Course and are never indexed standalone; they exist as catalog metadata
// and as provenance tags on chunks.
type Lesson struct {
	// Number orders the lesson within its course. Unique per course.
	Number int

	// Title is the lesson title.
	Title string

	// Link is the lesson URL, if the document declared one.
	Link string
}

// LessonByNumber returns the lesson with the given number, or nil.
func (c *Course) LessonByNumber(n int) *Lesson {
	for i := range c.Lessons {
		if c.Lessons[i].Number == n {
			return &c.Lessons[i]
		}
	}
	return nil
}

// Validate checks the course invariants: a non-empty title and
// lesson numbers unique within the course.
func (c *Course) Validate() error {
	if c.Title == "" {
		return ErrMalformedDocument
	}
	seen := make(map[int]bool, len(c.Lessons))
	for _, l := range c.Lessons {
		if seen[l.Number] {
			return ErrMalformedDocument
		}
		seen[l.Number] = true
	}
	return nil
}

// CourseChunk is the unit of semantic search: a bounded span of course
// text tagged with its provenance. Chunks reference their course by
// title; they are stored in the content collection, not on the Course.
type CourseChunk struct {
	// Content is the chunk text.
	Content string

	// CourseTitle references the owning Course. Must name an
	// ingested course.
	CourseTitle string

	// LessonNumber is the lesson the chunk falls under, or 0 when the
	// text precedes any lesson marker.
	LessonNumber int

	// Index is the chunk's position in the course's flattened chunk
	// sequence. Monotonically increasing across the whole course, not
	// reset per lesson, so original document order can be recovered.
	Index int
}

// HasLesson reports whether the chunk is attributed to a lesson.
func (c CourseChunk) HasLesson() bool {
	return c.LessonNumber > 0
}
