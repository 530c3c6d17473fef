package docparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/opencourse-ai/tutor-cli/internal/core/domain"
)

// DefaultChunkSize is the default maximum chunk length in characters.
const DefaultChunkSize = 800

// DefaultChunkOverlap is the default character overlap between
// consecutive chunks of the same lesson.
const DefaultChunkOverlap = 100

// Header prefixes recognised at the top of a course document.
const (
	titlePrefix      = "Course Title:"
	linkPrefix       = "Course Link:"
	instructorPrefix = "Course Instructor:"
	lessonLinkPrefix = "Lesson Link:"
)

// lessonMarker matches "Lesson N: <title>" lines.
var lessonMarker = regexp.MustCompile(`^Lesson\s+(\d+):\s*(.*)$`)

// sentenceEnd splits text on sentence terminators followed by whitespace.
var sentenceEnd = regexp.MustCompile(`[.!?]+(?:\s+|$)`)

// Processor parses course documents and packs lesson bodies into
// sentence-aligned chunks with a fixed character overlap.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the processor.
type Option func(*Processor)

// WithChunkSize sets the maximum chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithChunkOverlap sets the overlap between chunks in characters.
func WithChunkOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Overlap must leave room for new content in every chunk.
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// ParseTitle extracts only the course title header. Ingestion uses it
// as a cheap dedup probe before committing to full processing.
func ParseTitle(text string) (string, error) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if lessonMarker.MatchString(line) {
			break
		}
		if after, ok := strings.CutPrefix(line, titlePrefix); ok {
			title := strings.TrimSpace(after)
			if title == "" {
				break
			}
			return title, nil
		}
	}
	return "", fmt.Errorf("%w: missing %q header", domain.ErrMalformedDocument, titlePrefix)
}

// ParseTitle extracts only the course title header. It forwards to the
// package-level function so the processor satisfies consumers that take
// parsing and chunking as one dependency.
func (p *Processor) ParseTitle(text string) (string, error) {
	return ParseTitle(text)
}

// Process parses a whole course document into a Course plus its ordered
// chunk sequence. Chunk indices increase monotonically across the whole
// course, never resetting per lesson, so the original document order can
// be recovered later.
func (p *Processor) Process(text string) (*domain.Course, []domain.CourseChunk, error) {
	lines := strings.Split(text, "\n")

	course := &domain.Course{IngestedAt: time.Now().UTC()}

	// Leading metadata lines run until the first lesson marker. Body
	// text found here, or anywhere in a document with no lesson markers
	// at all, is kept and attributed to lesson number 0 so it stays
	// searchable.
	body := 0
	var preamble []string
	for ; body < len(lines); body++ {
		line := strings.TrimSpace(lines[body])
		if lessonMarker.MatchString(line) {
			break
		}
		switch {
		case strings.HasPrefix(line, titlePrefix):
			course.Title = strings.TrimSpace(strings.TrimPrefix(line, titlePrefix))
		case strings.HasPrefix(line, linkPrefix):
			course.Link = strings.TrimSpace(strings.TrimPrefix(line, linkPrefix))
		case strings.HasPrefix(line, instructorPrefix):
			course.Instructor = strings.TrimSpace(strings.TrimPrefix(line, instructorPrefix))
		default:
			preamble = append(preamble, lines[body])
		}
	}

	if course.Title == "" {
		return nil, nil, fmt.Errorf("%w: missing %q header", domain.ErrMalformedDocument, titlePrefix)
	}

	var chunks []domain.CourseChunk
	chunkIndex := 0

	// emit packs one lesson body into chunks, tagging provenance.
	emit := func(lessonNumber int, content string) {
		for _, piece := range p.packSentences(splitSentences(content)) {
			chunks = append(chunks, domain.CourseChunk{
				Content:      piece,
				CourseTitle:  course.Title,
				LessonNumber: lessonNumber,
				Index:        chunkIndex,
			})
			chunkIndex++
		}
	}

	emit(0, strings.TrimSpace(strings.Join(preamble, "\n")))

	if body >= len(lines) {
		// No lesson markers: the preamble chunks and the catalog entry
		// are all there is.
		return course, chunks, nil
	}

	current := -1
	var buf []string

	flush := func() {
		if current < 0 {
			return
		}
		emit(current, strings.TrimSpace(strings.Join(buf, "\n")))
		buf = buf[:0]
	}

	for _, raw := range lines[body:] {
		line := strings.TrimSpace(raw)

		if m := lessonMarker.FindStringSubmatch(line); m != nil {
			flush()
			number, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, nil, fmt.Errorf("%w: bad lesson number %q", domain.ErrMalformedDocument, m[1])
			}
			current = number
			course.Lessons = append(course.Lessons, domain.Lesson{
				Number: number,
				Title:  strings.TrimSpace(m[2]),
			})
			continue
		}

		// An optional lesson link directly follows the marker.
		if after, ok := strings.CutPrefix(line, lessonLinkPrefix); ok && current >= 0 && len(buf) == 0 {
			if n := len(course.Lessons); n > 0 {
				course.Lessons[n-1].Link = strings.TrimSpace(after)
			}
			continue
		}

		if current >= 0 {
			buf = append(buf, raw)
		}
	}
	flush()

	if err := course.Validate(); err != nil {
		return nil, nil, err
	}

	return course, chunks, nil
}

// splitSentences breaks text into trimmed sentences, keeping the
// terminating punctuation with each sentence.
func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	last := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		s := strings.TrimSpace(text[last:loc[1]])
		if s != "" {
			sentences = append(sentences, s)
		}
		last = loc[1]
	}
	if tail := strings.TrimSpace(text[last:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// packSentences greedily packs sentences into chunks of at most
// chunkSize characters. Consecutive chunks share trailing sentences up
// to the configured overlap, so a sentence that straddles a boundary is
// never lost.
func (p *Processor) packSentences(sentences []string) []string {
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	i := 0
	for i < len(sentences) {
		length := 0
		j := i
		for j < len(sentences) {
			add := len(sentences[j])
			if length > 0 {
				add++ // joining space
			}
			if length+add > p.chunkSize && length > 0 {
				break
			}
			length += add
			j++
		}

		chunks = append(chunks, strings.Join(sentences[i:j], " "))
		if j >= len(sentences) {
			break
		}

		// Back up whole sentences until the overlap budget is spent.
		next := j
		carried := 0
		for next > i+1 {
			cand := len(sentences[next-1]) + 1
			if carried+cand > p.overlap {
				break
			}
			carried += cand
			next--
		}
		i = next
	}

	return chunks
}
