// Package domain defines the core business entities for Tutor.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Course: An ingested course with its lessons
//   - CourseChunk: A searchable span of course text
//   - SearchResult: Ranked chunks returned by the content index
//   - ConversationTurn: One message in a session history
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
