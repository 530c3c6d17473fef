// Package docparse turns raw course documents into Course records and
// ordered, overlapping content chunks.
//
// The expected document format is plain text:
//
//	Course Title: <title>
//	Course Link: <url>          (optional)
//	Course Instructor: <name>   (optional)
//	Lesson 1: <lesson title>
//	Lesson Link: <url>          (optional)
//	<lesson body ...>
//	Lesson 2: <lesson title>
//	...
//
// Parsing is a pure transformation: all file I/O belongs to the
// ingestion service, not to this package.
package docparse
