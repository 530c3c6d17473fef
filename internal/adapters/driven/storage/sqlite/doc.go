// Package sqlite provides a SQLite-backed implementation of the course
// catalog store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. The catalog mirrors the
// vector index's catalog collection and serves the lookups that must not cost
// an embedding call: deduplication by title, course statistics, and lesson
// link resolution for source attribution.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.tutor/data/catalog.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
