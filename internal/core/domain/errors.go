package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrMalformedDocument indicates a course document whose mandatory
	// header could not be parsed. Ingestion logs and skips the document.
	ErrMalformedDocument = errors.New("malformed course document")

	// ErrIndexUnavailable indicates the embedding or vector storage
	// backend is down. Surfaced to the caller, never retried internally.
	ErrIndexUnavailable = errors.New("course index unavailable")

	// ErrInvalidQuery indicates a structurally invalid search request
	// (empty query, lesson number below 1, negative limit).
	ErrInvalidQuery = errors.New("invalid query")

	// ErrGenerationFailed indicates the language model service failed
	// (timeout, rate limit, malformed response). Retries are caller
	// policy, not performed here.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrLLMUnavailable indicates no LLM service is configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates no embedding service is
	// configured. Semantic retrieval cannot run without one.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
