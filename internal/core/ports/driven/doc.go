// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports).
//
// Core services depend on these interfaces, never on concrete adapters.
// Adapters under internal/adapters/driven implement them:
//
//   - EmbeddingService: text -> vector (OpenAI, Ollama)
//   - LLMService: tool-calling conversation with a language model
//   - CourseIndex: dual-collection vector search (chromem-go)
//   - CatalogStore: course/lesson metadata persistence (SQLite, memory)
package driven
