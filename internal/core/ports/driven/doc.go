// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CatalogStore: Transactional document/fragment/booking persistence
//   - SessionStore: Conversation history with bounded retention
//   - TextExtractor: Raw upload bytes to plain text
//   - Chunker: Document text to ordered fragments
//
// # Best-Effort Interfaces
//
// Failures here degrade quality instead of failing requests:
//
//   - VectorStore: Vector persistence and similarity queries. When it is
//     unreachable the SearchIndex enters degraded mode and retrieval
//     returns no fragments.
//   - SearchIndex: The core-owned index facade over VectorStore. Its
//     operations never propagate backend failures.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
