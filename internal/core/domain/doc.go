// Package domain defines the core business entities for Docuchat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An ingested document with metadata
//   - Fragment: A retrievable slice of a document's text
//   - SearchResult: A fragment matched against a query
//   - Turn: One message in a conversation session
//   - Booking: A persisted interview-scheduling record
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
