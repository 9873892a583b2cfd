// Package domain defines the core business entities for Folio.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: An immutable, identity-addressed unit of content
//   - Reference: A pointer from one record to another
//   - Coordinate: A (kind, author, identifier) address for replaceable records
//   - Filter: A predicate set matched against records by a source
//   - DocumentNode / ThreadNode: Assembled content and comment trees
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
