// Package driving defines the interfaces through which external actors
// drive the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// Core services implement them; the CLI and MCP adapters consume them.
//
//   - ContentService: Document, comment and list retrieval
//   - Warmer: Proactive cache population
//   - CacheAdmin: Cache diagnostics and invalidation
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driving
