// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SourceQuerier: Queries one record source
//   - SourceFactory: Creates queriers from source configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RecordArchive: Local write-through archive of fetched records.
//     Without it, nothing persists across restarts and every cold read
//     goes to the network.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
