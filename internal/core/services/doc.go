// Package services contains the core business logic for Folio.
//
// Services implement the driving ports and depend only on domain types
// and driven ports:
//
//   - FanOutEngine: Concurrent multi-source querying with deduplication
//   - Assembler: Recursive resolution of index records into document trees
//   - BuildThreads: Reconstruction of comment reply forests
//   - ContentService: Cache-first orchestration of the read paths
//   - Warmer: Proactive background cache population
//
// # Import Rules
//
//   - Can Import: domain, ports, cache, logger
//   - Cannot Import: Any adapter package
package services
