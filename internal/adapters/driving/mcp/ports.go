package mcp

import (
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Content provides document, comment and list reads.
	Content driving.ContentService

	// Warmer triggers and reports cache warming. Optional.
	Warmer driving.Warmer

	// Cache exposes cache diagnostics. Optional.
	Cache driving.CacheAdmin
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Content == nil {
		return ErrMissingContentService
	}
	// Warmer and Cache are optional
	return nil
}
