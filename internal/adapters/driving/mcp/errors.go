// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Folio. It lets AI assistants fetch documents, comment threads and
// content lists through the same driving ports the CLI uses.
package mcp

import "errors"

// ErrMissingContentService is returned when the content service is not provided.
var ErrMissingContentService = errors.New("mcp: content service is required")
