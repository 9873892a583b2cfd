package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for Folio resources.
const uriScheme = "folio://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "cache/stats",
		Name:        "cache-stats",
		Description: "Per-region cache entry counts and byte estimates",
		MIMEType:    "application/json",
	}, s.handleCacheStatsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "warm/status",
		Name:        "warm-status",
		Description: "Per-region cache warming state",
		MIMEType:    "application/json",
	}, s.handleWarmStatusResource)
}

// handleCacheStatsResource returns the cache region statistics.
func (s *Server) handleCacheStatsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Cache == nil {
		return emptyJSONResource(req), nil
	}

	data, err := json.MarshalIndent(s.ports.Cache.Stats(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling cache stats: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleWarmStatusResource returns the warmer's per-region state.
func (s *Server) handleWarmStatusResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Warmer == nil {
		return emptyJSONResource(req), nil
	}

	data, err := json.MarshalIndent(s.ports.Warmer.Status(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling warm status: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// emptyJSONResource is the response when the backing port is absent.
func emptyJSONResource(req *mcp.ReadResourceRequest) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     "[]",
		}},
	}
}
