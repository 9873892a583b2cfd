package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

// GetDocumentInput is the input schema for the get_document tool.
type GetDocumentInput struct {
	Reference string `json:"reference" jsonschema:"record ID or kind:author:identifier coordinate of the document"`
}

// GetDocumentOutput is the output schema for the get_document tool.
type GetDocumentOutput struct {
	Title    string         `json:"title"`
	Author   string         `json:"author"`
	Kind     int            `json:"kind"`
	Created  time.Time      `json:"created"`
	Stale    bool           `json:"stale,omitempty"`
	Sections []RecordOutput `json:"sections"`
}

// GetCommentsInput is the input schema for the get_comments tool.
type GetCommentsInput struct {
	Coordinate string `json:"coordinate" jsonschema:"kind:author:identifier coordinate of the commented document"`
}

// GetCommentsOutput is the output schema for the get_comments tool.
type GetCommentsOutput struct {
	Threads []ThreadOutput `json:"threads"`
	Count   int            `json:"count"`
}

// ListContentInput is the input schema for the list_content tool.
type ListContentInput struct {
	Type  string `json:"type" jsonschema:"what to list: articles, publications or highlights"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// ListContentOutput is the output schema for the list_content tool.
type ListContentOutput struct {
	Records []RecordOutput `json:"records"`
	Count   int            `json:"count"`
}

// RecordOutput represents a single record.
type RecordOutput struct {
	ID      string    `json:"id"`
	Title   string    `json:"title,omitempty"`
	Author  string    `json:"author"`
	Created time.Time `json:"created"`
	Address string    `json:"address,omitempty"`
	Content string    `json:"content,omitempty"`
}

// ThreadOutput represents one comment and its replies.
type ThreadOutput struct {
	ID      string         `json:"id"`
	Author  string         `json:"author"`
	Created time.Time      `json:"created"`
	Content string         `json:"content"`
	Replies []ThreadOutput `json:"replies,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_document",
		Description: "Fetch and assemble a document from the configured sources",
	}, s.handleGetDocument)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_comments",
		Description: "Fetch the threaded comments for a document",
	}, s.handleGetComments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_content",
		Description: "List recent articles, publications or highlights",
	}, s.handleListContent)
}

// handleGetDocument handles the get_document tool invocation.
func (s *Server) handleGetDocument(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDocumentInput,
) (*mcp.CallToolResult, GetDocumentOutput, error) {
	ref, err := parseReference(input.Reference)
	if err != nil {
		return nil, GetDocumentOutput{}, err
	}

	result, err := s.ports.Content.GetDocument(ctx, ref, driving.QueryOptions{})
	if err != nil {
		return nil, GetDocumentOutput{}, err
	}

	output := GetDocumentOutput{
		Title:    result.Root.Title(),
		Author:   result.Root.Author,
		Kind:     result.Root.Kind,
		Created:  result.Root.CreatedAt,
		Stale:    result.Stale,
		Sections: make([]RecordOutput, len(result.Content)),
	}
	for i := range result.Content {
		output.Sections[i] = recordOutput(&result.Content[i], true)
	}

	return nil, output, nil
}

// handleGetComments handles the get_comments tool invocation.
func (s *Server) handleGetComments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetCommentsInput,
) (*mcp.CallToolResult, GetCommentsOutput, error) {
	coord, err := domain.ParseCoordinate(input.Coordinate)
	if err != nil {
		return nil, GetCommentsOutput{}, err
	}

	threads, err := s.ports.Content.GetComments(ctx, coord, driving.QueryOptions{})
	if err != nil {
		return nil, GetCommentsOutput{}, err
	}

	output := GetCommentsOutput{
		Threads: threadOutputs(threads),
		Count:   countThreads(threads),
	}
	return nil, output, nil
}

// handleListContent handles the list_content tool invocation.
func (s *Server) handleListContent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListContentInput,
) (*mcp.CallToolResult, ListContentOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}
	opts := driving.QueryOptions{Limit: limit}

	var records []domain.Record
	var err error
	switch strings.ToLower(input.Type) {
	case "articles":
		records, err = s.ports.Content.ListArticles(ctx, opts)
	case "publications":
		records, err = s.ports.Content.ListPublications(ctx, opts)
	case "highlights":
		records, err = s.ports.Content.ListHighlights(ctx, opts)
	default:
		return nil, ListContentOutput{}, fmt.Errorf(
			"unknown content type %q: want articles, publications or highlights", input.Type)
	}
	if err != nil {
		return nil, ListContentOutput{}, err
	}

	output := ListContentOutput{
		Records: make([]RecordOutput, len(records)),
		Count:   len(records),
	}
	for i := range records {
		output.Records[i] = recordOutput(&records[i], false)
	}
	return nil, output, nil
}

// recordOutput converts a record for tool output.
func recordOutput(rec *domain.Record, withContent bool) RecordOutput {
	out := RecordOutput{
		ID:      rec.ID,
		Title:   rec.Title(),
		Author:  rec.Author,
		Created: rec.CreatedAt,
	}
	if rec.IsReplaceable() {
		out.Address = rec.Coordinate().String()
	}
	if withContent {
		out.Content = rec.Content
	}
	return out
}

// threadOutputs converts a comment forest for tool output.
func threadOutputs(threads []*domain.ThreadNode) []ThreadOutput {
	out := make([]ThreadOutput, len(threads))
	for i, thread := range threads {
		out[i] = ThreadOutput{
			ID:      thread.Record.ID,
			Author:  thread.Record.Author,
			Created: thread.Record.CreatedAt,
			Content: thread.Record.Content,
			Replies: threadOutputs(thread.Replies),
		}
	}
	return out
}

// countThreads counts every comment in the forest.
func countThreads(threads []*domain.ThreadNode) int {
	count := 0
	for _, thread := range threads {
		count += 1 + countThreads(thread.Replies)
	}
	return count
}

// parseReference interprets a tool argument as a record reference: a
// coordinate when it parses as one, a record ID otherwise.
func parseReference(arg string) (domain.Reference, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, fmt.Errorf("%w: empty reference", domain.ErrInvalidReference)
	}
	if strings.Contains(arg, ":") {
		coord, err := domain.ParseCoordinate(arg)
		if err != nil {
			return nil, err
		}
		return domain.CoordinateReference{Coordinate: coord}, nil
	}
	return domain.IDReference{ID: arg}, nil
}
