package services

import (
	"sort"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// BuildThreads reconstructs the reply forest from a flat pool of comment
// records scoped to one document. Each comment tag-references either the
// document (top-level) or another comment (reply). The builder is
// agnostic to what the comments are about: that binding happens at the
// cache-key level.
//
// A comment whose declared parent is absent from the pool is promoted to
// top-level rather than dropped, so no comment is silently lost. Sibling
// order is chronological ascending with ID as tiebreak, stable across
// repeated calls on the same input.
func BuildThreads(comments []domain.Record) []*domain.ThreadNode {
	pool := make(map[string]bool, len(comments))
	for _, c := range comments {
		pool[c.ID] = true
	}

	var roots []domain.Record
	children := make(map[string][]domain.Record)

	for _, c := range comments {
		parent := parentCommentID(&c, pool)
		if parent == "" {
			roots = append(roots, c)
			continue
		}
		children[parent] = append(children[parent], c)
	}

	placed := make(map[string]bool, len(comments))
	nodes := buildForest(roots, children, placed)

	// A mutual reference cycle leaves comments unreachable from any
	// root. Promote them too: no comment is silently lost.
	var leftover []domain.Record
	for _, c := range comments {
		if !placed[c.ID] {
			leftover = append(leftover, c)
		}
	}
	if len(leftover) > 0 {
		nodes = append(nodes, buildForest(leftover, children, placed)...)
	}

	return nodes
}

// parentCommentID returns the ID of the comment's immediate parent
// comment, or empty string when the comment is top-level or its parent
// is not in the pool (orphan promotion). The last matching ID reference
// wins: comment conventions put the direct parent last.
func parentCommentID(c *domain.Record, pool map[string]bool) string {
	parent := ""
	for _, ref := range domain.References(c) {
		idRef, ok := ref.(domain.IDReference)
		if !ok {
			continue
		}
		if idRef.ID == c.ID {
			continue
		}
		if pool[idRef.ID] {
			parent = idRef.ID
		}
	}
	return parent
}

// buildForest attaches children recursively. placed guards against
// malformed reference cycles between comments.
func buildForest(
	records []domain.Record, children map[string][]domain.Record, placed map[string]bool,
) []*domain.ThreadNode {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].ID < records[j].ID
	})

	nodes := make([]*domain.ThreadNode, 0, len(records))
	for _, rec := range records {
		if placed[rec.ID] {
			continue
		}
		placed[rec.ID] = true
		nodes = append(nodes, &domain.ThreadNode{
			Record:  rec,
			Replies: buildForest(children[rec.ID], children, placed),
		})
	}
	return nodes
}
