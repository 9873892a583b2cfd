package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// Assembler resolves index records into ordered document trees. It walks
// reference tags in declared tag order (the order is authoritative: it
// encodes chapter and section order), resolving each reference through
// the fan-out engine.
type Assembler struct {
	engine *FanOutEngine
}

// NewAssembler creates an assembler on top of a fan-out engine.
func NewAssembler(engine *FanOutEngine) *Assembler {
	return &Assembler{engine: engine}
}

// Assemble resolves root into its ordered child nodes. A leaf-kind root
// yields the single-node sequence [root]. visited carries the IDs already
// expanded on this assembly; a child found there is linked without being
// expanded again, which also terminates reference cycles. The caller
// seeds visited with the root's own ID.
//
// Missing children are skipped, not fatal: a partially resolvable
// publication is still assembled from the parts that exist.
func (a *Assembler) Assemble(
	ctx context.Context, root *domain.Record, visited map[string]bool, sources []domain.Source,
) ([]*domain.DocumentNode, error) {
	if root.Kind != domain.KindPublicationIndex {
		return []*domain.DocumentNode{{Record: *root}}, nil
	}

	refs := domain.References(root)
	nodes := make([]*domain.DocumentNode, 0, len(refs))

	for _, ref := range refs {
		child, err := a.Resolve(ctx, ref, sources)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrNoSourceReachable) {
				// Partial assembly: log and keep going with what exists.
				logger.Warn("assemble: reference %s unresolvable: %v", ref.Key(), err)
				continue
			}
			return nil, fmt.Errorf("resolve %s: %w", ref.Key(), err)
		}

		if visited[child.ID] {
			nodes = append(nodes, &domain.DocumentNode{Record: *child, Linked: true})
			continue
		}
		visited[child.ID] = true

		node := &domain.DocumentNode{Record: *child}
		if child.Kind == domain.KindPublicationIndex {
			children, err := a.Assemble(ctx, child, visited, sources)
			if err != nil {
				return nil, err
			}
			node.Children = children
		}
		nodes = append(nodes, node)
	}

	return nodes, nil
}

// Resolve fetches the record a reference points at. Coordinate references
// are late-bound: the fan-out merge already keeps only the latest record
// at the coordinate. ID references fetch by exact ID.
func (a *Assembler) Resolve(
	ctx context.Context, ref domain.Reference, sources []domain.Source,
) (*domain.Record, error) {
	return a.engine.QueryOne(ctx, ref.Filter(), sources)
}

// Flatten traverses the assembled tree pre-order and yields every
// leaf-kind record exactly once, preserving the declared order of the
// reference tags depth-first. Linked nodes do not contribute: their
// records already appear where they were first expanded.
func Flatten(nodes []*domain.DocumentNode) []domain.Record {
	seen := make(map[string]bool)
	var out []domain.Record
	flattenInto(nodes, seen, &out)
	return out
}

func flattenInto(nodes []*domain.DocumentNode, seen map[string]bool, out *[]domain.Record) {
	for _, node := range nodes {
		if node.Linked {
			continue
		}
		if node.Record.Kind == domain.KindPublicationIndex {
			flattenInto(node.Children, seen, out)
			continue
		}
		if seen[node.Record.ID] {
			continue
		}
		seen[node.Record.ID] = true
		*out = append(*out, node.Record)
	}
}
