package shardedmap

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// MaterializeNode returns a fully inlined equivalent of the map rooted
// at node, fetching every referenced subtree from storage. Children of
// the same node are fetched concurrently; the first failure cancels the
// remaining fetches. The input node is not modified.
//
// Point lookups should prefer Get, which only loads the traversed path;
// materializing is for callers that will read most of the map anyway.
func MaterializeNode(ctx context.Context, storage *NodeStorage, node ShardedMapNode) (ShardedMapNode, error) {
	switch n := node.(type) {
	case *TerminalNode:
		return n, nil

	case *IntermediateNode:
		children := make([]ChildEntry, len(n.children))

		g, gctx := errgroup.WithContext(ctx)
		for i, c := range n.children {
			i, c := i, c
			g.Go(func() error {
				child, err := c.Child.Resolve(gctx, storage)
				if err != nil {
					// Don't need to wrap error as it is already categorized by Resolve().
					return err
				}

				materialized, err := MaterializeNode(gctx, storage, child)
				if err != nil {
					return err
				}

				children[i] = ChildEntry{Label: c.Label, Child: ChildInlined{node: materialized}}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		return &IntermediateNode{
			prefix:     n.prefix,
			value:      n.value,
			valueCount: n.valueCount,
			children:   children,
		}, nil

	default:
		return nil, NewStorageError(fmt.Errorf("unexpected node type %T", node))
	}
}
