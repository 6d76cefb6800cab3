package shardedmap

import (
	"context"
	"fmt"
)

// PersistNode writes a fully or partially materialized node graph to the
// blob store. Subtrees whose encodings exceed maxInlineNodeSize are
// stored as separate blobs bottom-up and replaced by ID references in
// their parents; small subtrees stay inlined. The root itself is always
// stored. Returns the persisted root (with references substituted) and
// its identifier.
//
// Identical subtrees encode to identical bytes and therefore the same
// blob key, so persisting near-identical snapshots deduplicates shared
// subtrees automatically.
func PersistNode(ctx context.Context, storage *NodeStorage, node ShardedMapNode) (ShardedMapNode, NodeID, error) {
	persisted, err := externalizeChildren(ctx, storage, node)
	if err != nil {
		// Don't need to wrap error as it is already categorized by externalizeChildren().
		return nil, NodeIDUndefined, err
	}

	id, err := storage.StoreNode(ctx, persisted)
	if err != nil {
		// Don't need to wrap error as it is already categorized by StoreNode().
		return nil, NodeIDUndefined, err
	}

	return persisted, id, nil
}

func externalizeChildren(ctx context.Context, storage *NodeStorage, node ShardedMapNode) (ShardedMapNode, error) {
	switch n := node.(type) {
	case *TerminalNode:
		return n, nil

	case *IntermediateNode:
		children := make([]ChildEntry, len(n.children))
		copy(children, n.children)

		for i, c := range children {
			inlined, ok := c.Child.(ChildInlined)
			if !ok {
				// Already a reference; its subtree is already stored.
				continue
			}

			childNode, err := externalizeChildren(ctx, storage, inlined.node)
			if err != nil {
				return nil, err
			}

			blob, err := ToBlob(childNode, storage.encMode)
			if err != nil {
				// Don't need to wrap error as it is already categorized by ToBlob().
				return nil, err
			}

			if uint64(len(blob.Data)) > maxInlineNodeSize {
				err = storage.storeNodeBlob(ctx, blob, childNode)
				if err != nil {
					// Don't need to wrap error as it is already categorized by storeNodeBlob().
					return nil, err
				}
				children[i] = ChildEntry{Label: c.Label, Child: ChildID{id: blob.ID}}
			} else {
				children[i] = ChildEntry{Label: c.Label, Child: ChildInlined{node: childNode}}
			}
		}

		// The value count is unchanged: swapping a child between its
		// inlined and referenced form does not move any values.
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
