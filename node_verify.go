package shardedmap

import (
	"bytes"
	"context"
	"fmt"
)

// VerifyNode checks the structural invariants of the map rooted at node:
// terminal keys strictly ascending, child bytes strictly ascending and
// unique, and every cached value count equal to the actual number of
// values in its subtree. Referenced subtrees are resolved from storage,
// so verification reads the whole map.
func VerifyNode(ctx context.Context, storage *NodeStorage, node ShardedMapNode) error {
	size, err := verifyNode(ctx, storage, node)
	if err != nil {
		return err
	}

	if node.IsEmpty() != (size == 0) {
		return fmt.Errorf("node reports IsEmpty %t with %d values", node.IsEmpty(), size)
	}

	return nil
}

// verifyNode returns the actual value count of the subtree.
func verifyNode(ctx context.Context, storage *NodeStorage, node ShardedMapNode) (uint64, error) {
	switch n := node.(type) {
	case *TerminalNode:
		for i := 1; i < len(n.entries); i++ {
			if bytes.Compare(n.entries[i-1].Key, n.entries[i].Key) >= 0 {
				return 0, fmt.Errorf("terminal keys out of order at %q", n.entries[i].Key)
			}
		}
		return uint64(len(n.entries)), nil

	case *IntermediateNode:
		if len(n.children) > maxChildCount {
			return 0, fmt.Errorf("node has %d children, limit is %d", len(n.children), maxChildCount)
		}

		count := uint64(0)
		if n.value != nil {
			count++
		}

		for i, c := range n.children {
			if i > 0 && n.children[i-1].Label >= c.Label {
				return 0, fmt.Errorf("child bytes out of order at %d", c.Label)
			}

			child, err := c.Child.Resolve(ctx, storage)
			if err != nil {
				return 0, err
			}

			childSize, err := verifyNode(ctx, storage, child)
			if err != nil {
				return 0, err
			}

			if childSize != child.Size() {
				return 0, fmt.Errorf(
					"child %d caches value count %d but holds %d values",
					c.Label, child.Size(), childSize,
				)
			}

			count += childSize
		}

		if count != n.valueCount {
			return 0, fmt.Errorf("node caches value count %d but holds %d values", n.valueCount, count)
		}

		return count, nil

	default:
		return 0, fmt.Errorf("unexpected node type %T", node)
	}
}
