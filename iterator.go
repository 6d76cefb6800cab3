package shardedmap

import (
	"context"
	"fmt"
)

// IterateNode walks the map rooted at node in ascending key order and
// calls fn once per stored value with the fully reconstructed key: the
// concatenation, root to node, of every prefix and edge byte traversed,
// plus the residual terminal key. Children are resolved from storage as
// the walk reaches them. Returning an error from fn stops the walk.
func IterateNode(
	ctx context.Context,
	storage *NodeStorage,
	node ShardedMapNode,
	fn func(key []byte, value Value) error,
) error {
	return iterateNode(ctx, storage, node, nil, fn)
}

func iterateNode(
	ctx context.Context,
	storage *NodeStorage,
	node ShardedMapNode,
	keyPrefix []byte,
	fn func(key []byte, value Value) error,
) error {
	switch n := node.(type) {
	case *TerminalNode:
		for _, e := range n.entries {
			err := fn(concatKey(keyPrefix, e.Key), e.Value)
			if err != nil {
				return err
			}
		}
		return nil

	case *IntermediateNode:
		base := concatKey(keyPrefix, n.prefix)

		if n.value != nil {
			err := fn(concatKey(base, nil), n.value)
			if err != nil {
				return err
			}
		}

		for _, c := range n.children {
			child, err := c.Child.Resolve(ctx, storage)
			if err != nil {
				// Don't need to wrap error as it is already categorized by Resolve().
				return err
			}

			err = iterateNode(ctx, storage, child, concatKey(base, []byte{c.Label}), fn)
			if err != nil {
				return err
			}
		}
		return nil

	default:
		return NewStorageError(fmt.Errorf("unexpected node type %T", node))
	}
}

// concatKey returns a fresh slice so callers never alias each other's
// reconstructed keys.
func concatKey(a, b []byte) []byte {
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
