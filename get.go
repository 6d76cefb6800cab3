package shardedmap

import (
	"bytes"
	"context"
	"fmt"
	"sort"
)

// Get looks up a single key starting at the given root. It descends the
// trie, consuming node prefixes and edge bytes, resolving children from
// storage only along the traversed path; unrelated subtrees are never
// materialized. Absence of the key is reported as found=false, not as an
// error.
func Get(ctx context.Context, storage *NodeStorage, root ShardedMapNode, key []byte) (Value, bool, error) {
	node := root

	for {
		switch n := node.(type) {
		case *TerminalNode:
			// The residual key is looked up directly; ancestor prefixes
			// and edge bytes have already been consumed.
			i := sort.Search(len(n.entries), func(i int) bool {
				return bytes.Compare(n.entries[i].Key, key) >= 0
			})
			if i < len(n.entries) && bytes.Equal(n.entries[i].Key, key) {
				return n.entries[i].Value, true, nil
			}
			return nil, false, nil

		case *IntermediateNode:
			if !bytes.HasPrefix(key, n.prefix) {
				return nil, false, nil
			}
			key = key[len(n.prefix):]

			if len(key) == 0 {
				if n.value == nil {
					return nil, false, nil
				}
				return n.value, true, nil
			}

			child, ok := n.childByLabel(key[0])
			if !ok {
				return nil, false, nil
			}
			key = key[1:]

			var err error
			node, err = child.Resolve(ctx, storage)
			if err != nil {
				// Don't need to wrap error as it is already categorized by Resolve().
				return nil, false, err
			}

		default:
			return nil, false, NewStorageError(fmt.Errorf("unexpected node type %T", node))
		}
	}
}
