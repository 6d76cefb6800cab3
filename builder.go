package shardedmap

import (
	"bytes"
	"sort"
)

// BuildNode constructs a sharded map from a full entry set. The entries
// are sorted by key; duplicate keys are rejected. The resulting trie is
// canonical for the entry set and the current shard threshold: a subtree
// with at most maxTerminalShardSize values becomes a terminal node, and
// larger subtrees compress their longest common key prefix into an
// intermediate node partitioned by next byte.
//
// The result is fully inlined and exists only in memory; use PersistNode
// to externalize large subtrees and write the map to a blob store.
func BuildNode(entries []Entry) (ShardedMapNode, error) {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Key, sorted[j].Key) < 0
	})

	for i := 1; i < len(sorted); i++ {
		if bytes.Equal(sorted[i-1].Key, sorted[i].Key) {
			return nil, NewDuplicateKeyError(sorted[i].Key)
		}
	}

	return buildNode(sorted)
}

// buildNode builds the subtree for entries whose ancestor prefixes and
// edge bytes have already been stripped. Entries are sorted and unique.
func buildNode(entries []Entry) (ShardedMapNode, error) {
	if uint64(len(entries)) <= maxTerminalShardSize {
		return NewTerminalNode(entries)
	}

	// Entries are sorted, so the common prefix of the first and last
	// keys is the common prefix of all of them.
	prefix := commonPrefix(entries[0].Key, entries[len(entries)-1].Key)

	// Only the first entry can terminate exactly at this node.
	var value Value
	rest := entries
	if len(entries[0].Key) == len(prefix) {
		value = entries[0].Value
		rest = entries[1:]
	}

	var children []ChildEntry
	for i := 0; i < len(rest); {
		label := rest[i].Key[len(prefix)]

		j := i
		for j < len(rest) && rest[j].Key[len(prefix)] == label {
			j++
		}

		group := make([]Entry, 0, j-i)
		for ; i < j; i++ {
			group = append(group, Entry{
				Key:   rest[i].Key[len(prefix)+1:],
				Value: rest[i].Value,
			})
		}

		child, err := buildNode(group)
		if err != nil {
			return nil, err
		}

		children = append(children, ChildEntry{Label: label, Child: ChildInlined{node: child}})
	}

	return NewIntermediateNode(prefix, value, children)
}

func commonPrefix(a, b []byte) []byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
