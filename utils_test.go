package shardedmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type kv struct {
	k string
	v uint64
}

func terminalNode(t testing.TB, pairs []kv) *TerminalNode {
	entries := make([]Entry, 0, len(pairs))
	for _, p := range pairs {
		entries = append(entries, Entry{Key: []byte(p.k), Value: Uint64Value(p.v)})
	}
	n, err := NewTerminalNode(entries)
	require.NoError(t, err)
	return n
}

func intermediateNode(t testing.TB, prefix string, value Value, children ...ChildEntry) *IntermediateNode {
	n, err := NewIntermediateNode([]byte(prefix), value, children)
	require.NoError(t, err)
	return n
}

func inlined(label byte, node ShardedMapNode) ChildEntry {
	return ChildEntry{Label: label, Child: NewChildInlined(node)}
}

// exampleMap returns the two-level map used across tests:
//
//	root (no prefix, no value)
//	  'a' -> (prefix "ba")
//	           'c' -> {"ab":7, "aba":8, "akkk":9, "ate":10, "axi":11}
//	           'l' -> {"aba":5, "ada":6}
//	  'o' -> {"miojo":1, "miux":2, "mundo":3, "mungal":4}
//
// so e.g. the full key "abacate" maps to 10.
func exampleMap(t testing.TB) *IntermediateNode {
	abac := terminalNode(t, []kv{
		{"ab", 7},
		{"aba", 8},
		{"akkk", 9},
		{"ate", 10},
		{"axi", 11},
	})
	abal := terminalNode(t, []kv{{"aba", 5}, {"ada", 6}})
	a := intermediateNode(t, "ba", nil, inlined('c', abac), inlined('l', abal))
	o := terminalNode(t, []kv{{"miojo", 1}, {"miux", 2}, {"mundo", 3}, {"mungal", 4}})
	return intermediateNode(t, "", nil, inlined('a', a), inlined('o', o))
}

// exampleEntries is every (full key, value) pair stored in exampleMap,
// in ascending key order.
var exampleEntries = []kv{
	{"abacab", 7},
	{"abacaba", 8},
	{"abacakkk", 9},
	{"abacate", 10},
	{"abacaxi", 11},
	{"abalaba", 5},
	{"abalada", 6},
	{"omiojo", 1},
	{"omiux", 2},
	{"omundo", 3},
	{"omungal", 4},
}

func newTestStorage() (*InMemBlobStore, *NodeStorage) {
	base := NewInMemBlobStore()
	storage := NewNodeStorage(base, DefaultEncMode(), DefaultDecMode(), DecodeValue)
	return base, storage
}

// assertRoundTrip checks the round-trip law at the byte level:
// re-encoding the decoded node must reproduce the original bytes.
// Byte equality is the property content addressing depends on.
func assertRoundTrip(t testing.TB, node ShardedMapNode) {
	data, err := EncodeNode(node, DefaultEncMode())
	require.NoError(t, err)

	decoded, err := DecodeNode(data, DefaultDecMode(), DecodeValue)
	require.NoError(t, err)

	require.Equal(t, node.Size(), decoded.Size())
	require.Equal(t, node.IsEmpty(), decoded.IsEmpty())

	reencoded, err := EncodeNode(decoded, DefaultEncMode())
	require.NoError(t, err)
	require.Equal(t, data, reencoded)
}
