package shardedmap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmptyNodes(t *testing.T) {
	empty, err := NewTerminalNode(nil)
	require.NoError(t, err)
	require.True(t, empty.IsEmpty())
	require.Equal(t, uint64(0), empty.Size())

	emptyIntermediate, err := NewIntermediateNode(nil, nil, nil)
	require.NoError(t, err)
	require.True(t, emptyIntermediate.IsEmpty())
	require.Equal(t, uint64(0), emptyIntermediate.Size())

	assertRoundTrip(t, empty)
	assertRoundTrip(t, emptyIntermediate)
}

func TestBasicNodes(t *testing.T) {
	m := terminalNode(t, []kv{{"ab", 3}, {"cd", 5}})
	require.False(t, m.IsEmpty())
	require.Equal(t, uint64(2), m.Size())
	assertRoundTrip(t, m)

	withValue := intermediateNode(t, "pre", Uint64Value(42), inlined('x', m))
	require.False(t, withValue.IsEmpty())
	require.Equal(t, uint64(3), withValue.Size())
	assertRoundTrip(t, withValue)
}

func TestExampleMap(t *testing.T) {
	m := exampleMap(t)
	require.False(t, m.IsEmpty())
	require.Equal(t, uint64(11), m.Size())
	assertRoundTrip(t, m)

	_, storage := newTestStorage()
	require.NoError(t, VerifyNode(context.Background(), storage, m))
}

func TestValueCountMismatchDetected(t *testing.T) {
	inner := terminalNode(t, []kv{{"a", 1}, {"b", 2}})

	bad, err := NewIntermediateNodeWithCount(nil, nil, 5, []ChildEntry{inlined('x', inner)})
	require.NoError(t, err)

	_, storage := newTestStorage()
	err = VerifyNode(context.Background(), storage, bad)
	require.Error(t, err)
	require.Contains(t, err.Error(), "value count")
}

func TestNodeConstructionRejectsUnsortedInput(t *testing.T) {
	_, err := NewTerminalNode([]Entry{
		{Key: []byte("b"), Value: Uint64Value(1)},
		{Key: []byte("a"), Value: Uint64Value(2)},
	})
	var dupErr *DuplicateKeyError
	require.ErrorAs(t, err, &dupErr)

	_, err = NewTerminalNode([]Entry{
		{Key: []byte("a"), Value: Uint64Value(1)},
		{Key: []byte("a"), Value: Uint64Value(2)},
	})
	require.ErrorAs(t, err, &dupErr)

	_, err = NewIntermediateNode(nil, nil, []ChildEntry{
		inlined('b', terminalNode(t, []kv{{"x", 1}})),
		inlined('a', terminalNode(t, []kv{{"y", 2}})),
	})
	require.ErrorAs(t, err, &dupErr)
}

func TestIntermediateNodeCountOverReference(t *testing.T) {
	// A value count cannot be derived across a child reference.
	_, err := NewIntermediateNode(nil, nil, []ChildEntry{
		{Label: 'a', Child: NewChildID(NodeID{1, 2, 3})},
	})
	require.Error(t, err)

	// But a caller-supplied count is accepted.
	n, err := NewIntermediateNodeWithCount(nil, nil, 7, []ChildEntry{
		{Label: 'a', Child: NewChildID(NodeID{1, 2, 3})},
	})
	require.NoError(t, err)
	require.Equal(t, uint64(7), n.Size())
	require.False(t, n.IsEmpty())
}
