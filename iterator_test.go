package shardedmap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func collectEntries(t *testing.T, storage *NodeStorage, node ShardedMapNode) []kv {
	var got []kv
	err := IterateNode(context.Background(), storage, node, func(key []byte, value Value) error {
		got = append(got, kv{k: string(key), v: uint64(value.(Uint64Value))})
		return nil
	})
	require.NoError(t, err)
	return got
}

func TestIterateExampleMap(t *testing.T) {
	_, storage := newTestStorage()

	// Iteration reconstructs full keys from prefixes, edge bytes, and
	// residual terminal keys, in ascending key order.
	require.Equal(t, exampleEntries, collectEntries(t, storage, exampleMap(t)))
}

func TestIterateWithValueAtIntermediateNode(t *testing.T) {
	leaf := terminalNode(t, []kv{{"y", 2}})
	root := intermediateNode(t, "ab", Uint64Value(1), inlined('x', leaf))

	_, storage := newTestStorage()
	require.Equal(t, []kv{{"ab", 1}, {"abxy", 2}}, collectEntries(t, storage, root))
}

func TestIteratePersistedMap(t *testing.T) {
	prevTerminal, prevInline := SetShardThresholds(8, 1)
	defer SetShardThresholds(prevTerminal, prevInline)

	ctx := context.Background()
	base, storage := newTestStorage()

	_, rootID, err := PersistNode(ctx, storage, exampleMap(t))
	require.NoError(t, err)

	fresh := NewNodeStorage(base, DefaultEncMode(), DefaultDecMode(), DecodeValue)
	root, err := fresh.RetrieveNode(ctx, rootID)
	require.NoError(t, err)

	require.Equal(t, exampleEntries, collectEntries(t, fresh, root))
}

func TestIterateStopsOnCallbackError(t *testing.T) {
	_, storage := newTestStorage()
	stop := errors.New("stop")

	calls := 0
	err := IterateNode(context.Background(), storage, exampleMap(t), func(key []byte, value Value) error {
		calls++
		if calls == 3 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 3, calls)
}
