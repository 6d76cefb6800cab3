package shardedmap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelDBBlobStore(t *testing.T) {
	ctx := context.Background()

	s, err := OpenLevelDBBlobStore("")
	require.NoError(t, err)
	defer s.Close()

	_, found, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.Put(ctx, "k", []byte("v")))

	data, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, []byte("v"), data)
}

func TestLevelDBBlobStoreContextCancellation(t *testing.T) {
	s, err := OpenLevelDBBlobStore("")
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = s.Get(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)

	err = s.Put(ctx, "k", []byte("v"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestPersistReloadOverLevelDB(t *testing.T) {
	prevTerminal, prevInline := SetShardThresholds(8, 1)
	defer SetShardThresholds(prevTerminal, prevInline)

	ctx := context.Background()

	s, err := OpenLevelDBBlobStore(t.TempDir() + "/blobs")
	require.NoError(t, err)
	defer s.Close()

	storage := NewNodeStorage(s, DefaultEncMode(), DefaultDecMode(), DecodeValue)

	_, rootID, err := PersistNode(ctx, storage, exampleMap(t))
	require.NoError(t, err)

	fresh := NewNodeStorage(s, DefaultEncMode(), DefaultDecMode(), DecodeValue)
	root, err := fresh.RetrieveNode(ctx, rootID)
	require.NoError(t, err)
	require.Equal(t, uint64(11), root.Size())

	for _, e := range exampleEntries {
		v, found, err := Get(ctx, fresh, root, []byte(e.k))
		require.NoError(t, err)
		require.True(t, found, "key %q", e.k)
		require.Equal(t, Uint64Value(e.v), v)
	}
}
