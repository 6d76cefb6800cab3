package shardedmap

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func randEntries(r *rand.Rand, count int) []Entry {
	letters := []byte("abcdefgh")
	seen := make(map[string]struct{}, count)
	entries := make([]Entry, 0, count)
	for len(entries) < count {
		k := make([]byte, 1+r.Intn(10))
		for i := range k {
			k[i] = letters[r.Intn(len(letters))]
		}
		if _, ok := seen[string(k)]; ok {
			continue
		}
		seen[string(k)] = struct{}{}
		entries = append(entries, Entry{Key: k, Value: Uint64Value(uint64(len(entries)))})
	}
	return entries
}

func TestBuildNode(t *testing.T) {
	ctx := context.Background()
	r := rand.New(rand.NewSource(42))

	for _, count := range []int{0, 1, 8, 9, 100, 2000} {
		t.Run(fmt.Sprintf("%d entries", count), func(t *testing.T) {
			entries := randEntries(r, count)

			root, err := BuildNode(entries)
			require.NoError(t, err)
			require.Equal(t, uint64(count), root.Size())
			require.Equal(t, count == 0, root.IsEmpty())

			_, storage := newTestStorage()
			require.NoError(t, VerifyNode(ctx, storage, root))

			for _, e := range entries {
				v, found, err := Get(ctx, storage, root, e.Key)
				require.NoError(t, err)
				require.True(t, found, "key %q", e.Key)
				require.Equal(t, e.Value, v)
			}

			_, found, err := Get(ctx, storage, root, []byte("zzzz"))
			require.NoError(t, err)
			require.False(t, found)

			assertRoundTrip(t, root)
		})
	}
}

func TestBuildNodeRejectsDuplicates(t *testing.T) {
	_, err := BuildNode([]Entry{
		{Key: []byte("same"), Value: Uint64Value(1)},
		{Key: []byte("same"), Value: Uint64Value(2)},
	})
	var dupErr *DuplicateKeyError
	require.ErrorAs(t, err, &dupErr)
}

func TestBuildNodeKeyOnPrefixBoundary(t *testing.T) {
	// One key is a strict prefix of all others, so it must land as the
	// value of an intermediate node once the shard threshold is passed.
	prevTerminal, prevInline := SetShardThresholds(2, 1)
	defer SetShardThresholds(prevTerminal, prevInline)

	entries := []Entry{
		{Key: []byte("ab"), Value: Uint64Value(0)},
		{Key: []byte("aba"), Value: Uint64Value(1)},
		{Key: []byte("abb"), Value: Uint64Value(2)},
		{Key: []byte("abc"), Value: Uint64Value(3)},
	}

	root, err := BuildNode(entries)
	require.NoError(t, err)
	require.Equal(t, uint64(4), root.Size())

	inter, ok := root.(*IntermediateNode)
	require.True(t, ok)
	require.Equal(t, []byte("ab"), inter.prefix)
	require.Equal(t, Uint64Value(0), inter.value)

	ctx := context.Background()
	_, storage := newTestStorage()
	require.NoError(t, VerifyNode(ctx, storage, root))

	for _, e := range entries {
		v, found, err := Get(ctx, storage, root, e.Key)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, e.Value, v)
	}
}

func TestBuildPersistReload(t *testing.T) {
	prevTerminal, prevInline := SetShardThresholds(4, 64)
	defer SetShardThresholds(prevTerminal, prevInline)

	ctx := context.Background()
	r := rand.New(rand.NewSource(7))
	entries := randEntries(r, 500)

	root, err := BuildNode(entries)
	require.NoError(t, err)

	base, storage := newTestStorage()

	persisted, rootID, err := PersistNode(ctx, storage, root)
	require.NoError(t, err)
	require.Equal(t, root.Size(), persisted.Size())

	// Read the map back through a fresh storage so every reference is
	// actually fetched and decoded.
	fresh := NewNodeStorage(base, DefaultEncMode(), DefaultDecMode(), DecodeValue)

	reloaded, err := fresh.RetrieveNode(ctx, rootID)
	require.NoError(t, err)
	require.Equal(t, root.Size(), reloaded.Size())
	require.NoError(t, VerifyNode(ctx, fresh, reloaded))

	for _, e := range entries {
		v, found, err := Get(ctx, fresh, reloaded, e.Key)
		require.NoError(t, err)
		require.True(t, found, "key %q", e.Key)
		require.Equal(t, e.Value, v)
	}
}
