package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	shardedmap "github.com/scmbase/shardedmap"
)

var letters = []byte("abcdefghijklmnopqrstuvwxyz")

func randKey(r *rand.Rand, n int) []byte {
	k := make([]byte, n)
	for i := range k {
		k[i] = letters[r.Intn(len(letters))]
	}
	return k
}

func die(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	var count int
	var path string
	var seed int64
	var verbose bool

	flag.IntVar(&count, "count", 1000, "number of entries to insert")
	flag.StringVar(&path, "db", "", "LevelDB path (empty for in-memory)")
	flag.Int64Var(&seed, "seed", 1, "random seed")
	flag.BoolVar(&verbose, "verbose", false, "dump the node hierarchy")
	flag.Parse()

	ctx := context.Background()
	r := rand.New(rand.NewSource(seed))

	entries := make([]shardedmap.Entry, 0, count)
	seen := make(map[string]struct{}, count)
	for len(entries) < count {
		k := randKey(r, 3+r.Intn(12))
		if _, ok := seen[string(k)]; ok {
			continue
		}
		seen[string(k)] = struct{}{}
		entries = append(entries, shardedmap.Entry{
			Key:   k,
			Value: shardedmap.Uint64Value(uint64(len(entries))),
		})
	}

	root, err := shardedmap.BuildNode(entries)
	die(err)

	store, err := shardedmap.OpenLevelDBBlobStore(path)
	die(err)
	defer store.Close()

	storage := shardedmap.NewNodeStorage(
		store,
		shardedmap.DefaultEncMode(),
		shardedmap.DefaultDecMode(),
		shardedmap.DecodeValue,
	)

	persisted, id, err := shardedmap.PersistNode(ctx, storage, root)
	die(err)

	fmt.Printf("stored %d entries, root %s\n", persisted.Size(), id.StorageKey())

	if verbose {
		fmt.Printf("\n=========== node hierarchy ===========\n")
		for _, line := range shardedmap.DumpNodeHierarchy(persisted) {
			fmt.Println(line)
		}
	}

	// Read the map back through a fresh storage so every referenced
	// subtree is fetched and decoded rather than served from cache.
	fresh := shardedmap.NewNodeStorage(
		store,
		shardedmap.DefaultEncMode(),
		shardedmap.DefaultDecMode(),
		shardedmap.DecodeValue,
	)

	reloaded, err := fresh.RetrieveNode(ctx, id)
	die(err)

	err = shardedmap.VerifyNode(ctx, fresh, reloaded)
	die(err)

	for i := 0; i < 20 && len(entries) > 0; i++ {
		e := entries[r.Intn(len(entries))]
		v, found, err := shardedmap.Get(ctx, fresh, reloaded, e.Key)
		die(err)
		if !found || v != e.Value {
			die(fmt.Errorf("lookup of %q returned %v (found %t), want %v", e.Key, v, found, e.Value))
		}
	}

	fmt.Println("ok")
}
