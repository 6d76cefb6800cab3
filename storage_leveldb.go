package shardedmap

import (
	"context"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	leveldbstorage "github.com/syndtr/goleveldb/leveldb/storage"
)

// LevelDBBlobStore is a BlobStore backed by LevelDB. It is the simplest
// durable backend for a single-host deployment; larger deployments plug
// in their own BlobStore over whatever blob service they run.
// Thread-safe: LevelDB handles its own synchronization.
type LevelDBBlobStore struct {
	db *leveldb.DB
}

var _ BlobStore = &LevelDBBlobStore{}

// OpenLevelDBBlobStore opens or creates a LevelDB database at the given
// path. If path is empty, an in-memory backend is used.
func OpenLevelDBBlobStore(path string) (*LevelDBBlobStore, error) {
	var db *leveldb.DB
	var err error

	if path == "" {
		db, err = leveldb.Open(leveldbstorage.NewMemStorage(), nil)
	} else {
		db, err = leveldb.OpenFile(path, nil)
	}

	if err != nil {
		return nil, NewStorageError(fmt.Errorf("failed to open database at %q: %w", path, err))
	}

	return &LevelDBBlobStore{db: db}, nil
}

func (s *LevelDBBlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, err := s.db.Get([]byte(key), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, NewStorageError(fmt.Errorf("get %s: %w", key, err))
	}
	return data, true, nil
}

func (s *LevelDBBlobStore) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Put([]byte(key), data, nil)
	if err != nil {
		return NewStorageError(fmt.Errorf("put %s: %w", key, err))
	}
	return nil
}

func (s *LevelDBBlobStore) Close() error {
	return s.db.Close()
}
