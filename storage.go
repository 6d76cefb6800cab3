package shardedmap

import (
	"context"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// BlobStore is the keyed byte-blob capability the sharded map is stored
// in. Keys are the canonical string form of node identifiers. Get returns
// found=false when no entry exists for the key; that is not an error.
//
// The store owns its own retry, timeout, and cancellation policy; the map
// never retries internally and propagates whatever outcome the store
// reports.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, data []byte) error
}

type BlobStoreUsageReporter interface {
	BytesRetrieved() int
	BytesStored() int
	BlobsReturned() int
	BlobsStored() int
	BlobsTouched() int
	ResetReporter()
}

// InMemBlobStore is a map-backed BlobStore that counts I/O, which lets
// tests assert that lazy traversal fetched only the blobs on the
// traversed path. Blob counters are per unique key, not per operation.
// Safe for concurrent use; materialization fetches sibling subtrees
// concurrently against the same store.
type InMemBlobStore struct {
	mu             sync.Mutex
	blobs          map[string][]byte
	bytesRetrieved int
	bytesStored    int
	blobsReturned  map[string]struct{}
	blobsStored    map[string]struct{}
	blobsTouched   map[string]struct{}
}

var _ BlobStore = &InMemBlobStore{}
var _ BlobStoreUsageReporter = &InMemBlobStore{}

func NewInMemBlobStore() *InMemBlobStore {
	return NewInMemBlobStoreFromMap(make(map[string][]byte))
}

func NewInMemBlobStoreFromMap(blobs map[string][]byte) *InMemBlobStore {
	return &InMemBlobStore{
		blobs:         blobs,
		blobsReturned: make(map[string]struct{}),
		blobsStored:   make(map[string]struct{}),
		blobsTouched:  make(map[string]struct{}),
	}
}

func (s *InMemBlobStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.blobs[key]
	s.bytesRetrieved += len(data)
	s.blobsReturned[key] = struct{}{}
	s.blobsTouched[key] = struct{}{}
	return data, ok, nil
}

func (s *InMemBlobStore) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[key] = data
	s.bytesStored += len(data)
	s.blobsStored[key] = struct{}{}
	s.blobsTouched[key] = struct{}{}
	return nil
}

func (s *InMemBlobStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

func (s *InMemBlobStore) BytesRetrieved() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bytesRetrieved
}

func (s *InMemBlobStore) BytesStored() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bytesStored
}

func (s *InMemBlobStore) BlobsReturned() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobsReturned)
}

func (s *InMemBlobStore) BlobsStored() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobsStored)
}

func (s *InMemBlobStore) BlobsTouched() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobsTouched)
}

func (s *InMemBlobStore) ResetReporter() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bytesRetrieved = 0
	s.bytesStored = 0
	s.blobsReturned = make(map[string]struct{})
	s.blobsStored = make(map[string]struct{})
	s.blobsTouched = make(map[string]struct{})
}

// NodeStorage couples a BlobStore with the CBOR modes and value decoder
// needed to move nodes across the storage boundary. Decoded nodes are
// cached by identifier; content addressing makes the cache trivially
// coherent because a given ID can only ever decode to one node.
type NodeStorage struct {
	baseStorage BlobStore
	encMode     cbor.EncMode
	decMode     cbor.DecMode
	decodeValue ValueDecoder

	mu    sync.RWMutex
	cache map[NodeID]ShardedMapNode
}

func NewNodeStorage(
	baseStorage BlobStore,
	encMode cbor.EncMode,
	decMode cbor.DecMode,
	decodeValue ValueDecoder,
) *NodeStorage {
	return &NodeStorage{
		baseStorage: baseStorage,
		encMode:     encMode,
		decMode:     decMode,
		decodeValue: decodeValue,
		cache:       make(map[NodeID]ShardedMapNode),
	}
}

// RetrieveNode fetches and decodes the node stored under the given
// identifier. It fails with BlobNotFoundError if the store has no entry
// for the key and with CorruptBlobError if the stored bytes do not
// decode, so callers can tell "not there" from "there but invalid".
func (s *NodeStorage) RetrieveNode(ctx context.Context, id NodeID) (ShardedMapNode, error) {
	s.mu.RLock()
	node, ok := s.cache[id]
	s.mu.RUnlock()
	if ok {
		return node, nil
	}

	key := id.StorageKey()

	data, found, err := s.baseStorage.Get(ctx, key)
	if err != nil {
		return nil, NewStorageError(err)
	}
	if !found {
		return nil, NewBlobNotFoundError(key)
	}

	node, err = DecodeNode(data, s.decMode, s.decodeValue)
	if err != nil {
		return nil, NewCorruptBlobError(key, err)
	}

	s.mu.Lock()
	s.cache[id] = node
	s.mu.Unlock()

	return node, nil
}

// StoreNode encodes the node, writes it under its content-derived key,
// and returns its identifier.
func (s *NodeStorage) StoreNode(ctx context.Context, node ShardedMapNode) (NodeID, error) {
	blob, err := ToBlob(node, s.encMode)
	if err != nil {
		// Don't need to wrap error as it is already categorized by ToBlob().
		return NodeIDUndefined, err
	}

	err = s.storeNodeBlob(ctx, blob, node)
	if err != nil {
		// Don't need to wrap error as it is already categorized by storeNodeBlob().
		return NodeIDUndefined, err
	}

	return blob.ID, nil
}

func (s *NodeStorage) storeNodeBlob(ctx context.Context, blob NodeBlob, node ShardedMapNode) error {
	err := s.baseStorage.Put(ctx, blob.ID.StorageKey(), blob.Data)
	if err != nil {
		return NewStorageError(err)
	}

	s.mu.Lock()
	s.cache[blob.ID] = node
	s.mu.Unlock()

	return nil
}

// DropCache discards all cached nodes. Subsequent retrievals go back to
// the underlying store.
func (s *NodeStorage) DropCache() {
	s.mu.Lock()
	s.cache = make(map[NodeID]ShardedMapNode)
	s.mu.Unlock()
}
