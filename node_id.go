package shardedmap

import (
	"encoding/hex"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"
)

const NodeIDLength = 32

// NodeID is the durable identifier of a node: the BLAKE3-256 digest of
// the node's canonical encoded bytes. Identical serialized bytes yield
// identical identifiers, so structurally identical subtrees anywhere in
// the system collapse to the same stored blob.
type NodeID [NodeIDLength]byte

var NodeIDUndefined = NodeID{}

// nodeIDKeyPrefix is the versioned scheme for the canonical text form of
// a node identifier, used as the blob store key. A future digest change
// introduces a new prefix rather than reinterpreting this one.
const nodeIDKeyPrefix = "shardedmapnode.blake3."

// ComputeNodeID derives the identifier of a node from its encoded bytes.
// It is a pure function of the bytes.
func ComputeNodeID(data []byte) NodeID {
	return NodeID(blake3.Sum256(data))
}

func NewNodeIDFromRawBytes(b []byte) (NodeID, error) {
	if len(b) != NodeIDLength {
		return NodeID{}, NewMalformedEncodingErrorf("incorrect node ID length %d", len(b))
	}

	var id NodeID
	copy(id[:], b)
	return id, nil
}

func (id NodeID) String() string {
	return hex.EncodeToString(id[:])
}

// StorageKey returns the canonical blob store key for this node ID.
func (id NodeID) StorageKey() string {
	return nodeIDKeyPrefix + hex.EncodeToString(id[:])
}

// NodeBlob is a node encoded and identified, ready to be written to the
// blob store under its storage key.
type NodeBlob struct {
	ID   NodeID
	Data []byte
}

// ToBlob encodes the node, computes its identifier over the encoded
// bytes, and returns both. This is the only path by which a node
// acquires a durable identifier.
func ToBlob(node ShardedMapNode, encMode cbor.EncMode) (NodeBlob, error) {
	data, err := EncodeNode(node, encMode)
	if err != nil {
		// Don't need to wrap error as it is already categorized by EncodeNode().
		return NodeBlob{}, err
	}

	return NodeBlob{
		ID:   ComputeNodeID(data),
		Data: data,
	}, nil
}
