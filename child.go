package shardedmap

import (
	"context"
	"fmt"
)

// MapChild is a reference to a subtree held by an IntermediateNode.
// Exactly two variants exist: ChildInlined embeds the subtree directly,
// ChildID refers to a node stored elsewhere in the blob store under its
// content-derived identifier. Modeling the distinction as a closed sum
// keeps pattern matches exhaustive instead of hiding it in a nullable
// pointer.
type MapChild interface {
	// Resolve returns the concrete node for this child, fetching and
	// decoding it from storage only when the child is a reference.
	Resolve(ctx context.Context, storage *NodeStorage) (ShardedMapNode, error)

	// size returns the subtree's value count if it is knowable without
	// I/O, i.e. when the child is inlined.
	size() (uint64, bool)

	encodeChild(enc *Encoder) error

	fmt.Stringer
}

// ChildInlined embeds a subtree directly in its parent's encoding, so no
// extra blob store round trip is needed to traverse it.
type ChildInlined struct {
	node ShardedMapNode
}

var _ MapChild = ChildInlined{}

func NewChildInlined(node ShardedMapNode) ChildInlined {
	return ChildInlined{node: node}
}

func (c ChildInlined) Resolve(_ context.Context, _ *NodeStorage) (ShardedMapNode, error) {
	return c.node, nil
}

func (c ChildInlined) size() (uint64, bool) {
	return c.node.Size(), true
}

func (c ChildInlined) String() string {
	return fmt.Sprintf("inlined %s", c.node)
}

// ChildID refers to a subtree stored under a content-derived identifier.
// Traversing it requires a point fetch against the blob store.
type ChildID struct {
	id NodeID
}

var _ MapChild = ChildID{}

func NewChildID(id NodeID) ChildID {
	return ChildID{id: id}
}

// ID returns the referenced node identifier.
func (c ChildID) ID() NodeID {
	return c.id
}

func (c ChildID) Resolve(ctx context.Context, storage *NodeStorage) (ShardedMapNode, error) {
	return storage.RetrieveNode(ctx, c.id)
}

func (c ChildID) size() (uint64, bool) {
	return 0, false
}

func (c ChildID) String() string {
	return fmt.Sprintf("id %s", c.id)
}
