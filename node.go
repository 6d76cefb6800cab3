package shardedmap

import (
	"bytes"
	"fmt"
)

// ShardedMapNode is one node of a content-addressed radix trie used to
// store very large key-value maps inside a blob store. A node is either
// an IntermediateNode (a compressed shared prefix with up to 256 children
// keyed by the next byte) or a TerminalNode (a small residual set of keys
// stored flat).
//
// Nodes are immutable once constructed. Producing an updated map always
// yields new nodes along the modified path, so a node already published
// to other readers is never changed and read-only traversal needs no
// synchronization.
type ShardedMapNode interface {
	// IsEmpty returns true iff the subtree rooted at this node holds
	// zero values.
	IsEmpty() bool

	// Size returns the total number of values in the subtree. For
	// intermediate nodes this is the cached count maintained at
	// construction time, never a re-traversal.
	Size() uint64

	// Encode writes the canonical encoding of this node to the encoder.
	Encode(enc *Encoder) error
}

// Entry is a single key-value pair held by a TerminalNode. Keys held by a
// terminal node are residual: every ancestor prefix and edge byte has
// already been stripped.
type Entry struct {
	Key   []byte
	Value Value
}

// ChildEntry binds a child subtree to the key byte that selects it.
type ChildEntry struct {
	Label byte
	Child MapChild
}

// TerminalNode stores a small residual set of keys flatly, sorted in
// ascending key order.
type TerminalNode struct {
	entries []Entry
}

var _ ShardedMapNode = &TerminalNode{}

// NewTerminalNode constructs a terminal node from entries sorted in
// strictly ascending key order.
func NewTerminalNode(entries []Entry) (*TerminalNode, error) {
	for i := 1; i < len(entries); i++ {
		if bytes.Compare(entries[i-1].Key, entries[i].Key) >= 0 {
			return nil, NewDuplicateKeyError(entries[i].Key)
		}
	}
	return &TerminalNode{entries: entries}, nil
}

func (n *TerminalNode) IsEmpty() bool {
	return len(n.entries) == 0
}

func (n *TerminalNode) Size() uint64 {
	return uint64(len(n.entries))
}

func (n *TerminalNode) String() string {
	return fmt.Sprintf("TerminalNode(%d entries)", len(n.entries))
}

// IntermediateNode represents a shared key prefix. An optional value is
// attached to the key that terminates exactly at this node, and children
// are keyed by the next byte of the key after the prefix is consumed.
type IntermediateNode struct {
	prefix     []byte
	value      Value // nil if no key terminates at this node
	valueCount uint64
	children   []ChildEntry // sorted by Label, unique
}

var _ ShardedMapNode = &IntermediateNode{}

// NewIntermediateNode constructs an intermediate node and computes its
// value count from the children. Every child must be inlined; use
// NewIntermediateNodeWithCount when children are references whose sizes
// are known from elsewhere.
func NewIntermediateNode(prefix []byte, value Value, children []ChildEntry) (*IntermediateNode, error) {
	count := uint64(0)
	if value != nil {
		count++
	}
	for _, c := range children {
		size, known := c.Child.size()
		if !known {
			return nil, NewEncodingError(fmt.Errorf("cannot compute value count over child reference %s", c.Child))
		}
		count += size
	}
	return NewIntermediateNodeWithCount(prefix, value, count, children)
}

// NewIntermediateNodeWithCount constructs an intermediate node with a
// caller-supplied value count. The count must equal the number of values
// reachable in the subtree, including the node's own value.
func NewIntermediateNodeWithCount(prefix []byte, value Value, valueCount uint64, children []ChildEntry) (*IntermediateNode, error) {
	for i := 1; i < len(children); i++ {
		if children[i-1].Label >= children[i].Label {
			return nil, NewDuplicateKeyError([]byte{children[i].Label})
		}
	}
	return &IntermediateNode{
		prefix:     prefix,
		value:      value,
		valueCount: valueCount,
		children:   children,
	}, nil
}

func (n *IntermediateNode) IsEmpty() bool {
	return n.valueCount == 0
}

func (n *IntermediateNode) Size() uint64 {
	return n.valueCount
}

func (n *IntermediateNode) String() string {
	return fmt.Sprintf("IntermediateNode(prefix %q, %d values, %d children)", n.prefix, n.valueCount, len(n.children))
}

// childByLabel returns the child selected by the given byte, if any.
func (n *IntermediateNode) childByLabel(label byte) (MapChild, bool) {
	lo, hi := 0, len(n.children)
	for lo < hi {
		mid := (lo + hi) / 2
		if n.children[mid].Label < label {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(n.children) && n.children[lo].Label == label {
		return n.children[lo].Child, true
	}
	return nil, false
}
