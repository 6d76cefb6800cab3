package shardedmap

import "fmt"

type nodeType int

const (
	nodeTypeUndefined nodeType = iota
	nodeIntermediate
	nodeTerminal
)

// Version and flag masks for the 1st byte of an encoded node.
const (
	maskVersion byte = 0b1111_0000
	// low 4 bits of the 1st byte are reserved and must be zero
)

// Flag masks for the 2nd byte of an encoded node.
const (
	maskNodeIntermediate byte = 0b0000_0001
	maskNodeTerminal     byte = 0b0000_0010

	// maskNodeHasValue is only valid on an intermediate node and marks
	// that a value is attached to the key terminating at this node.
	maskNodeHasValue byte = 0b0000_0100
)

const (
	encodingVersion = 1
	maxVersion      = 0b0000_1111
)

type head [2]byte

// newNodeHead returns a node head of given version and node type.
func newNodeHead(version byte, t nodeType) (head, error) {
	if version > maxVersion {
		return head{}, fmt.Errorf("encoding version must be less than %d, got %d", maxVersion+1, version)
	}

	var h head

	h[0] = version << 4

	switch t {
	case nodeIntermediate:
		h[1] = maskNodeIntermediate

	case nodeTerminal:
		h[1] = maskNodeTerminal

	default:
		return head{}, fmt.Errorf("unsupported node type %d", t)
	}

	return h, nil
}

func newHeadFromData(data []byte) (head, error) {
	if len(data) != versionAndFlagSize {
		return head{}, fmt.Errorf("head must be %d bytes, got %d bytes", versionAndFlagSize, len(data))
	}

	h := head{data[0], data[1]}

	if h[0]&^maskVersion != 0 {
		return head{}, fmt.Errorf("head has nonzero reserved bits 0x%x", h[0])
	}

	switch h[1] &^ maskNodeHasValue {
	case maskNodeIntermediate:
		// ok

	case maskNodeTerminal:
		if h.hasValue() {
			return head{}, fmt.Errorf("terminal node head 0x%x cannot carry the has-value flag", h[1])
		}

	default:
		return head{}, fmt.Errorf("head has invalid flag 0x%x", h[1])
	}

	return h, nil
}

func (h head) version() byte {
	return (h[0] & maskVersion) >> 4
}

func (h head) getNodeType() nodeType {
	if h[1]&maskNodeIntermediate != 0 {
		return nodeIntermediate
	}
	if h[1]&maskNodeTerminal != 0 {
		return nodeTerminal
	}
	return nodeTypeUndefined
}

func (h *head) setHasValue() {
	h[1] |= maskNodeHasValue
}

func (h head) hasValue() bool {
	return h[1]&maskNodeHasValue != 0
}
