package shardedmap

import (
	"bytes"

	"github.com/fxamacker/cbor/v2"
)

const (
	terminalEntryArrayCount     = 2
	intermediateChildArrayCount = 2
	intermediateFieldCount      = 3
	maxChildCount               = 256
)

// newTerminalNodeFromData decodes the content of a terminal node. See
// TerminalNode.Encode() for the encoding.
func newTerminalNodeFromData(
	_ head,
	data []byte,
	decMode cbor.DecMode,
	decodeValue ValueDecoder,
) (
	*TerminalNode,
	error,
) {
	dec := decMode.NewByteStreamDecoder(data)

	entryCount, err := dec.DecodeArrayHead()
	if err != nil {
		return nil, NewMalformedEncodingError(err)
	}

	entries := make([]Entry, 0, entryCount)
	var prevKey []byte
	for i := uint64(0); i < entryCount; i++ {
		pairCount, err := dec.DecodeArrayHead()
		if err != nil {
			return nil, NewMalformedEncodingError(err)
		}
		if pairCount != terminalEntryArrayCount {
			return nil, NewMalformedEncodingErrorf(
				"terminal entry must be an array of %d elements, got %d",
				terminalEntryArrayCount,
				pairCount,
			)
		}

		key, err := dec.DecodeBytes()
		if err != nil {
			return nil, NewMalformedEncodingError(err)
		}

		// Reject non-canonical encodings: keys must be strictly ascending.
		if i > 0 && bytes.Compare(prevKey, key) >= 0 {
			return nil, NewMalformedEncodingErrorf("terminal keys out of order at %q", key)
		}
		prevKey = key

		value, err := decodeValue(dec)
		if err != nil {
			return nil, NewMalformedEncodingErrorf("failed to decode value for key %q: %s", key, err)
		}

		entries = append(entries, Entry{Key: key, Value: value})
	}

	if dec.NumBytesDecoded() != len(data) {
		return nil, NewMalformedEncodingErrorf(
			"%d trailing bytes after terminal node",
			len(data)-dec.NumBytesDecoded(),
		)
	}

	return &TerminalNode{entries: entries}, nil
}

// newIntermediateNodeFromData decodes the content of an intermediate
// node. See IntermediateNode.Encode() for the encoding.
func newIntermediateNodeFromData(
	h head,
	data []byte,
	decMode cbor.DecMode,
	decodeValue ValueDecoder,
) (
	*IntermediateNode,
	error,
) {
	dec := decMode.NewByteStreamDecoder(data)

	wantFieldCount := uint64(intermediateFieldCount)
	if h.hasValue() {
		wantFieldCount++
	}

	fieldCount, err := dec.DecodeArrayHead()
	if err != nil {
		return nil, NewMalformedEncodingError(err)
	}
	if fieldCount != wantFieldCount {
		return nil, NewMalformedEncodingErrorf(
			"intermediate node must be an array of %d elements, got %d",
			wantFieldCount,
			fieldCount,
		)
	}

	// element 0: prefix
	prefix, err := dec.DecodeBytes()
	if err != nil {
		return nil, NewMalformedEncodingError(err)
	}

	// element 1: value count
	valueCount, err := dec.DecodeUint64()
	if err != nil {
		return nil, NewMalformedEncodingError(err)
	}

	// element 2: children
	childCount, err := dec.DecodeArrayHead()
	if err != nil {
		return nil, NewMalformedEncodingError(err)
	}
	if childCount > maxChildCount {
		return nil, NewMalformedEncodingErrorf("child count %d exceeds %d", childCount, maxChildCount)
	}

	children := make([]ChildEntry, 0, childCount)
	prevLabel := -1
	for i := uint64(0); i < childCount; i++ {
		pairCount, err := dec.DecodeArrayHead()
		if err != nil {
			return nil, NewMalformedEncodingError(err)
		}
		if pairCount != intermediateChildArrayCount {
			return nil, NewMalformedEncodingErrorf(
				"child must be an array of %d elements, got %d",
				intermediateChildArrayCount,
				pairCount,
			)
		}

		label, err := dec.DecodeUint64()
		if err != nil {
			return nil, NewMalformedEncodingError(err)
		}
		if label > 0xff {
			return nil, NewMalformedEncodingErrorf("child key byte %d out of range", label)
		}

		// Reject non-canonical encodings: child bytes must be strictly
		// ascending, which also enforces uniqueness.
		if int(label) <= prevLabel {
			return nil, NewMalformedEncodingErrorf("child key bytes out of order at %d", label)
		}
		prevLabel = int(label)

		child, err := decodeChild(dec, decMode, decodeValue)
		if err != nil {
			// Don't need to wrap error as it is already categorized by decodeChild().
			return nil, err
		}

		children = append(children, ChildEntry{Label: byte(label), Child: child})
	}

	// element 3: value, present iff the has-value flag is set
	var value Value
	if h.hasValue() {
		value, err = decodeValue(dec)
		if err != nil {
			return nil, NewMalformedEncodingErrorf("failed to decode node value: %s", err)
		}
	}

	if dec.NumBytesDecoded() != len(data) {
		return nil, NewMalformedEncodingErrorf(
			"%d trailing bytes after intermediate node",
			len(data)-dec.NumBytesDecoded(),
		)
	}

	return &IntermediateNode{
		prefix:     prefix,
		value:      value,
		valueCount: valueCount,
		children:   children,
	}, nil
}

func decodeChild(dec *cbor.StreamDecoder, decMode cbor.DecMode, decodeValue ValueDecoder) (MapChild, error) {
	tagNumber, err := dec.DecodeTagNumber()
	if err != nil {
		return nil, NewMalformedEncodingError(err)
	}

	switch tagNumber {
	case CBORTagNodeID:
		b, err := dec.DecodeBytes()
		if err != nil {
			return nil, NewMalformedEncodingError(err)
		}
		id, err := NewNodeIDFromRawBytes(b)
		if err != nil {
			// Don't need to wrap error as it is already categorized by NewNodeIDFromRawBytes().
			return nil, err
		}
		return ChildID{id: id}, nil

	case CBORTagInlinedNode:
		b, err := dec.DecodeBytes()
		if err != nil {
			return nil, NewMalformedEncodingError(err)
		}
		node, err := DecodeNode(b, decMode, decodeValue)
		if err != nil {
			// Don't need to wrap error as it is already categorized by DecodeNode().
			return nil, err
		}
		return ChildInlined{node: node}, nil

	default:
		return nil, NewMalformedEncodingErrorf("unknown child tag number %d", tagNumber)
	}
}
