package shardedmap

// Encode encodes this terminal node to the given encoder.
//
// Header:
//
//	+-------------------------------+
//	| node version + flag (2 bytes) |
//	+-------------------------------+
//
// Content (CBOR):
//
//	array of entries, each a 2-element array [key bytes, value],
//	in strictly ascending key order
func (n *TerminalNode) Encode(enc *Encoder) error {
	h, err := newNodeHead(encodingVersion, nodeTerminal)
	if err != nil {
		return NewEncodingError(err)
	}

	_, err = enc.Write(h[:])
	if err != nil {
		return NewEncodingError(err)
	}

	err = enc.CBOR.EncodeArrayHead(uint64(len(n.entries)))
	if err != nil {
		return NewEncodingError(err)
	}

	for _, e := range n.entries {
		// array head of 2 elements
		err = enc.CBOR.EncodeRawBytes([]byte{0x82})
		if err != nil {
			return NewEncodingError(err)
		}

		err = enc.CBOR.EncodeBytes(nonNilBytes(e.Key))
		if err != nil {
			return NewEncodingError(err)
		}

		err = e.Value.Encode(enc)
		if err != nil {
			// Don't need to wrap error as it is already categorized by Value.Encode().
			return err
		}
	}

	err = enc.CBOR.Flush()
	if err != nil {
		return NewEncodingError(err)
	}

	return nil
}

// Encode encodes this intermediate node to the given encoder.
//
// Header:
//
//	+-------------------------------+
//	| node version + flag (2 bytes) |
//	+-------------------------------+
//
// Content (CBOR), a 3-element array (4 if the has-value flag is set):
//
//	element 0: prefix bytes
//	element 1: value count
//	element 2: children, each a 2-element array [key byte, child],
//	           in strictly ascending byte order
//	element 3: value (only if the has-value flag is set)
//
// A child is either a tagged node ID (CBORTagNodeID over the raw ID
// bytes) or a tagged inlined node (CBORTagInlinedNode over the child's
// complete encoding as a byte string).
func (n *IntermediateNode) Encode(enc *Encoder) error {
	h, err := newNodeHead(encodingVersion, nodeIntermediate)
	if err != nil {
		return NewEncodingError(err)
	}

	fieldCount := uint64(3)
	if n.value != nil {
		h.setHasValue()
		fieldCount = 4
	}

	_, err = enc.Write(h[:])
	if err != nil {
		return NewEncodingError(err)
	}

	err = enc.CBOR.EncodeArrayHead(fieldCount)
	if err != nil {
		return NewEncodingError(err)
	}

	err = enc.CBOR.EncodeBytes(nonNilBytes(n.prefix))
	if err != nil {
		return NewEncodingError(err)
	}

	err = enc.CBOR.EncodeUint64(n.valueCount)
	if err != nil {
		return NewEncodingError(err)
	}

	err = enc.CBOR.EncodeArrayHead(uint64(len(n.children)))
	if err != nil {
		return NewEncodingError(err)
	}

	for _, c := range n.children {
		// array head of 2 elements
		err = enc.CBOR.EncodeRawBytes([]byte{0x82})
		if err != nil {
			return NewEncodingError(err)
		}

		err = enc.CBOR.EncodeUint64(uint64(c.Label))
		if err != nil {
			return NewEncodingError(err)
		}

		err = c.Child.encodeChild(enc)
		if err != nil {
			// Don't need to wrap error as it is already categorized by encodeChild().
			return err
		}
	}

	if n.value != nil {
		err = n.value.Encode(enc)
		if err != nil {
			// Don't need to wrap error as it is already categorized by Value.Encode().
			return err
		}
	}

	err = enc.CBOR.Flush()
	if err != nil {
		return NewEncodingError(err)
	}

	return nil
}

func (c ChildID) encodeChild(enc *Encoder) error {
	err := enc.CBOR.EncodeRawBytes([]byte{
		// tag number
		0xd8, CBORTagNodeID,
	})
	if err != nil {
		return NewEncodingError(err)
	}

	err = enc.CBOR.EncodeBytes(c.id[:])
	if err != nil {
		return NewEncodingError(err)
	}

	return nil
}

func (c ChildInlined) encodeChild(enc *Encoder) error {
	// The inlined child is nested as a byte string holding its own
	// complete encoding, so the outer stream stays self-delimiting.
	data, err := EncodeNode(c.node, enc.encMode)
	if err != nil {
		// Don't need to wrap error as it is already categorized by EncodeNode().
		return err
	}

	err = enc.CBOR.EncodeRawBytes([]byte{
		// tag number
		0xd8, CBORTagInlinedNode,
	})
	if err != nil {
		return NewEncodingError(err)
	}

	err = enc.CBOR.EncodeBytes(data)
	if err != nil {
		return NewEncodingError(err)
	}

	return nil
}
