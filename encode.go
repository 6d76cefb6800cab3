package shardedmap

import (
	"bytes"
	"io"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

const versionAndFlagSize = 2

// Encoder writes sharded map nodes to an io.Writer.
type Encoder struct {
	io.Writer
	CBOR    *cbor.StreamEncoder
	encMode cbor.EncMode
}

func NewEncoder(w io.Writer, encMode cbor.EncMode) *Encoder {
	streamEncoder := encMode.NewStreamEncoder(w)
	return &Encoder{
		Writer:  w,
		CBOR:    streamEncoder,
		encMode: encMode,
	}
}

// nonNilBytes returns b, or an empty slice when b is nil. A nil slice
// would encode as CBOR null instead of a zero-length byte string, which
// the decoder rejects.
func nonNilBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

var bufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}

// EncodeNode returns the canonical encoding of the given node:
//
//	+-------------------------------+---------------------+
//	| node version + flag (2 bytes) | CBOR encoded fields |
//	+-------------------------------+---------------------+
//
// Structurally identical nodes always produce byte-identical encodings,
// which is the precondition for content addressing to deduplicate
// identical subtrees.
func EncodeNode(node ShardedMapNode, encMode cbor.EncMode) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	enc := NewEncoder(buf, encMode)

	err := node.Encode(enc)
	if err != nil {
		// Don't need to wrap error as it is already categorized by Encode().
		return nil, err
	}

	data := make([]byte, buf.Len())
	copy(data, buf.Bytes())
	return data, nil
}

// DecodeNode decodes the canonical encoding produced by EncodeNode. It
// fails with MalformedEncodingError if the head is unrecognized, the
// stream is truncated or has trailing bytes, canonical ordering is
// broken, or an embedded value fails its own decode.
func DecodeNode(data []byte, decMode cbor.DecMode, decodeValue ValueDecoder) (ShardedMapNode, error) {
	if len(data) < versionAndFlagSize {
		return nil, NewMalformedEncodingErrorf("data is too short for a node")
	}

	h, err := newHeadFromData(data[:versionAndFlagSize])
	if err != nil {
		return nil, NewMalformedEncodingError(err)
	}

	if h.version() != encodingVersion {
		return nil, NewMalformedEncodingErrorf("unexpected encoding version %d", h.version())
	}

	data = data[versionAndFlagSize:]

	switch h.getNodeType() {
	case nodeIntermediate:
		return newIntermediateNodeFromData(h, data, decMode, decodeValue)

	case nodeTerminal:
		return newTerminalNodeFromData(h, data, decMode, decodeValue)

	default:
		return nil, NewMalformedEncodingErrorf("head has invalid node type flag 0x%x", h[1])
	}
}
