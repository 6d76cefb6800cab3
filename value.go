package shardedmap

import (
	"github.com/fxamacker/cbor/v2"
)

// Value is the payload type stored in a sharded map. The trie is agnostic
// to its semantics; it only requires a deterministic, self-delimiting
// encoding so that structurally identical maps produce byte-identical
// node encodings.
//
// Implementations must be safe for concurrent read-only use, since node
// graphs are shared across readers.
type Value interface {
	// Encode writes the value's canonical encoding to the encoder's
	// CBOR stream.
	Encode(enc *Encoder) error
}

// ValueDecoder decodes a single value from a CBOR stream. It must reject
// malformed bytes rather than produce a default value.
type ValueDecoder func(dec *cbor.StreamDecoder) (Value, error)
