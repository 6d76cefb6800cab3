package shardedmap

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Built-in value types. Callers with richer payloads supply their own
// Value implementation and ValueDecoder; these two cover the common cases
// of small integer indexes and opaque byte payloads (e.g. child object
// identifiers in a manifest listing).

// Uint64Value is a value holding a single unsigned integer.
type Uint64Value uint64

var _ Value = Uint64Value(0)

// Encode encodes Uint64Value as
//
//	cbor.Tag{Number: CBORTagUint64Value, Content: uint64(v)}
func (v Uint64Value) Encode(enc *Encoder) error {
	err := enc.CBOR.EncodeRawBytes([]byte{
		// tag number
		0xd8, CBORTagUint64Value,
	})
	if err != nil {
		return NewEncodingError(err)
	}

	err = enc.CBOR.EncodeUint64(uint64(v))
	if err != nil {
		return NewEncodingError(err)
	}

	return nil
}

func (v Uint64Value) String() string {
	return fmt.Sprintf("%d", uint64(v))
}

// BytesValue is a value holding an opaque byte payload.
type BytesValue []byte

var _ Value = BytesValue(nil)

// Encode encodes BytesValue as
//
//	cbor.Tag{Number: CBORTagBytesValue, Content: []byte(v)}
func (v BytesValue) Encode(enc *Encoder) error {
	err := enc.CBOR.EncodeRawBytes([]byte{
		// tag number
		0xd8, CBORTagBytesValue,
	})
	if err != nil {
		return NewEncodingError(err)
	}

	err = enc.CBOR.EncodeBytes(nonNilBytes(v))
	if err != nil {
		return NewEncodingError(err)
	}

	return nil
}

func (v BytesValue) String() string {
	return fmt.Sprintf("%x", []byte(v))
}

// DecodeValue decodes the built-in value types. It is the ValueDecoder to
// pass to NewNodeStorage when a map stores only Uint64Value or BytesValue
// payloads.
func DecodeValue(dec *cbor.StreamDecoder) (Value, error) {
	tagNumber, err := dec.DecodeTagNumber()
	if err != nil {
		return nil, NewMalformedEncodingError(err)
	}

	switch tagNumber {
	case CBORTagUint64Value:
		n, err := dec.DecodeUint64()
		if err != nil {
			return nil, NewMalformedEncodingError(err)
		}
		return Uint64Value(n), nil

	case CBORTagBytesValue:
		b, err := dec.DecodeBytes()
		if err != nil {
			return nil, NewMalformedEncodingError(err)
		}
		return BytesValue(b), nil

	default:
		return nil, NewMalformedEncodingErrorf("unknown value tag number %d", tagNumber)
	}
}
