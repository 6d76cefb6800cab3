// CBOR helpers wrapping github.com/fxamacker/cbor/v2.
//
// 1. CBOR is encoded using Core Deterministic Encoding defined in
//    RFC 8949, which obsoletes Canonical CBOR defined in RFC 7049.
// 2. CBOR decoder detects and rejects duplicate map keys, which is
//    an important requirement in security sensitive applications.
//
// Deterministic encoding is a hard requirement here: content addressing
// only deduplicates correctly if structurally identical nodes always
// produce byte-identical encodings.
//
// Based on cbor.go.txt; for more info, see:
//   * github.com/fxamacker/cbor
//   * github.com/x448/safer-cbor
//
// Copyright © 2021 Montgomery Edwards⁴⁴⁸
// This file is provided under MIT License.
//
package shardedmap

import (
	"github.com/fxamacker/cbor/v2" // imports as cbor
)

// Place limits on number of array elements to improve security.
const MaxArrayElements = 2147483647
const MaxMapPairs = 2147483647

var (

	// encOptions specifies how CBOR should be encoded.
	encOptions = cbor.EncOptions{
		InfConvert:    cbor.InfConvertFloat16,
		IndefLength:   cbor.IndefLengthForbidden,
		NaNConvert:    cbor.NaNConvert7e00,
		ShortestFloat: cbor.ShortestFloat16,
		Sort:          cbor.SortCoreDeterministic,
		TagsMd:        cbor.TagsAllowed,
		Time:          cbor.TimeUnix,
	}

	// decOptions specifies how CBOR should be decoded.
	decOptions = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
		IndefLength:       cbor.IndefLengthForbidden,
		MaxArrayElements:  MaxArrayElements,
		MaxMapPairs:       MaxMapPairs,
		TagsMd:            cbor.TagsAllowed,
		TimeTag:           cbor.DecTagIgnored,
	}

	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = encOptions.EncMode(); err != nil {
		panic(err)
	}
	if decMode, err = decOptions.DecMode(); err != nil {
		panic(err)
	}
}

// DefaultEncMode returns the deterministic CBOR encoding mode used for
// canonical node encodings.
func DefaultEncMode() cbor.EncMode {
	return encMode
}

// DefaultDecMode returns the CBOR decoding mode matching DefaultEncMode.
func DefaultDecMode() cbor.DecMode {
	return decMode
}
