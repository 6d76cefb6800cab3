package shardedmap

// CBOR tag numbers used by the sharded map encoding. Tag numbers in the
// 240-255 range are reserved here and must not be reused for new types
// without bumping the encoding version.
const (
	// Child variants inside an intermediate node.
	CBORTagNodeID      = 240
	CBORTagInlinedNode = 241

	// Built-in value types.
	CBORTagUint64Value = 242
	CBORTagBytesValue  = 243
)
