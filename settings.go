package shardedmap

var (
	// A subtree with at most this many values is stored flat as a
	// terminal node instead of further trie levels.
	maxTerminalShardSize = uint64(8)

	// A child whose encoding is at most this many bytes stays inlined
	// in its parent when the map is persisted; larger children become
	// separately stored blobs referenced by ID.
	maxInlineNodeSize = uint64(256)
)

// SetShardThresholds tunes the terminal shard size and the inline size
// limit, returning the previous values. It is not safe to call
// concurrently with map construction.
func SetShardThresholds(terminalSize, inlineSize uint64) (uint64, uint64) {
	prevTerminal, prevInline := maxTerminalShardSize, maxInlineNodeSize
	maxTerminalShardSize = terminalSize
	maxInlineNodeSize = inlineSize
	return prevTerminal, prevInline
}
