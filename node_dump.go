package shardedmap

import (
	"fmt"
	"strings"
)

// DumpNodeHierarchy returns a human readable rendering of the node graph
// held in memory, one line per node. Referenced children are shown by
// identifier without fetching them.
func DumpNodeHierarchy(node ShardedMapNode) []string {
	var lines []string
	dumpNode(node, 0, &lines)
	return lines
}

func dumpNode(node ShardedMapNode, level int, lines *[]string) {
	indent := strings.Repeat("  ", level)

	switch n := node.(type) {
	case *TerminalNode:
		*lines = append(*lines, fmt.Sprintf("%sterminal (%d entries)", indent, len(n.entries)))
		for _, e := range n.entries {
			*lines = append(*lines, fmt.Sprintf("%s  %q: %v", indent, e.Key, e.Value))
		}

	case *IntermediateNode:
		valueDesc := "no value"
		if n.value != nil {
			valueDesc = fmt.Sprintf("value %v", n.value)
		}
		*lines = append(*lines, fmt.Sprintf(
			"%sintermediate (prefix %q, %s, %d values, %d children)",
			indent, n.prefix, valueDesc, n.valueCount, len(n.children),
		))

		for _, c := range n.children {
			switch child := c.Child.(type) {
			case ChildInlined:
				*lines = append(*lines, fmt.Sprintf("%s  %q ->", indent, string(c.Label)))
				dumpNode(child.node, level+2, lines)
			case ChildID:
				*lines = append(*lines, fmt.Sprintf("%s  %q -> id %s", indent, string(c.Label), child.id))
			}
		}

	default:
		*lines = append(*lines, fmt.Sprintf("%sunexpected node type %T", indent, node))
	}
}
