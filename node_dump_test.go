package shardedmap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDumpNodeHierarchy(t *testing.T) {
	lines := DumpNodeHierarchy(exampleMap(t))
	require.NotEmpty(t, lines)

	dump := strings.Join(lines, "\n")
	require.Contains(t, dump, `intermediate (prefix "", no value, 11 values, 2 children)`)
	require.Contains(t, dump, `intermediate (prefix "ba", no value, 7 values, 2 children)`)
	require.Contains(t, dump, `"miojo": 1`)

	// Referenced children are shown by ID, not fetched.
	id := ComputeNodeID([]byte("elsewhere"))
	node, err := NewIntermediateNodeWithCount(nil, nil, 3, []ChildEntry{
		{Label: 'k', Child: NewChildID(id)},
	})
	require.NoError(t, err)

	dump = strings.Join(DumpNodeHierarchy(node), "\n")
	require.Contains(t, dump, "id "+id.String())
}
