package deptree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorParsesCommandOutput(t *testing.T) {
	c := &Collector{Command: "cat", Args: []string{"testdata/tree.json"}}

	tree, err := c.Collect(".")
	require.NoError(t, err)

	node := tree.Resolve([]string{"express", "qs"})
	require.NotNil(t, node)
	assert.Equal(t, "6.11.0", node.Version)
}

func TestCollectorNoOutput(t *testing.T) {
	c := &Collector{Command: "true"}

	_, err := c.Collect(".")
	assert.Error(t, err)
}
