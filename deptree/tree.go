package deptree

import (
	"encoding/json"
	"fmt"
	"os"
)

// Node is one installed package in the resolved dependency tree. The node's
// own name lives in its parent's Dependencies key.
type Node struct {
	Version      string           `json:"version"`
	Dependencies map[string]*Node `json:"dependencies"`
}

// Tree is a read-only view over an npm-ls style dependency tree document.
type Tree struct {
	root *Node
}

// Load reads and parses a dependency tree document from disk.
func Load(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dependency tree: %w", err)
	}
	return Parse(data)
}

// Parse decodes a dependency tree document. A document that does not decode
// is fatal; the engine cannot run without a valid tree.
func Parse(data []byte) (*Tree, error) {
	var root Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to decode dependency tree: %w", err)
	}
	return &Tree{root: &root}, nil
}

// Root returns the tree's root node.
func (t *Tree) Root() *Node {
	return t.root
}

// Resolve walks a name-path from the root and returns the node it ends at,
// or nil if any hop is missing from the tree.
func (t *Tree) Resolve(path []string) *Node {
	node := t.root
	for _, name := range path {
		if node == nil || node.Dependencies == nil {
			return nil
		}
		node = node.Dependencies[name]
	}
	return node
}

// Count returns the number of nodes reachable from the root, excluding the
// root itself. Uses an explicit work stack so pathological dependency depths
// cannot exhaust the goroutine stack.
func (t *Tree) Count() int {
	count := 0
	stack := []*Node{t.root}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, child := range node.Dependencies {
			if child == nil {
				continue
			}
			count++
			stack = append(stack, child)
		}
	}

	return count
}
