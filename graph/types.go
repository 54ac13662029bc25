// SPDX-License-Identifier: MIT

package graph

import (
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
)

// NodeType partitions nodes for typed alignment.
// Untyped graphs report NodeNone for every node.
type NodeType uint8

const (
	// NodeNone marks an untyped node.
	NodeNone NodeType = iota
	// NodeGene marks a gene node.
	NodeGene
	// NodeMiRNA marks a miRNA node.
	NodeMiRNA

	// NumNodeTypes is the number of NodeType values; useful to size per-type tables.
	NumNodeTypes = 3
)

// String implements fmt.Stringer.
func (t NodeType) String() string {
	switch t {
	case NodeGene:
		return "gene"
	case NodeMiRNA:
		return "miRNA"
	default:
		return "none"
	}
}

// ParseNodeType maps a label ("gene", "miRNA", "none", case-insensitive) to a NodeType.
func ParseNodeType(s string) (NodeType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gene":
		return NodeGene, nil
	case "mirna":
		return NodeMiRNA, nil
	case "", "none":
		return NodeNone, nil
	}

	return NodeNone, fmt.Errorf("ParseNodeType(%q): %w", s, ErrUnknownNodeType)
}

// Graph is an immutable simple undirected graph with a dense bit matrix and
// sorted adjacency lists. Construct it with a Builder.
type Graph struct {
	n int // number of nodes
	m int // number of undirected edges

	names []string       // index → name
	index map[string]int // name → index

	adj   *bitset.BitSet // n*n bits, row-major: bit(i*n+j) ⇔ edge {i,j}
	lists [][]int        // sorted neighbor lists

	types     []NodeType
	typed     bool
	typeCount [NumNodeTypes]int

	locked   *roaring.Bitmap // indices of locked nodes
	lockedTo []string        // index → target name in the other graph ("" when unlocked)
}
