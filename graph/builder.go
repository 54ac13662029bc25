// SPDX-License-Identifier: MIT
// File: builder.go
// Role: mutable, name-based construction of a Graph followed by a one-shot Build.
// Determinism:
//   - Node indices follow first insertion order (AddNode or AddEdge endpoint).
//   - Neighbor lists are sorted ascending regardless of edge insertion order.

package graph

import (
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
)

// DefaultMaxNodes bounds the dense adjacency matrix (n²/8 bytes ≈ 312 MB at the limit).
const DefaultMaxNodes = 50000

// BuilderOption configures a Builder before use.
type BuilderOption func(*Builder)

// WithCapacity pre-sizes internal tables for about n nodes.
func WithCapacity(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.names = make([]string, 0, n)
			b.index = make(map[string]int, n)
		}
	}
}

// WithMaxNodes overrides DefaultMaxNodes. Non-positive values are ignored.
func WithMaxNodes(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.maxNodes = n
		}
	}
}

// Builder accumulates nodes, edges, types and locks. It is not safe for
// concurrent use; the Graph it produces is.
type Builder struct {
	names    []string
	index    map[string]int
	edges    map[[2]int]struct{} // canonical (lo, hi) pairs
	types    map[int]NodeType
	locks    map[int]string
	maxNodes int
}

// NewBuilder returns an empty Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		index:    make(map[string]int),
		edges:    make(map[[2]int]struct{}),
		types:    make(map[int]NodeType),
		locks:    make(map[int]string),
		maxNodes: DefaultMaxNodes,
	}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NumNodes reports the number of nodes added so far.
func (b *Builder) NumNodes() int { return len(b.names) }

// AddNode inserts a node and returns its index. Adding an existing name is a
// no-op that returns the existing index.
// Complexity: O(1) amortized.
func (b *Builder) AddNode(name string) (int, error) {
	if name == "" {
		return 0, ErrEmptyNodeName
	}
	if idx, ok := b.index[name]; ok {
		return idx, nil
	}
	idx := len(b.names)
	b.names = append(b.names, name)
	b.index[name] = idx

	return idx, nil
}

// AddEdge inserts the undirected edge {u, v}, creating missing endpoints.
// Duplicate edges collapse into one; self-loops return ErrLoopNotAllowed.
// Complexity: O(1) amortized.
func (b *Builder) AddEdge(u, v string) error {
	if u == "" || v == "" {
		return ErrEmptyNodeName
	}
	if u == v {
		return fmt.Errorf("AddEdge(%s,%s): %w", u, v, ErrLoopNotAllowed)
	}
	iu, err := b.AddNode(u)
	if err != nil {
		return err
	}
	iv, err := b.AddNode(v)
	if err != nil {
		return err
	}
	if iu > iv {
		iu, iv = iv, iu
	}
	b.edges[[2]int{iu, iv}] = struct{}{}

	return nil
}

// SetType assigns a NodeType to an existing node.
func (b *Builder) SetType(name string, t NodeType) error {
	idx, ok := b.index[name]
	if !ok {
		return fmt.Errorf("SetType(%s): %w", name, ErrNodeNotFound)
	}
	if t > NodeMiRNA {
		return fmt.Errorf("SetType(%s, %d): %w", name, t, ErrUnknownNodeType)
	}
	b.types[idx] = t

	return nil
}

// Lock pins an existing node to the node called target in the other graph.
// Re-locking to the same target is a no-op.
func (b *Builder) Lock(name, target string) error {
	if target == "" {
		return ErrEmptyNodeName
	}
	idx, ok := b.index[name]
	if !ok {
		return fmt.Errorf("Lock(%s): %w", name, ErrNodeNotFound)
	}
	if prev, ok := b.locks[idx]; ok && prev != target {
		return fmt.Errorf("Lock(%s→%s), already →%s: %w", name, target, prev, ErrDuplicateLock)
	}
	b.locks[idx] = target

	return nil
}

// Build freezes the builder into an immutable Graph. The builder may be reused
// afterwards; the Graph does not alias its tables.
//
// Complexity: O(n²/64 + m log Δ) time, O(n²/8 + n + m) space.
func (b *Builder) Build() (*Graph, error) {
	n := len(b.names)
	if n == 0 {
		return nil, ErrEmptyGraph
	}
	if n > b.maxNodes {
		return nil, fmt.Errorf("Build: n=%d > max=%d: %w", n, b.maxNodes, ErrTooManyNodes)
	}

	g := &Graph{
		n:        n,
		m:        len(b.edges),
		names:    slices.Clone(b.names),
		index:    make(map[string]int, n),
		adj:      bitset.New(uint(n * n)),
		lists:    make([][]int, n),
		types:    make([]NodeType, n),
		locked:   roaring.New(),
		lockedTo: make([]string, n),
	}
	for name, idx := range b.index {
		g.index[name] = idx
	}

	// Degree pass first so every list is allocated exactly once.
	deg := make([]int, n)
	for e := range b.edges {
		deg[e[0]]++
		deg[e[1]]++
	}
	for i := 0; i < n; i++ {
		g.lists[i] = make([]int, 0, deg[i])
	}
	for e := range b.edges {
		u, v := e[0], e[1]
		g.adj.Set(uint(u*n + v))
		g.adj.Set(uint(v*n + u))
		g.lists[u] = append(g.lists[u], v)
		g.lists[v] = append(g.lists[v], u)
	}
	for i := 0; i < n; i++ {
		slices.Sort(g.lists[i])
	}

	for idx, t := range b.types {
		g.types[idx] = t
		if t != NodeNone {
			g.typed = true
		}
	}
	for i := 0; i < n; i++ {
		g.typeCount[g.types[i]]++
	}

	for idx, target := range b.locks {
		g.locked.Add(uint32(idx))
		g.lockedTo[idx] = target
	}

	return g, nil
}
