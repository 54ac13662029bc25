// SPDX-License-Identifier: MIT
// Package: netalign/builder
//
// api.go - the single orchestration entry point.

package builder

import (
	"fmt"

	"github.com/katalvlaran/netalign/graph"
)

// Constructor applies a deterministic mutation to a graph.Builder using the
// resolved config. Constructors validate parameters first and return sentinel
// errors wrapped with their method name.
type Constructor func(b *graph.Builder, cfg config) error

// BuildGraph resolves opts, applies every constructor in order to one
// graph.Builder and freezes the result.
//
// Parameters:
//   - opts: seed and ID scheme; nil selects the defaults.
//   - cons: constructors applied left to right to the same builder.
//
// Returns:
//   - the frozen graph, or an error wrapped once with "BuildGraph: %w".
//
// Stage 1 (Prepare): resolve the config and allocate one graph.Builder.
// Stage 2 (Execute): run each constructor; a nil entry is ErrConstructFailed.
// Stage 3 (Finalize): freeze the builder into an immutable graph.
//
// Complexity: Σ cost of constructors + graph.Builder.Build.
func BuildGraph(opts []Option, cons ...Constructor) (*graph.Graph, error) {
	// Stage 1: Prepare
	b := graph.NewBuilder()
	cfg := newConfig(opts...)

	// Stage 2: Execute constructors in order
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(b, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}

	// Stage 3: Finalize
	g, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("BuildGraph: %w", err)
	}

	return g, nil
}

// addNodes inserts n nodes named by cfg.idFn in ascending index order.
func addNodes(method string, b *graph.Builder, cfg config, n int) error {
	for i := 0; i < n; i++ {
		id := cfg.idFn(i)
		if _, err := b.AddNode(id); err != nil {
			return fmt.Errorf("%s: AddNode(%s): %w", method, id, err)
		}
	}

	return nil
}

// addEdge inserts {i, j} by index through cfg.idFn.
func addEdge(method string, b *graph.Builder, cfg config, i, j int) error {
	u, v := cfg.idFn(i), cfg.idFn(j)
	if err := b.AddEdge(u, v); err != nil {
		return fmt.Errorf("%s: AddEdge(%s,%s): %w", method, u, v, err)
	}

	return nil
}
