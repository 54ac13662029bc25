// SPDX-License-Identifier: MIT
// File: annealer.go
// Role: problem validation and the immutable data shared by all runs.
//
// Contract:
//   - New fails fast on every configuration error; a constructed Annealer
//     only fails later on cancellation or a sanity-check divergence.
//   - The Annealer is read-only after New and safe for concurrent runs.

package sana

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/katalvlaran/netalign/alignment"
	"github.com/katalvlaran/netalign/graph"
	"github.com/katalvlaran/netalign/matrix"
	"github.com/katalvlaran/netalign/measure"
)

// Annealer aligns G1 into G2 under one objective.
type Annealer struct {
	g1, g2 *graph.Graph
	obj    measure.Objective
	needs  measure.Needs
	sizes  measure.Sizes
	wec    *matrix.Dense // nil unless WEC is weighted
	local  *matrix.Dense // combined local measures; nil unless Local is weighted

	parts      int     // number of node partitions
	part1      []uint8 // partition of every G1 node
	part2      []uint8 // partition of every G2 node
	lockTo     []int   // G2 image of a locked G1 node, -1 otherwise
	canChange  []bool  // per partition: an unlocked source and a spare target exist
	canSwap    []bool  // per partition: two unlocked sources exist
	changeProb float64 // resolved change probability

	opts      Options
	logger    *slog.Logger
	sampleSeq *atomic.Uint64 // numbers sampler streams; shared by schedule copies
}

// New validates the problem and prepares the shared tables.
//
// Errors: ErrNilGraph, ErrGraphTooLarge, ErrDegenerateGraph, ErrTypeMismatch,
// ErrLockTarget, ErrBudget, ErrTemperature, ErrInvalidOption, the measure
// package's objective errors, and alignment errors for an invalid Start.
func New(g1, g2 *graph.Graph, obj measure.Objective, opts ...Option) (*Annealer, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return newAnnealer(g1, g2, obj, o)
}

// NewWithOptions is New with a fully specified Options value.
func NewWithOptions(g1, g2 *graph.Graph, obj measure.Objective, o Options) (*Annealer, error) {
	return newAnnealer(g1, g2, obj, o)
}

func newAnnealer(g1, g2 *graph.Graph, obj measure.Objective, o Options) (*Annealer, error) {
	if g1 == nil || g2 == nil {
		return nil, fmt.Errorf("New: %w", ErrNilGraph)
	}
	if err := o.validate(); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	n1, n2 := g1.NumNodes(), g2.NumNodes()
	if n1 > n2 {
		return nil, fmt.Errorf("New: |G1|=%d > |G2|=%d: %w", n1, n2, ErrGraphTooLarge)
	}
	if g1.NumEdges() == 0 || g2.NumEdges() == 0 {
		return nil, fmt.Errorf("New: |E1|=%d |E2|=%d: %w", g1.NumEdges(), g2.NumEdges(), ErrDegenerateGraph)
	}
	if err := obj.Validate(n1, n2); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}

	an := &Annealer{
		g1:        g1,
		g2:        g2,
		obj:       obj,
		needs:     obj.Needs(),
		sizes:     measure.SizesOf(g1, g2),
		opts:      o,
		logger:    o.Logger,
		sampleSeq: new(atomic.Uint64),
	}
	if an.needs.WEC {
		an.wec = obj.WECSim
	}
	local, err := obj.LocalMatrix()
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	an.local = local

	if err = an.partition(); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	if err = an.resolveLocks(); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	if err = an.resolveMoves(); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	if o.Start != nil {
		if err = an.checkStart(o.Start); err != nil {
			return nil, fmt.Errorf("New: start alignment: %w", err)
		}
	}

	an.logger.Debug("annealer ready",
		slog.Int("n1", n1), slog.Int("n2", n2),
		slog.Int("e1", g1.NumEdges()), slog.Int("e2", g2.NumEdges()),
		slog.Int("partitions", an.parts),
		slog.Int("locked", g1.LockedCount()),
		slog.Float64("change_probability", an.changeProb))

	return an, nil
}

// partition assigns node types as partitions when both graphs are typed.
func (an *Annealer) partition() error {
	n1, n2 := an.g1.NumNodes(), an.g2.NumNodes()
	an.part1 = make([]uint8, n1)
	an.part2 = make([]uint8, n2)
	an.parts = 1

	typed1, typed2 := an.g1.HasTypes(), an.g2.HasTypes()
	if typed1 != typed2 {
		an.logger.Warn("node types ignored: only one graph is typed",
			slog.Bool("g1_typed", typed1), slog.Bool("g2_typed", typed2))
	}
	if !typed1 || !typed2 {
		return nil
	}

	an.parts = graph.NumNodeTypes
	for i := range an.part1 {
		an.part1[i] = uint8(an.g1.NodeType(i))
	}
	for j := range an.part2 {
		an.part2[j] = uint8(an.g2.NodeType(j))
	}
	for t := 0; t < graph.NumNodeTypes; t++ {
		nt := graph.NodeType(t)
		if c1, c2 := an.g1.TypeCount(nt), an.g2.TypeCount(nt); c1 > c2 {
			return fmt.Errorf("partition: %v: G1 has %d, G2 has %d: %w", nt, c1, c2, ErrTypeMismatch)
		}
	}

	return nil
}

// resolveLocks maps lock target names to G2 indices.
func (an *Annealer) resolveLocks() error {
	an.lockTo = make([]int, an.g1.NumNodes())
	for i := range an.lockTo {
		an.lockTo[i] = -1
	}
	used := make(map[int]int, an.g1.LockedCount())
	for _, i := range an.g1.LockedNodes() {
		name := an.g1.LockedTargetName(i)
		t, ok := an.g2.Index(name)
		if !ok {
			return fmt.Errorf("resolveLocks: %q → %q: %w", an.g1.Name(i), name, ErrLockTarget)
		}
		if prev, dup := used[t]; dup {
			return fmt.Errorf("resolveLocks: %q and %q both locked to %q: %w",
				an.g1.Name(prev), an.g1.Name(i), name, ErrLockTarget)
		}
		if an.part1[i] != an.part2[t] {
			return fmt.Errorf("resolveLocks: %q → %q: %w", an.g1.Name(i), name, ErrTypeMismatch)
		}
		used[t] = i
		an.lockTo[i] = t
	}

	return nil
}

// resolveMoves decides which partitions admit which move and the change
// probability. A partition with p nodes in G1 reserves p nodes of G2, so its
// spare targets are count2 − count1.
func (an *Annealer) resolveMoves() error {
	unlocked := make([]int, an.parts)
	spare := make([]int, an.parts)
	for i, p := range an.part1 {
		spare[p]--
		if an.lockTo[i] < 0 {
			unlocked[p]++
		}
	}
	for _, p := range an.part2 {
		spare[p]++
	}

	an.canChange = make([]bool, an.parts)
	an.canSwap = make([]bool, an.parts)
	var changes, swaps float64
	movable := false
	for p := 0; p < an.parts; p++ {
		an.canChange[p] = unlocked[p] >= 1 && spare[p] >= 1
		an.canSwap[p] = unlocked[p] >= 2
		if an.canChange[p] {
			changes += float64(unlocked[p]) * float64(spare[p])
		}
		if an.canSwap[p] {
			swaps += float64(unlocked[p]) * float64(unlocked[p]-1) / 2
		}
		movable = movable || an.canChange[p] || an.canSwap[p]
	}
	if !movable {
		return fmt.Errorf("resolveMoves: no unlocked node can move: %w", ErrDegenerateGraph)
	}

	an.changeProb = an.opts.ChangeProbability
	if an.changeProb == AutoChangeProbability {
		an.changeProb = changes / (changes + swaps)
	}

	return nil
}

// checkStart validates a seed alignment against locks and partitions.
func (an *Annealer) checkStart(a alignment.Alignment) error {
	if err := a.Validate(an.g1.NumNodes(), an.g2.NumNodes()); err != nil {
		return err
	}
	for i, t := range a {
		if lt := an.lockTo[i]; lt >= 0 && lt != t {
			return fmt.Errorf("node %q maps to %q, locked to %q: %w",
				an.g1.Name(i), an.g2.Name(t), an.g2.Name(lt), ErrLockTarget)
		}
		if an.part1[i] != an.part2[t] {
			return fmt.Errorf("node %q maps to %q: %w", an.g1.Name(i), an.g2.Name(t), ErrTypeMismatch)
		}
	}

	return nil
}

// Options returns the resolved options.
func (an *Annealer) Options() Options { return an.opts }

// ChangeProbability returns the resolved probability of a change move.
func (an *Annealer) ChangeProbability() float64 { return an.changeProb }

// Objective returns the objective being maximized.
func (an *Annealer) Objective() measure.Objective { return an.obj }

// WithSchedule returns a copy of an with a new temperature schedule. The
// copy shares the read-only tables.
func (an *Annealer) WithSchedule(tInitial, tDecay float64) (*Annealer, error) {
	cp := *an
	cp.opts.TInitial, cp.opts.TDecay = tInitial, tDecay
	if err := cp.opts.validate(); err != nil {
		return nil, fmt.Errorf("WithSchedule: %w", err)
	}

	return &cp, nil
}

// Evaluate scores an arbitrary valid alignment with the annealer's objective.
func (an *Annealer) Evaluate(a alignment.Alignment) (measure.Counts, float64, error) {
	if err := a.Validate(an.g1.NumNodes(), an.g2.NumNodes()); err != nil {
		return measure.Counts{}, 0, fmt.Errorf("Evaluate: %w", err)
	}
	c := measure.Recount(an.g1, an.g2, a, an.wec, an.local)

	return c, an.obj.Score(c, an.sizes), nil
}
