// SPDX-License-Identifier: MIT
// File: state.go
// Role: the mutable alignment state of one run.
//
// Invariants (at every iteration boundary):
//   - a is injective; assigned has exactly the bits {a[i]}.
//   - unassigned[p] lists the G2 nodes of partition p outside the image.
//   - unlocked[p] lists the unlocked G1 nodes of partition p; it never changes.
//   - a locked node i satisfies a[i] == lockTo[i].

package sana

import (
	"math/rand"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/netalign/alignment"
)

type state struct {
	a          alignment.Alignment
	assigned   *bitset.BitSet
	unlocked   [][]int
	unassigned [][]int
	movable    []int // sources drawn uniformly; nodes of partitions with a legal move
}

// newState builds the state from start, or from a random lock- and
// partition-respecting alignment when start is nil.
func (an *Annealer) newState(start alignment.Alignment, rng *rand.Rand) *state {
	n1, n2 := an.g1.NumNodes(), an.g2.NumNodes()
	st := &state{
		assigned:   bitset.New(uint(n2)),
		unlocked:   make([][]int, an.parts),
		unassigned: make([][]int, an.parts),
	}
	for i := 0; i < n1; i++ {
		if an.lockTo[i] < 0 {
			p := an.part1[i]
			st.unlocked[p] = append(st.unlocked[p], i)
		}
	}
	for p := 0; p < an.parts; p++ {
		if an.canChange[p] || an.canSwap[p] {
			st.movable = append(st.movable, st.unlocked[p]...)
		}
	}

	if start != nil {
		st.a = start.Clone()
	} else {
		st.a = an.randomAlignment(rng)
	}
	for _, t := range st.a {
		st.assigned.Set(uint(t))
	}
	for j := 0; j < n2; j++ {
		if !st.assigned.Test(uint(j)) {
			p := an.part2[j]
			st.unassigned[p] = append(st.unassigned[p], j)
		}
	}

	return st
}

// randomAlignment maps locked nodes to their targets and every other node to
// a uniformly shuffled free G2 node of its partition.
func (an *Annealer) randomAlignment(rng *rand.Rand) alignment.Alignment {
	a := make(alignment.Alignment, an.g1.NumNodes())
	free := make([][]int, an.parts)
	taken := make([]bool, an.g2.NumNodes())
	for _, t := range an.lockTo {
		if t >= 0 {
			taken[t] = true
		}
	}
	for j, p := range an.part2 {
		if !taken[j] {
			free[p] = append(free[p], j)
		}
	}
	for p := range free {
		rng.Shuffle(len(free[p]), func(i, j int) { free[p][i], free[p][j] = free[p][j], free[p][i] })
	}

	next := make([]int, an.parts)
	for i := range a {
		if t := an.lockTo[i]; t >= 0 {
			a[i] = t
			continue
		}
		p := an.part1[i]
		a[i] = free[p][next[p]]
		next[p]++
	}

	return a
}
