// SPDX-License-Identifier: MIT
// File: moves.go
// Role: move proposal and commit.
//
// Change moves only target G2 nodes outside the image and never displace a
// mapped node; rearranging mapped nodes is left to swaps.

package sana

import "math/rand"

type moveKind uint8

const (
	moveChange moveKind = iota
	moveSwap
)

// move is a proposed local modification.
//
// change: s1 moves from t1 to t2, where t2 = unassigned[p][idx].
// swap:   s1 and s2 exchange images t1 and t2.
type move struct {
	kind   moveKind
	s1, s2 int
	t1, t2 int
	idx    int
	part   uint8
}

// propose draws a source uniformly among movable nodes and a move kind with
// probability changeProb, falling back to the other kind when the drawn one
// is impossible in the source's partition.
func (an *Annealer) propose(st *state, rng *rand.Rand) move {
	s := st.movable[rng.Intn(len(st.movable))]
	p := an.part1[s]

	change := rng.Float64() < an.changeProb
	if change && !an.canChange[p] {
		change = false
	} else if !change && !an.canSwap[p] {
		change = true
	}

	if change {
		free := st.unassigned[p]
		idx := rng.Intn(len(free))
		return move{kind: moveChange, s1: s, t1: st.a[s], t2: free[idx], idx: idx, part: p}
	}

	peers := st.unlocked[p]
	j := rng.Intn(len(peers) - 1)
	s2 := peers[j]
	if s2 == s {
		s2 = peers[len(peers)-1]
	}

	return move{kind: moveSwap, s1: s, s2: s2, t1: st.a[s], t2: st.a[s2], part: p}
}

// commit applies an accepted move.
func (st *state) commit(m move) {
	if m.kind == moveChange {
		st.a[m.s1] = m.t2
		st.assigned.Clear(uint(m.t1))
		st.assigned.Set(uint(m.t2))
		st.unassigned[m.part][m.idx] = m.t1
		return
	}
	st.a[m.s1], st.a[m.s2] = m.t2, m.t1
}
