// SPDX-License-Identifier: MIT
// File: scorer.go
// Role: exact O(degree) deltas of the maintained totals.
//
// A change s: t1 → t2 touches only G1 edges incident to s. A swap s1 ⇄ s2
// touches edges incident to either node; the edge (s1,s2), if present, maps
// to the same G2 pair after the swap and is skipped by both neighbor loops.
// Totals whose objective weight is zero are not maintained.

package sana

import "github.com/katalvlaran/netalign/measure"

// delta returns the change of every maintained total under m.
func (an *Annealer) delta(st *state, m move) measure.Counts {
	if m.kind == moveChange {
		return an.changeDelta(st, m.s1, m.t1, m.t2)
	}

	return an.swapDelta(st, m.s1, m.s2, m.t1, m.t2)
}

func (an *Annealer) changeDelta(st *state, s, oldT, newT int) measure.Counts {
	var d measure.Counts
	g2 := an.g2
	a := st.a

	if an.needs.Aligned || an.needs.WEC {
		for _, v := range an.g1.Neighbors(s) {
			t := a[v]
			if g2.Adjacent(oldT, t) {
				d.AligEdges--
				if an.wec != nil {
					d.WECSum -= an.wec.Get(s, oldT) + an.wec.Get(v, t)
				}
			}
			if g2.Adjacent(newT, t) {
				d.AligEdges++
				if an.wec != nil {
					d.WECSum += an.wec.Get(s, newT) + an.wec.Get(v, t)
				}
			}
		}
		d.SECSum = measure.SECSum(d.AligEdges, an.sizes)
	}

	if an.needs.Induced {
		for _, w := range g2.Neighbors(oldT) {
			if st.assigned.Test(uint(w)) {
				d.InducedEdges--
			}
		}
		for _, w := range g2.Neighbors(newT) {
			if st.assigned.Test(uint(w)) {
				d.InducedEdges++
			}
		}
		// oldT is still assigned while newT's neighbors are counted.
		if g2.Adjacent(oldT, newT) {
			d.InducedEdges--
		}
	}

	if an.local != nil {
		d.LocalSum = an.local.Get(s, newT) - an.local.Get(s, oldT)
	}

	return d
}

func (an *Annealer) swapDelta(st *state, s1, s2, t1, t2 int) measure.Counts {
	var d measure.Counts
	g2 := an.g2
	a := st.a

	if an.needs.Aligned || an.needs.WEC {
		an.swapSide(&d, a, s1, s2, t1, t2)
		an.swapSide(&d, a, s2, s1, t2, t1)
		if an.wec != nil && an.g1.Adjacent(s1, s2) && g2.Adjacent(t1, t2) {
			d.WECSum += an.wec.Get(s1, t2) + an.wec.Get(s2, t1) -
				an.wec.Get(s1, t1) - an.wec.Get(s2, t2)
		}
		d.SECSum = measure.SECSum(d.AligEdges, an.sizes)
	}
	// The image set is unchanged, so induced edges are too.

	if an.local != nil {
		l := an.local
		d.LocalSum = l.Get(s1, t2) + l.Get(s2, t1) - l.Get(s1, t1) - l.Get(s2, t2)
	}

	return d
}

// swapSide accounts for the edges of s moving from `from` to `to`, skipping
// the edge to its swap partner.
func (an *Annealer) swapSide(d *measure.Counts, a []int, s, partner, from, to int) {
	g2 := an.g2
	for _, v := range an.g1.Neighbors(s) {
		if v == partner {
			continue
		}
		t := a[v]
		if g2.Adjacent(from, t) {
			d.AligEdges--
			if an.wec != nil {
				d.WECSum -= an.wec.Get(s, from) + an.wec.Get(v, t)
			}
		}
		if g2.Adjacent(to, t) {
			d.AligEdges++
			if an.wec != nil {
				d.WECSum += an.wec.Get(s, to) + an.wec.Get(v, t)
			}
		}
	}
}
