// SPDX-License-Identifier: MIT
// File: objective.go
// Role: objective weights, combination kinds and score-from-totals.

package measure

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/netalign/matrix"
)

// Kind selects how weighted components are combined into one score.
type Kind int

const (
	// Sum is Σ wᵢ·cᵢ.
	Sum Kind = iota
	// Product is Π cᵢ^wᵢ over components with wᵢ > 0.
	Product
	// Max is max wᵢ·cᵢ over components with wᵢ > 0.
	Max
	// Min is min wᵢ·cᵢ over components with wᵢ > 0.
	Min
)

var kindNames = [...]string{"sum", "product", "max", "min"}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return kindNames[k]
}

// ParseKind parses a case-insensitive kind name.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}

	return Sum, fmt.Errorf("ParseKind(%q): %w", s, ErrUnknownKind)
}

// Weights holds one non-negative weight per component.
type Weights struct {
	EC    float64
	S3    float64
	WEC   float64
	SEC   float64
	Local float64
}

// LocalMeasure is one precomputed |G1|×|G2| node similarity with its weight
// inside the Local component.
type LocalMeasure struct {
	Name   string
	Weight float64
	Sim    *matrix.Dense
}

// Objective describes how an alignment is scored.
type Objective struct {
	Weights Weights
	Kind    Kind
	Local   []LocalMeasure
	WECSim  *matrix.Dense
}

// Needs reports which totals must be maintained for an objective.
type Needs struct {
	Aligned bool
	Induced bool
	WEC     bool
	Local   bool
}

// Sizes are the graph constants the components are normalized by.
type Sizes struct {
	N1 int
	E1 int
	E2 int
}

// Counts are the alignment-dependent totals every component is derived from.
type Counts struct {
	AligEdges    int
	InducedEdges int
	WECSum       float64
	SECSum       float64
	LocalSum     float64
}

// Add returns c + d.
func (c Counts) Add(d Counts) Counts {
	return Counts{
		AligEdges:    c.AligEdges + d.AligEdges,
		InducedEdges: c.InducedEdges + d.InducedEdges,
		WECSum:       c.WECSum + d.WECSum,
		SECSum:       c.SECSum + d.SECSum,
		LocalSum:     c.LocalSum + d.LocalSum,
	}
}

// Scores are the unweighted component values.
type Scores struct {
	EC    float64
	S3    float64
	WEC   float64
	SEC   float64
	Local float64
}

// Validate checks weights, kind and matrix shapes for |G1|=n1, |G2|=n2.
func (o Objective) Validate(n1, n2 int) error {
	w := o.Weights
	total := 0.0
	for _, v := range []float64{w.EC, w.S3, w.WEC, w.SEC, w.Local} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("Validate: weight %g: %w", v, ErrInvalidWeights)
		}
		total += v
	}
	if total == 0 {
		return fmt.Errorf("Validate: all weights zero: %w", ErrInvalidWeights)
	}
	if o.Kind < Sum || o.Kind > Min {
		return fmt.Errorf("Validate: %v: %w", o.Kind, ErrUnknownKind)
	}
	if w.WEC > 0 {
		if o.WECSim == nil {
			return fmt.Errorf("Validate: WEC: %w", ErrMissingSimilarity)
		}
		if o.WECSim.Rows() != n1 || o.WECSim.Cols() != n2 {
			return fmt.Errorf("Validate: WEC is %dx%d, want %dx%d: %w",
				o.WECSim.Rows(), o.WECSim.Cols(), n1, n2, ErrShape)
		}
	}
	if w.Local > 0 {
		if len(o.Local) == 0 {
			return fmt.Errorf("Validate: local: %w", ErrMissingSimilarity)
		}
		lt := 0.0
		for _, lm := range o.Local {
			if lm.Sim == nil {
				return fmt.Errorf("Validate: local %q: %w", lm.Name, ErrMissingSimilarity)
			}
			if lm.Sim.Rows() != n1 || lm.Sim.Cols() != n2 {
				return fmt.Errorf("Validate: local %q is %dx%d, want %dx%d: %w",
					lm.Name, lm.Sim.Rows(), lm.Sim.Cols(), n1, n2, ErrShape)
			}
			if math.IsNaN(lm.Weight) || lm.Weight < 0 {
				return fmt.Errorf("Validate: local %q weight %g: %w", lm.Name, lm.Weight, ErrInvalidWeights)
			}
			lt += lm.Weight
		}
		if lt == 0 {
			return fmt.Errorf("Validate: local weights all zero: %w", ErrInvalidWeights)
		}
	}

	return nil
}

// Needs reports the totals with a non-zero influence on the score.
func (o Objective) Needs() Needs {
	w := o.Weights
	return Needs{
		Aligned: w.EC > 0 || w.S3 > 0 || w.SEC > 0,
		Induced: w.S3 > 0,
		WEC:     w.WEC > 0,
		Local:   w.Local > 0,
	}
}

// LocalMatrix returns the weight-normalized combination of the local
// measures, or nil when Local is disabled.
func (o Objective) LocalMatrix() (*matrix.Dense, error) {
	if o.Weights.Local == 0 || len(o.Local) == 0 {
		return nil, nil
	}
	ws := make([]float64, len(o.Local))
	ms := make([]*matrix.Dense, len(o.Local))
	for i, lm := range o.Local {
		ws[i], ms[i] = lm.Weight, lm.Sim
	}

	return matrix.Combine(ws, ms)
}

// SECSum returns the symmetric edge coverage for a number of aligned edges.
func SECSum(alig int, sz Sizes) float64 {
	if sz.E1 == 0 || sz.E2 == 0 {
		return 0
	}

	return float64(alig) * (1/(2*float64(sz.E1)) + 1/(2*float64(sz.E2)))
}

// Components converts totals into unweighted component values.
func (o Objective) Components(c Counts, sz Sizes) Scores {
	var s Scores
	if sz.E1 > 0 {
		s.EC = float64(c.AligEdges) / float64(sz.E1)
		s.WEC = c.WECSum / (2 * float64(sz.E1))
		if den := sz.E1 + c.InducedEdges - c.AligEdges; den > 0 {
			s.S3 = float64(c.AligEdges) / float64(den)
		}
	}
	s.SEC = c.SECSum
	if sz.N1 > 0 {
		s.Local = c.LocalSum / float64(sz.N1)
	}

	return s
}

// Score combines the weighted components according to Kind.
func (o Objective) Score(c Counts, sz Sizes) float64 {
	s := o.Components(c, sz)
	w := o.Weights
	terms := [...][2]float64{
		{w.EC, s.EC}, {w.S3, s.S3}, {w.WEC, s.WEC}, {w.SEC, s.SEC}, {w.Local, s.Local},
	}

	switch o.Kind {
	case Product:
		p := 1.0
		for _, t := range terms {
			if t[0] > 0 {
				p *= math.Pow(t[1], t[0])
			}
		}
		return p
	case Max, Min:
		best, seen := 0.0, false
		for _, t := range terms {
			if t[0] == 0 {
				continue
			}
			v := t[0] * t[1]
			if !seen || (o.Kind == Max && v > best) || (o.Kind == Min && v < best) {
				best, seen = v, true
			}
		}
		return best
	default:
		sum := 0.0
		for _, t := range terms {
			sum += t[0] * t[1]
		}
		return sum
	}
}
