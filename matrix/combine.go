// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// Combine returns Σ wᵢ·msᵢ / Σ wᵢ, the normalized weighted sum of equally
// shaped matrices. Zero-weight terms are skipped but must still match shape.
//
// Complexity: O(k·r·c) for k matrices.
func Combine(weights []float64, ms []*Dense) (*Dense, error) {
	if len(weights) == 0 || len(weights) != len(ms) {
		return nil, fmt.Errorf("Combine: %d weights for %d matrices: %w", len(weights), len(ms), ErrBadWeights)
	}
	var total float64
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, fmt.Errorf("Combine: weight[%d]=%g: %w", i, w, ErrBadWeights)
		}
		if ms[i] == nil {
			return nil, fmt.Errorf("Combine: matrix[%d]: %w", i, ErrNilMatrix)
		}
		if ms[i].r != ms[0].r || ms[i].c != ms[0].c {
			return nil, fmt.Errorf("Combine: matrix[%d] is %dx%d, want %dx%d: %w",
				i, ms[i].r, ms[i].c, ms[0].r, ms[0].c, ErrDimensionMismatch)
		}
		total += w
	}
	if total == 0 {
		return nil, fmt.Errorf("Combine: all weights are zero: %w", ErrBadWeights)
	}

	out := &Dense{r: ms[0].r, c: ms[0].c, data: make([]float64, len(ms[0].data))}
	for i, w := range weights {
		if w == 0 {
			continue
		}
		f := w / total
		for k, v := range ms[i].data {
			out.data[k] += f * v
		}
	}

	return out, nil
}
