// SPDX-License-Identifier: MIT

package schedule

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFit_RecoversLogisticLine(t *testing.T) {
	var ps []point
	for x := -3.0; x <= 1; x += 0.5 {
		p := logistic(0.5 + 2*x)
		ps = append(ps, point{x: x, y: logit(p), w: 1000 * p * (1 - p)})
	}
	a, b, ok := fit(ps)
	require.True(t, ok)
	require.InDelta(t, 0.5, a, 1e-9)
	require.InDelta(t, 2, b, 1e-9)

	// A flat or falling line has no usable slope.
	_, _, ok = fit([]point{{x: 0, y: 1, w: 1}, {x: 1, y: 0, w: 1}})
	require.False(t, ok)
	_, _, ok = fit([]point{{x: 2, y: 0, w: 1}, {x: 2, y: 1, w: 1}})
	require.False(t, ok)
	_, _, ok = fit([]point{{x: 2, y: 0, w: 1}})
	require.False(t, ok)
}

func TestCriticalValues(t *testing.T) {
	require.InDelta(t, 1.959964, twoSided(0.95), 1e-5)
	require.InDelta(t, 1.644854, oneSided(0.95), 1e-5)
	require.InDelta(t, 2.575829, twoSided(0.99), 1e-5)
	require.Greater(t, twoSided(0.95), oneSided(0.95))
}
