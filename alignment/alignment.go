// SPDX-License-Identifier: MIT

package alignment

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
)

var (
	// ErrLength signals an alignment whose length differs from |G1|.
	ErrLength = errors.New("alignment: length does not match G1")

	// ErrOutOfRange signals an image outside [0, |G2|).
	ErrOutOfRange = errors.New("alignment: image out of range")

	// ErrNotInjective signals two G1 nodes mapped to the same G2 node.
	ErrNotInjective = errors.New("alignment: mapping is not injective")

	// ErrTooSmall signals |G2| < |G1|; no injective mapping exists.
	ErrTooSmall = errors.New("alignment: G2 smaller than G1")

	// ErrUnknownNode signals a name in a file that is absent from its graph.
	ErrUnknownNode = errors.New("alignment: unknown node name")

	// ErrIncomplete signals a file that does not map every G1 node.
	ErrIncomplete = errors.New("alignment: not every G1 node is aligned")
)

// Alignment maps G1 node i to G2 node a[i].
type Alignment []int

// Identity returns the alignment i → i for n nodes.
func Identity(n int) Alignment {
	a := make(Alignment, n)
	for i := range a {
		a[i] = i
	}

	return a
}

// Random returns a uniformly random injective alignment of n1 nodes into n2.
// Complexity: O(n2).
func Random(n1, n2 int, rng *rand.Rand) (Alignment, error) {
	if n2 < n1 {
		return nil, fmt.Errorf("Random(%d,%d): %w", n1, n2, ErrTooSmall)
	}

	return Alignment(rng.Perm(n2)[:n1]), nil
}

// Validate checks length, range and injectivity against |G1| = n1, |G2| = n2.
// Complexity: O(n1 + n2) time, O(n2) space.
func (a Alignment) Validate(n1, n2 int) error {
	if len(a) != n1 {
		return fmt.Errorf("Validate: len=%d n1=%d: %w", len(a), n1, ErrLength)
	}
	if n2 < n1 {
		return fmt.Errorf("Validate: n1=%d n2=%d: %w", n1, n2, ErrTooSmall)
	}
	used := make([]bool, n2)
	for i, t := range a {
		if t < 0 || t >= n2 {
			return fmt.Errorf("Validate: a[%d]=%d: %w", i, t, ErrOutOfRange)
		}
		if used[t] {
			return fmt.Errorf("Validate: a[%d]=%d reused: %w", i, t, ErrNotInjective)
		}
		used[t] = true
	}

	return nil
}

// Clone returns an independent copy.
func (a Alignment) Clone() Alignment { return slices.Clone(a) }

// Equal reports element-wise equality.
func (a Alignment) Equal(b Alignment) bool { return slices.Equal(a, b) }
