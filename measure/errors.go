// SPDX-License-Identifier: MIT

package measure

import "errors"

var (
	// ErrInvalidWeights signals a negative, NaN or all-zero weight vector.
	ErrInvalidWeights = errors.New("measure: invalid objective weights")

	// ErrMissingSimilarity signals a weighted component with no similarity matrix.
	ErrMissingSimilarity = errors.New("measure: similarity matrix required")

	// ErrShape signals a similarity matrix that is not |G1|×|G2|.
	ErrShape = errors.New("measure: similarity matrix has wrong shape")

	// ErrUnknownKind signals an unrecognized objective kind.
	ErrUnknownKind = errors.New("measure: unknown objective kind")
)
