// SPDX-License-Identifier: MIT

// Package alignment defines the result of network alignment: a total injective
// mapping from the nodes of G1 onto nodes of G2, stored as a slice indexed by
// G1 node with the G2 node as value.
//
// Besides validation and constructors, the package reads and writes
// alignments as tab-separated name pairs. Files ending in ".zst" are zstd
// compressed and files ending in ".lz4" are lz4 compressed; anything else is
// plain text. The same format is used for seed alignments and for the
// checkpoint written when a run is interrupted.
package alignment
