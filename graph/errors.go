// SPDX-License-Identifier: MIT
// Package graph: sentinel error set.
//
// Every message is prefixed with "graph: ..." and callers match them with
// errors.Is. Context is added with fmt.Errorf("...: %w", ErrX) at the boundary.

package graph

import "errors"

var (
	// ErrEmptyNodeName indicates an empty node name was passed to the Builder.
	ErrEmptyNodeName = errors.New("graph: node name is empty")

	// ErrNodeNotFound indicates an operation referenced an unknown node name.
	ErrNodeNotFound = errors.New("graph: node not found")

	// ErrLoopNotAllowed indicates a self-loop; aligned graphs are simple.
	ErrLoopNotAllowed = errors.New("graph: self-loop not allowed")

	// ErrEmptyGraph indicates Build was called on a builder without nodes.
	ErrEmptyGraph = errors.New("graph: graph has no nodes")

	// ErrTooManyNodes indicates the dense adjacency matrix would exceed the configured limit.
	ErrTooManyNodes = errors.New("graph: too many nodes for dense adjacency")

	// ErrUnknownNodeType indicates an unparsable node type label.
	ErrUnknownNodeType = errors.New("graph: unknown node type")

	// ErrDuplicateLock indicates a node was locked twice to different targets.
	ErrDuplicateLock = errors.New("graph: node already locked to another target")

	// ErrMalformedLine indicates an unparsable line in an input file.
	ErrMalformedLine = errors.New("graph: malformed input line")
)
