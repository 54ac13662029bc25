// SPDX-License-Identifier: MIT
// File: io.go
// Role: minimal whitespace-separated readers used by the CLI.
// Formats:
//   - edge list:  "u v" per line
//   - node types: "name type" per line (type ∈ gene|miRNA|none)
//   - locks:      "g1name g2name" per line
// Blank lines and lines starting with '#' are ignored everywhere.

package graph

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// scanFields calls fn for every non-comment line split into exactly want fields.
func scanFields(r io.Reader, want int, fn func(line int, f []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		f := strings.Fields(text)
		if len(f) < want {
			return fmt.Errorf("line %d: want %d fields, got %d: %w", line, want, len(f), ErrMalformedLine)
		}
		if err := fn(line, f[:want]); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}

	return sc.Err()
}

// ReadEdgeList parses an edge list into a new Builder so callers can still
// attach types and locks before Build.
func ReadEdgeList(r io.Reader, opts ...BuilderOption) (*Builder, error) {
	b := NewBuilder(opts...)
	err := scanFields(r, 2, func(_ int, f []string) error {
		return b.AddEdge(f[0], f[1])
	})
	if err != nil {
		return nil, fmt.Errorf("ReadEdgeList: %w", err)
	}

	return b, nil
}

// ReadNodeTypes applies "name type" lines to b. Every named node must exist.
func ReadNodeTypes(b *Builder, r io.Reader) error {
	err := scanFields(r, 2, func(_ int, f []string) error {
		t, err := ParseNodeType(f[1])
		if err != nil {
			return err
		}
		return b.SetType(f[0], t)
	})
	if err != nil {
		return fmt.Errorf("ReadNodeTypes: %w", err)
	}

	return nil
}

// ReadLocks applies "g1name g2name" lock pairs to b (the G1 builder).
func ReadLocks(b *Builder, r io.Reader) error {
	err := scanFields(r, 2, func(_ int, f []string) error {
		return b.Lock(f[0], f[1])
	})
	if err != nil {
		return fmt.Errorf("ReadLocks: %w", err)
	}

	return nil
}
