// SPDX-License-Identifier: MIT
// File: io.go
// Role: name-based alignment serialization with extension-selected compression.

package alignment

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/katalvlaran/netalign/graph"
)

const (
	extZstd = ".zst"
	extLZ4  = ".lz4"
)

// Write emits one "g1name<TAB>g2name" line per G1 node, in G1 index order.
func Write(w io.Writer, a Alignment, g1, g2 *graph.Graph) error {
	if err := a.Validate(g1.NumNodes(), g2.NumNodes()); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for i, t := range a {
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", g1.Name(i), g2.Name(t)); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Read parses name pairs produced by Write (any whitespace separator, '#'
// comments allowed). Every G1 node must appear; the result is validated.
func Read(r io.Reader, g1, g2 *graph.Graph) (Alignment, error) {
	n1 := g1.NumNodes()
	a := make(Alignment, n1)
	for i := range a {
		a[i] = -1
	}

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		f := strings.Fields(text)
		if len(f) < 2 {
			return nil, fmt.Errorf("Read: line %d: %w", line, graph.ErrMalformedLine)
		}
		i, ok := g1.Index(f[0])
		if !ok {
			return nil, fmt.Errorf("Read: line %d: G1 %q: %w", line, f[0], ErrUnknownNode)
		}
		t, ok := g2.Index(f[1])
		if !ok {
			return nil, fmt.Errorf("Read: line %d: G2 %q: %w", line, f[1], ErrUnknownNode)
		}
		a[i] = t
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("Read: %w", err)
	}
	for i, t := range a {
		if t < 0 {
			return nil, fmt.Errorf("Read: G1 %q missing: %w", g1.Name(i), ErrIncomplete)
		}
	}
	if err := a.Validate(n1, g2.NumNodes()); err != nil {
		return nil, fmt.Errorf("Read: %w", err)
	}

	return a, nil
}

// WriteFile writes a to path, compressing according to the file extension.
func WriteFile(path string, a Alignment, g1, g2 *graph.Graph) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("WriteFile: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case extZstd:
		enc, err := zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("WriteFile: zstd: %w", err)
		}
		if err = Write(enc, a, g1, g2); err != nil {
			_ = enc.Close()
			return err
		}
		return enc.Close()
	case extLZ4:
		zw := lz4.NewWriter(f)
		if err = Write(zw, a, g1, g2); err != nil {
			_ = zw.Close()
			return err
		}
		return zw.Close()
	default:
		return Write(f, a, g1, g2)
	}
}

// ReadFile reads an alignment from path, decompressing by file extension.
func ReadFile(path string, g1, g2 *graph.Graph) (Alignment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ReadFile: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case extZstd:
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("ReadFile: zstd: %w", err)
		}
		defer dec.Close()
		return Read(dec, g1, g2)
	case extLZ4:
		return Read(lz4.NewReader(f), g1, g2)
	default:
		return Read(f, g1, g2)
	}
}
