// SPDX-License-Identifier: MIT

package measure

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/netalign/graph"
	"github.com/katalvlaran/netalign/matrix"
)

// ReadSimilarity reads "g1name g2name score" triples into a |G1|×|G2|
// matrix. Pairs not listed stay at zero; unknown names are errors.
func ReadSimilarity(r io.Reader, g1, g2 *graph.Graph) (*matrix.Dense, error) {
	m, err := matrix.NewDense(g1.NumNodes(), g2.NumNodes())
	if err != nil {
		return nil, fmt.Errorf("ReadSimilarity: %w", err)
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
		if len(f) != 3 {
			return nil, fmt.Errorf("ReadSimilarity: line %d: %w", line, graph.ErrMalformedLine)
		}
		i, ok := g1.Index(f[0])
		if !ok {
			return nil, fmt.Errorf("ReadSimilarity: line %d: G1 %q: %w", line, f[0], graph.ErrNodeNotFound)
		}
		j, ok := g2.Index(f[1])
		if !ok {
			return nil, fmt.Errorf("ReadSimilarity: line %d: G2 %q: %w", line, f[1], graph.ErrNodeNotFound)
		}
		v, err := strconv.ParseFloat(f[2], 64)
		if err != nil {
			return nil, fmt.Errorf("ReadSimilarity: line %d: %w", line, graph.ErrMalformedLine)
		}
		if err = m.Set(i, j, v); err != nil {
			return nil, fmt.Errorf("ReadSimilarity: line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ReadSimilarity: %w", err)
	}

	return m, nil
}
