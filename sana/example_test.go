// SPDX-License-Identifier: MIT

package sana_test

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/netalign/builder"
	"github.com/katalvlaran/netalign/measure"
	"github.com/katalvlaran/netalign/sana"
)

// ExampleAnnealer_Run aligns a 4-cycle onto itself with a fixed schedule.
func ExampleAnnealer_Run() {
	c4, err := builder.BuildGraph(nil, builder.Cycle(4))
	if err != nil {
		fmt.Println(err)
		return
	}
	const iters = 20_000
	an, err := sana.New(c4, c4, measure.Objective{Weights: measure.Weights{EC: 1}},
		sana.WithIterations(iters), sana.WithSchedule(1, math.Log(1e6)/iters), sana.WithSeed(5))
	if err != nil {
		fmt.Println(err)
		return
	}

	res, err := an.Run(context.Background())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("EC=%.2f aligned=%d state=%s\n", res.Components.EC, res.Counts.AligEdges, res.State)
	// Output: EC=1.00 aligned=4 state=finished
}
