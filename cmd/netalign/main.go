// SPDX-License-Identifier: MIT

// Command netalign aligns two networks by simulated annealing.
//
//	netalign align --g1 yeast.el --g2 human.el --ec 1 --s3 1 --time 10m -o out.align.zst
//	netalign calibrate --g1 yeast.el --g2 human.el --compare
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
