// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/katalvlaran/netalign/sana"
)

// Command words accepted on stdin while a search is paused.
const (
	cmdContinue = "continue"
	cmdQuit     = "quit"
)

// interact maps SIGINT and stdin command words onto ctrl until ctx ends.
func interact(ctx context.Context, ctrl *sana.Controller, stdin io.Reader, logger *slog.Logger) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	lines := make(chan string)
	go func() {
		sc := bufio.NewScanner(stdin)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			ctrl.Interrupt()
			if ctrl.Stopped() {
				logger.Warn("interrupted again; finishing with the best alignment so far")
				return
			}
			logger.Warn(`paused; type "continue" to resume or "quit" to finish`)
		case line := <-lines:
			if !command(ctrl, line, logger) {
				return
			}
		}
	}
}

// command applies one stdin line and reports whether to keep listening.
func command(ctrl *sana.Controller, line string, logger *slog.Logger) bool {
	switch w := strings.ToLower(strings.TrimSpace(line)); w {
	case "":
	case cmdContinue, "c":
		if ctrl.Paused() {
			ctrl.Resume()
			logger.Info("resumed")
		}
	case cmdQuit, "q":
		ctrl.Stop()
		logger.Info("finishing with the best alignment so far")
		return false
	default:
		logger.Warn("unknown command", slog.String("command", w),
			slog.String("want", cmdContinue+"|"+cmdQuit))
	}

	return true
}
