// SPDX-License-Identifier: MIT
// File: controller.go
// Role: cooperative pause/resume/stop for running loops.
//
// Runs poll a single atomic flag once per iteration, so commands take effect
// at the next iteration boundary. One Controller may drive several runs.

package sana

import (
	"sync"
	"sync/atomic"
)

// State is the lifecycle state of a run.
type State int32

const (
	StateInitializing State = iota
	StateRunning
	StatePaused
	StateFinished
)

var stateNames = [...]string{"initializing", "running", "paused", "finished"}

// String implements fmt.Stringer.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}

	return stateNames[s]
}

// Controller delivers pause, resume and stop commands to runs.
type Controller struct {
	mu      sync.Mutex
	paused  bool
	stopped bool
	wake    chan struct{}
	flag    atomic.Bool // paused || stopped
}

// NewController returns a controller in the running position.
func NewController() *Controller {
	return &Controller{wake: make(chan struct{})}
}

// Pause asks runs to pause at the next iteration. No-op after Stop.
func (c *Controller) Pause() {
	c.mu.Lock()
	if !c.stopped {
		c.paused = true
	}
	c.signalLocked()
	c.mu.Unlock()
}

// Resume releases paused runs.
func (c *Controller) Resume() {
	c.mu.Lock()
	c.paused = false
	c.signalLocked()
	c.mu.Unlock()
}

// Stop asks runs to finish; it is permanent.
func (c *Controller) Stop() {
	c.mu.Lock()
	c.stopped, c.paused = true, false
	c.signalLocked()
	c.mu.Unlock()
}

// Interrupt pauses a running controller and stops a paused one, which maps
// the first and second interrupt signal of an interactive session.
func (c *Controller) Interrupt() {
	c.mu.Lock()
	if c.paused {
		c.stopped, c.paused = true, false
	} else if !c.stopped {
		c.paused = true
	}
	c.signalLocked()
	c.mu.Unlock()
}

// Paused reports whether a pause is in effect.
func (c *Controller) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.paused
}

// Stopped reports whether Stop was called.
func (c *Controller) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stopped
}

func (c *Controller) signalLocked() {
	c.flag.Store(c.paused || c.stopped)
	close(c.wake)
	c.wake = make(chan struct{})
}

// pending is the hot-path check.
func (c *Controller) pending() bool { return c.flag.Load() }

// await blocks while paused and reports whether the run must stop.
func (c *Controller) await() bool {
	for {
		c.mu.Lock()
		if c.stopped {
			c.mu.Unlock()
			return true
		}
		if !c.paused {
			c.mu.Unlock()
			return false
		}
		ch := c.wake
		c.mu.Unlock()
		<-ch
	}
}
