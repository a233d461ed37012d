// Package gate provides the run-once latch that keeps a dependency sweep from
// repeating within one tool invocation.
package gate

import (
	"sync"
	"sync/atomic"
)

// Gate records whether a full sweep already ran. The zero value is ready to
// use. Share one Gate between every checker that belongs to the same
// invocation; tests hold their own.
type Gate struct {
	ran   atomic.Bool
	sweep sync.Mutex
}

// New returns an open gate.
func New() *Gate {
	return &Gate{}
}

// ShouldRun reports whether a sweep is still due.
func (g *Gate) ShouldRun() bool {
	return !g.ran.Load()
}

// MarkRun closes the gate. A sweep counts as run whether or not it found
// unsatisfied dependencies.
func (g *Gate) MarkRun() {
	g.ran.Store(true)
}

// Reset reopens the gate, e.g. after an install step.
func (g *Gate) Reset() {
	g.ran.Store(false)
}

// Run executes fn and closes the gate unless the gate is already closed.
// Concurrent callers are serialized; the losers observe the closed gate and
// return false without calling fn.
func (g *Gate) Run(fn func()) bool {
	g.sweep.Lock()
	defer g.sweep.Unlock()

	if !g.ShouldRun() {
		return false
	}
	fn()
	g.MarkRun()
	return true
}
