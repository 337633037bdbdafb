// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

import "sync/atomic"

// Scheduler abstracts "where a continuation resumes". EventLoop is the
// only non-trivial implementation in this package; InlineScheduler is the
// default used when a pipeline is run without an explicit loop.
type Scheduler interface {
	// Submit enqueues callback to run on this scheduler, tagged with name
	// for diagnostics (EventLoop surfaces it through SLogger).
	Submit(name string, callback func())
	// Continuable reports whether ctx names the context currently
	// executing on this scheduler — the scheduler-affinity check
	// RescheduleAfter uses to decide whether a hop through Submit is
	// needed at all.
	Continuable(ctx *Context) bool
}

// Context names a point of scheduling affinity: a Scheduler plus whatever
// identifies "this particular continuation" to that scheduler. Stages
// capture the ambient Context at the point they suspend so they can
// resume on the same scheduler later (see RescheduleAfter).
type Context struct {
	Scheduler Scheduler
	Name      string
}

// current holds the Context active on the call stack presently executing
// inside a scheduler's Submit callback. There is exactly one such call
// stack at a time per scheduler by construction (EventLoop runs its
// callbacks on a single dedicated goroutine), so a single package-level
// atomic pointer is enough — no goroutine-local storage emulation needed.
var current atomic.Pointer[Context]

// Switch installs ctx as current, returning a restore function that puts
// the previous value back. Callers use it as a scoped guard:
//
//	defer Switch(ctx)()
func Switch(ctx *Context) func() {
	previous := current.Swap(ctx)
	return func() {
		current.Store(previous)
	}
}

// Current returns the Context installed by the innermost active Switch,
// or nil if none is installed.
func Current() *Context {
	return current.Load()
}

// InlineScheduler runs every Submit synchronously on the calling
// goroutine. It is the default scheduler for pipelines built and started
// directly, without an EventLoop (e.g. in tests, or via Promisify driven
// by hand).
type InlineScheduler struct{}

func (InlineScheduler) Submit(_ string, callback func()) { callback() }

func (InlineScheduler) Continuable(*Context) bool { return true }
