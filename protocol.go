// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

// Unit is the value carried by Start/Just/Then when an operation produces
// no meaningful result: Terminal[Unit].Start(Unit{}) is "done, no value".
type Unit struct{}

// Terminal is the downstream end of a single-value stage: the stage calls
// exactly one of Start, Fail, or Stop exactly once over its lifetime.
// Calling a second terminal method is an Internal contract violation.
type Terminal[V any] interface {
	// Start delivers the stage's value on success.
	Start(v V)
	// Fail delivers a Cause-wrapped error. Always check errors.As/errors.Is
	// against UserRaised/Stopped/Internal rather than comparing err directly.
	Fail(err error)
	// Stop delivers cancellation: the stage was interrupted before it could
	// produce a value or an error.
	Stop()
}

// Upstream is the control surface a StreamTerminal uses to pace a stream:
// Next requests the next Body (or Ended/Fail/Stop), Done tells the stream
// to wind down early without waiting for more Body deliveries.
type Upstream interface {
	Next()
	Done()
}

// StreamTerminal is the downstream end of a stream stage. Exactly one
// Begin precedes zero or more Body deliveries, followed by exactly one of
// Ended, Fail, or Stop.
type StreamTerminal[V any] interface {
	// Begin hands the terminal an Upstream it uses to pull Body values.
	Begin(upstream Upstream)
	// Body delivers one element. The stream does not deliver the next
	// element (or a terminal message) until Upstream.Next is called again.
	Body(v V)
	// Ended signals the stream is exhausted with no error or interruption.
	Ended()
	Fail(err error)
	Stop()
}

// Registrable is implemented by every stage so the composition algebra can
// thread a single Interrupt through an entire pipeline at Build time.
type Registrable interface {
	Register(i *Interrupt)
}

// terminalGuard enforces "exactly one terminal message" for a single-value
// stage. Embed it in a stage's state and call enter before delivering any
// of Start/Fail/Stop; a stage that ignores the result and delivers anyway
// has a bug, not a runtime condition — hence failInternal rather than a
// returned error.
type terminalGuard struct {
	done bool
}

// enter reports whether this is the first terminal delivery. Stages call
// it unconditionally; a false return means the caller already violated the
// protocol and should not proceed to deliver anything further.
func (g *terminalGuard) enter() bool {
	if g.done {
		return false
	}
	g.done = true
	return true
}

// requireFirst panics with an Internal cause if this is not the first
// terminal delivery for the stage. Stages that cannot tolerate a silent
// double-delivery (most leaves) call this instead of checking enter's
// return value themselves.
func (g *terminalGuard) requireFirst(method string) {
	if !g.enter() {
		failInternal("eventual: %s called after stage already terminated", method)
	}
}

// streamGuard enforces "at most one Begin, then Body* followed by exactly
// one of Ended/Fail/Stop" for a stream stage.
type streamGuard struct {
	began bool
	done  bool
}

func (g *streamGuard) enterBegin() bool {
	if g.began {
		return false
	}
	g.began = true
	return true
}

func (g *streamGuard) requireBegin() {
	if !g.enterBegin() {
		failInternal("eventual: Begin called twice on the same stream stage")
	}
}

func (g *streamGuard) requireBody() {
	if !g.began || g.done {
		failInternal("eventual: Body delivered outside Begin..Ended window")
	}
}

func (g *streamGuard) requireTerminal(method string) {
	if g.done {
		failInternal("eventual: %s called after stream already terminated", method)
	}
	g.done = true
}
