// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

// Pipe is the low-level composition primitive most stream and value
// combinators are built from: it wires an upstream Expression directly to
// a downstream adapter that unifies the downstream's terminal type with
// the upstream's value type.
func Pipe[V, W any](upstream Expression[V], adapt func(downstream TerminalStage[W]) TerminalStage[V]) Expression[W] {
	return func(downstream TerminalStage[W]) Runnable {
		return upstream(adapt(downstream))
	}
}

// PipeStream is the stream-to-stream analogue of Pipe.
func PipeStream[V, W any](upstream StreamExpression[V], adapt func(downstream StreamTerminalStage[W]) StreamTerminalStage[V]) StreamExpression[W] {
	return func(downstream StreamTerminalStage[W]) Runnable {
		return upstream(adapt(downstream))
	}
}

// plainTerminalStage adapts a bare Terminal[V] (no Registrable) into a
// TerminalStage[V] with a no-op Register, for use at the very bottom of a
// chain where there is nothing further to cascade registration into.
type plainTerminalStage[V any] struct {
	Terminal[V]
	noopRegister
}

func toTerminalStage[V any](t Terminal[V]) TerminalStage[V] {
	if ts, ok := t.(TerminalStage[V]); ok {
		return ts
	}
	return plainTerminalStage[V]{Terminal: t}
}

type plainStreamTerminalStage[V any] struct {
	StreamTerminal[V]
	noopRegister
}

func toStreamTerminalStage[V any](t StreamTerminal[V]) StreamTerminalStage[V] {
	if ts, ok := t.(StreamTerminalStage[V]); ok {
		return ts
	}
	return plainStreamTerminalStage[V]{StreamTerminal: t}
}

// Build wires e to downstream, threads a fresh Interrupt through the whole
// chain via Register, and returns the Runnable plus that Interrupt so the
// caller can cancel the pipeline later.
func Build[V any](e Expression[V], downstream Terminal[V]) (Runnable, *Interrupt) {
	stage := e(toTerminalStage(downstream))
	interrupt := NewInterrupt()
	stage.Register(interrupt)
	return stage, interrupt
}

// BuildStream is the stream analogue of Build.
func BuildStream[V any](e StreamExpression[V], downstream StreamTerminal[V]) (Runnable, *Interrupt) {
	stage := e(toStreamTerminalStage(downstream))
	interrupt := NewInterrupt()
	stage.Register(interrupt)
	return stage, interrupt
}
