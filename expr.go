// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

// Expression[V] is an unbuilt single-value pipeline stage: a function from
// "whatever comes after this stage" to a Runnable ready to Start. Wiring a
// continuation k into an expression e produces something you can Start.
//
// TerminalStage is Terminal[V] plus Registrable: every internal downstream
// in a composed chain must also accept interrupt registration, even when
// registration is a no-op, so Register can cascade through an entire
// built chain regardless of how deep it is.
type Expression[V any] func(downstream TerminalStage[V]) Runnable

// StreamExpression[V] is the stream analogue of Expression[V].
type StreamExpression[V any] func(downstream StreamTerminalStage[V]) Runnable

// TerminalStage is a single-value Terminal that also accepts interrupt
// registration, letting Register cascade through an entire built chain
// before each stage installs its own handlers.
type TerminalStage[V any] interface {
	Terminal[V]
	Registrable
}

// StreamTerminalStage is the stream analogue of TerminalStage.
type StreamTerminalStage[V any] interface {
	StreamTerminal[V]
	Registrable
}

// Runnable is a fully wired stage: Register has threaded an Interrupt
// through it (or will, via Build), and Start begins execution.
type Runnable interface {
	Registrable
	Start()
}

// noopRegister is embedded by leaf downstream adapters that have nothing
// below them to forward registration to.
type noopRegister struct{}

func (noopRegister) Register(*Interrupt) {}
