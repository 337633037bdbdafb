// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

// Eventual is the general single-value leaf combinator: fn receives the
// downstream Terminal and an Interrupt it may register handlers on, and
// is responsible for eventually calling exactly one of downstream's
// Start/Fail/Stop — directly, or later from a callback submitted to some
// Scheduler. Every other single-value leaf (Just, Raise, Timer, Signal) is
// expressible in terms of Eventual; it is kept as its own combinator
// because most real leaves need the Interrupt, which Just/Raise don't.
func Eventual[V any](fn func(downstream Terminal[V], interrupt *Interrupt)) Expression[V] {
	return func(downstream TerminalStage[V]) Runnable {
		return &eventualStage[V]{fn: fn, downstream: downstream}
	}
}

type eventualStage[V any] struct {
	fn         func(Terminal[V], *Interrupt)
	downstream TerminalStage[V]
	interrupt  *Interrupt
}

func (s *eventualStage[V]) Register(i *Interrupt) {
	s.downstream.Register(i)
	s.interrupt = i
}

func (s *eventualStage[V]) Start() {
	s.fn(s.downstream, s.interrupt)
}
