// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

// Just constructs an Expression that immediately delivers v on Start,
// with no suspension — the Expression-level analogue of lifting a pure
// value into a monad.
func Just[V any](v V) Expression[V] {
	return func(downstream TerminalStage[V]) Runnable {
		return &justStage[V]{v: v, downstream: downstream}
	}
}

type justStage[V any] struct {
	v          V
	downstream TerminalStage[V]
}

func (s *justStage[V]) Register(i *Interrupt) { s.downstream.Register(i) }
func (s *justStage[V]) Start()                { s.downstream.Start(s.v) }

// Raise constructs an Expression that immediately fails with err, wrapped
// as a UserRaised Cause. V is the value type the rest of the chain expects
// — Raise never produces a value, only a Fail.
func Raise[V any](err error) Expression[V] {
	return func(downstream TerminalStage[V]) Runnable {
		return &raiseStage[V]{err: asUserRaised(err), downstream: downstream}
	}
}

type raiseStage[V any] struct {
	err        Cause
	downstream TerminalStage[V]
}

func (s *raiseStage[V]) Register(i *Interrupt) { s.downstream.Register(i) }
func (s *raiseStage[V]) Start()                { s.downstream.Fail(s.err) }
