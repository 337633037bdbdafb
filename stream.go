// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

// StreamSteps are the two operations a stream leaf implements: Next is
// invoked once per upstream Next() call and must deliver exactly one of
// downstream.Body, downstream.Ended, downstream.Fail, or downstream.Stop;
// Done is invoked when the downstream calls Done() to wind the stream
// down early, and likewise must finish with exactly one terminal
// delivery (typically Ended, for a graceful drain).
type StreamSteps[V any] struct {
	Next func(downstream StreamTerminal[V])
	Done func(downstream StreamTerminal[V])
}

// Stream is the general stream leaf combinator: the source-of-values
// analogue of Eventual. Iterate and Range are both expressed in terms of
// it.
func Stream[V any](steps StreamSteps[V]) StreamExpression[V] {
	return func(downstream StreamTerminalStage[V]) Runnable {
		return &streamStage[V]{steps: steps, downstream: downstream}
	}
}

type streamStage[V any] struct {
	steps      StreamSteps[V]
	downstream StreamTerminalStage[V]
	interrupt  *Interrupt
	guard      streamGuard
}

func (s *streamStage[V]) Register(i *Interrupt) {
	s.downstream.Register(i)
	s.interrupt = i
}

func (s *streamStage[V]) Start() {
	s.guard.requireBegin()
	s.downstream.Begin(s)
}

// Next implements Upstream: the downstream calls this to pull the next
// element.
func (s *streamStage[V]) Next() {
	s.steps.Next(s.downstream)
}

// Done implements Upstream: the downstream calls this to wind the stream
// down early.
func (s *streamStage[V]) Done() {
	s.steps.Done(s.downstream)
}
