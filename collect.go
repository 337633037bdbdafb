// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

// Collect drains a stream into a single slice value, delivered once the
// stream Ends. S is constrained to slice types (~[]E) rather than any
// accumulator; a general reducer belongs to a future Fold combinator, not
// to Collect.
//
// Collect pulls eagerly: it calls Next immediately on Begin and again after
// every Body, so the upstream is driven to completion without the
// downstream doing anything beyond waiting for Start.
func Collect[S ~[]E, E any](upstream StreamExpression[E]) Expression[S] {
	return func(downstream TerminalStage[S]) Runnable {
		return &collectStage[S, E]{downstream: downstream, upstream: upstream}
	}
}

type collectStage[S ~[]E, E any] struct {
	downstream TerminalStage[S]
	upstream   StreamExpression[E]

	values    S
	interrupt *Interrupt
	guard     terminalGuard
}

func (s *collectStage[S, E]) Register(i *Interrupt) {
	s.downstream.Register(i)
	s.interrupt = i
}

func (s *collectStage[S, E]) Start() {
	stage := s.upstream(toStreamTerminalStage[E](&collectTerminal[S, E]{collect: s}))
	if s.interrupt != nil {
		stage.Register(s.interrupt)
	}
	stage.Start()
}

type collectTerminal[S ~[]E, E any] struct {
	collect  *collectStage[S, E]
	upstream Upstream
}

func (t *collectTerminal[S, E]) Begin(upstream Upstream) {
	t.upstream = upstream
	upstream.Next()
}

func (t *collectTerminal[S, E]) Body(v E) {
	t.collect.values = append(t.collect.values, v)
	t.upstream.Next()
}

func (t *collectTerminal[S, E]) Ended() {
	t.collect.guard.requireFirst("Start")
	if t.collect.values == nil {
		t.collect.values = make(S, 0)
	}
	t.collect.downstream.Start(t.collect.values)
}

func (t *collectTerminal[S, E]) Fail(err error) {
	t.collect.guard.requireFirst("Fail")
	t.collect.downstream.Fail(err)
}

func (t *collectTerminal[S, E]) Stop() {
	t.collect.guard.requireFirst("Stop")
	t.collect.downstream.Stop()
}
