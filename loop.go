// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

// Loop drains a stream for its side effects alone: it requests each element
// via Next and drops it, finishing with Start(Unit{}) on Ended. Where
// Collect accumulates, Loop discards — the stream-to-value combinator for
// pipelines built purely to drive Body callbacks (logging, counting,
// committing) rather than to produce a result.
func Loop[V any](upstream StreamExpression[V]) Expression[Unit] {
	return func(downstream TerminalStage[Unit]) Runnable {
		return &loopStage[V]{downstream: downstream, upstream: upstream}
	}
}

type loopStage[V any] struct {
	downstream TerminalStage[Unit]
	upstream   StreamExpression[V]
	interrupt  *Interrupt
	guard      terminalGuard
}

func (s *loopStage[V]) Register(i *Interrupt) {
	s.downstream.Register(i)
	s.interrupt = i
}

func (s *loopStage[V]) Start() {
	stage := s.upstream(toStreamTerminalStage[V](&loopTerminal[V]{loop: s}))
	if s.interrupt != nil {
		stage.Register(s.interrupt)
	}
	stage.Start()
}

type loopTerminal[V any] struct {
	loop     *loopStage[V]
	upstream Upstream
}

func (t *loopTerminal[V]) Begin(upstream Upstream) {
	t.upstream = upstream
	upstream.Next()
}

func (t *loopTerminal[V]) Body(V) { t.upstream.Next() }

func (t *loopTerminal[V]) Ended() {
	t.loop.guard.requireFirst("Start")
	t.loop.downstream.Start(Unit{})
}

func (t *loopTerminal[V]) Fail(err error) {
	t.loop.guard.requireFirst("Fail")
	t.loop.downstream.Fail(err)
}

func (t *loopTerminal[V]) Stop() {
	t.loop.guard.requireFirst("Stop")
	t.loop.downstream.Stop()
}
