// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

// Map applies a pure function to every element of a stream. Map does not
// intercept Next/Done pacing at all, it only transforms what passes
// through Body, so it hands the downstream its Upstream directly
// in Begin.
func Map[V, W any](upstream StreamExpression[V], f func(V) W) StreamExpression[W] {
	return PipeStream(upstream, func(downstream StreamTerminalStage[W]) StreamTerminalStage[V] {
		return &mapTerminal[V, W]{f: f, downstream: downstream}
	})
}

type mapTerminal[V, W any] struct {
	f          func(V) W
	downstream StreamTerminalStage[W]
}

func (t *mapTerminal[V, W]) Begin(upstream Upstream) { t.downstream.Begin(upstream) }
func (t *mapTerminal[V, W]) Body(v V)                { t.downstream.Body(t.f(v)) }
func (t *mapTerminal[V, W]) Ended()                  { t.downstream.Ended() }
func (t *mapTerminal[V, W]) Fail(err error)          { t.downstream.Fail(err) }
func (t *mapTerminal[V, W]) Stop()                   { t.downstream.Stop() }
func (t *mapTerminal[V, W]) Register(i *Interrupt)   { t.downstream.Register(i) }
