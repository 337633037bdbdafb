// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

// Then sequences e with a continuation f that receives e's value and
// produces the next Expression. This is the library's primary composition
// combinator — a monadic bind generalized from "answer type" to
// "downstream pipeline stage". Fail and Stop bypass f entirely and
// propagate straight to the downstream terminal; only the success path
// gets intercepted.
func Then[V, W any](e Expression[V], f func(V) Expression[W]) Expression[W] {
	return func(downstream TerminalStage[W]) Runnable {
		return e(&thenTerminal[V, W]{f: f, downstream: downstream})
	}
}

// thenTerminal adapts a TerminalStage[W] into a TerminalStage[V]: on
// Start(v) it builds f(v), registers the ambient interrupt into the newly
// built stage (since the stage didn't exist at the time the outer Build
// call threaded the interrupt through the static chain), and starts it.
type thenTerminal[V, W any] struct {
	f          func(V) Expression[W]
	downstream TerminalStage[W]
	interrupt  *Interrupt
}

func (t *thenTerminal[V, W]) Start(v V) {
	next := t.f(v)
	stage := next(t.downstream)
	if t.interrupt != nil {
		stage.Register(t.interrupt)
	}
	stage.Start()
}

func (t *thenTerminal[V, W]) Fail(err error) { t.downstream.Fail(err) }
func (t *thenTerminal[V, W]) Stop()          { t.downstream.Stop() }

func (t *thenTerminal[V, W]) Register(i *Interrupt) {
	t.downstream.Register(i)
	t.interrupt = i
}
