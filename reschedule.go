// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

// RescheduleAfter wraps e so that the Context current when its entry
// point is reached is the Context its completion is delivered on: if
// e's terminal delivery happens on a different scheduler (because e
// suspended and resumed on, say, an EventLoop goroutine), delivery hops
// back via Submit instead of firing straight through on whatever
// goroutine e actually settled on. If the captured Context is still
// current (or none was captured), delivery happens inline.
//
// This is the mechanism by which a suspension point reached from an
// EventLoop callback — a fired Timer, a delivered Signal — returns control
// to the context that originally started the pipeline, rather than
// leaving the rest of the chain running on the loop's own goroutine.
func RescheduleAfter[V any](e Expression[V]) Expression[V] {
	return func(downstream TerminalStage[V]) Runnable {
		return &rescheduleStage[V]{e: e, downstream: downstream}
	}
}

type rescheduleStage[V any] struct {
	e          Expression[V]
	downstream TerminalStage[V]
	interrupt  *Interrupt
}

func (s *rescheduleStage[V]) Register(i *Interrupt) {
	s.downstream.Register(i)
	s.interrupt = i
}

func (s *rescheduleStage[V]) Start() {
	startRescheduled(Current(), s.e, s.downstream, s.interrupt)
}

// startRescheduled builds and starts e with a terminal that routes its
// Start/Fail/Stop back onto ctx. Factored out so Schedule can capture ctx
// itself, before deciding whether entry needs a Submit hop, rather than
// letting RescheduleAfter capture it again after the hop already moved
// execution onto the loop goroutine.
func startRescheduled[V any](ctx *Context, e Expression[V], downstream TerminalStage[V], interrupt *Interrupt) {
	stage := e(&rescheduleTerminal[V]{ctx: ctx, downstream: downstream})
	if interrupt != nil {
		stage.Register(interrupt)
	}
	stage.Start()
}

// rescheduleTerminal intercepts e's terminal delivery and routes it back
// onto ctx, the Context captured when the wrapping stage was entered.
type rescheduleTerminal[V any] struct {
	ctx        *Context
	downstream TerminalStage[V]
}

func (t *rescheduleTerminal[V]) Register(i *Interrupt) { t.downstream.Register(i) }

func (t *rescheduleTerminal[V]) Start(v V) {
	t.deliver(func() { t.downstream.Start(v) })
}

func (t *rescheduleTerminal[V]) Fail(err error) {
	t.deliver(func() { t.downstream.Fail(err) })
}

func (t *rescheduleTerminal[V]) Stop() {
	t.deliver(func() { t.downstream.Stop() })
}

func (t *rescheduleTerminal[V]) deliver(notify func()) {
	if t.ctx == nil || t.ctx.Scheduler.Continuable(t.ctx) {
		notify()
		return
	}
	t.ctx.Scheduler.Submit(t.ctx.Name, notify)
}

// RescheduleAfterStream is the stream analogue of RescheduleAfter: Begin,
// each Body, and the terminal Ended/Fail/Stop all hop back onto the
// Context captured at entry.
func RescheduleAfterStream[V any](e StreamExpression[V]) StreamExpression[V] {
	return func(downstream StreamTerminalStage[V]) Runnable {
		return &rescheduleStreamStage[V]{e: e, downstream: downstream}
	}
}

type rescheduleStreamStage[V any] struct {
	e          StreamExpression[V]
	downstream StreamTerminalStage[V]
	interrupt  *Interrupt
}

func (s *rescheduleStreamStage[V]) Register(i *Interrupt) {
	s.downstream.Register(i)
	s.interrupt = i
}

func (s *rescheduleStreamStage[V]) Start() {
	startRescheduledStream(Current(), s.e, s.downstream, s.interrupt)
}

func startRescheduledStream[V any](ctx *Context, e StreamExpression[V], downstream StreamTerminalStage[V], interrupt *Interrupt) {
	stage := e(&rescheduleStreamTerminal[V]{ctx: ctx, downstream: downstream})
	if interrupt != nil {
		stage.Register(interrupt)
	}
	stage.Start()
}

type rescheduleStreamTerminal[V any] struct {
	ctx        *Context
	downstream StreamTerminalStage[V]
}

func (t *rescheduleStreamTerminal[V]) Register(i *Interrupt) { t.downstream.Register(i) }

func (t *rescheduleStreamTerminal[V]) Begin(upstream Upstream) {
	t.deliver(func() { t.downstream.Begin(upstream) })
}

func (t *rescheduleStreamTerminal[V]) Body(v V) {
	t.deliver(func() { t.downstream.Body(v) })
}

func (t *rescheduleStreamTerminal[V]) Ended() {
	t.deliver(func() { t.downstream.Ended() })
}

func (t *rescheduleStreamTerminal[V]) Fail(err error) {
	t.deliver(func() { t.downstream.Fail(err) })
}

func (t *rescheduleStreamTerminal[V]) Stop() {
	t.deliver(func() { t.downstream.Stop() })
}

func (t *rescheduleStreamTerminal[V]) deliver(notify func()) {
	if t.ctx == nil || t.ctx.Scheduler.Continuable(t.ctx) {
		notify()
		return
	}
	t.ctx.Scheduler.Submit(t.ctx.Name, notify)
}
