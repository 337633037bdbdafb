// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

// FlatMap replaces each outer element with a stream produced by f and
// splices that inner stream's elements into the outer stream, in order,
// never running two inner streams concurrently. Body builds and starts
// the inner stream; the inner's Begin immediately pulls its first
// element; the inner's Ended resumes the outer stream (or finishes it, if
// Done had already been called downstream).
func FlatMap[V, W any](upstream StreamExpression[V], f func(V) StreamExpression[W]) StreamExpression[W] {
	return PipeStream(upstream, func(downstream StreamTerminalStage[W]) StreamTerminalStage[V] {
		return &flatMapOuter[V, W]{f: f, downstream: downstream}
	})
}

type flatMapOuter[V, W any] struct {
	f          func(V) StreamExpression[W]
	downstream StreamTerminalStage[W]

	outer Upstream
	inner Upstream

	interrupt *Interrupt
	done      bool
}

func (o *flatMapOuter[V, W]) Begin(upstream Upstream) {
	o.outer = upstream
	o.downstream.Begin(o)
}

func (o *flatMapOuter[V, W]) Body(v V) {
	innerExpr := o.f(v)
	adaptor := &flatMapInner[V, W]{outer: o}
	stage := innerExpr(adaptor)
	if o.interrupt != nil {
		stage.Register(o.interrupt)
	}
	stage.Start()
}

func (o *flatMapOuter[V, W]) Ended()                { o.downstream.Ended() }
func (o *flatMapOuter[V, W]) Fail(err error)        { o.downstream.Fail(err) }
func (o *flatMapOuter[V, W]) Stop()                 { o.downstream.Stop() }
func (o *flatMapOuter[V, W]) Register(i *Interrupt) { o.downstream.Register(i); o.interrupt = i }

// Next/Done implement Upstream: the downstream pulls the flattened stream
// through o, which routes to whichever of outer/inner is presently live.
func (o *flatMapOuter[V, W]) Next() {
	if o.inner != nil {
		o.inner.Next()
		return
	}
	o.outer.Next()
}

func (o *flatMapOuter[V, W]) Done() {
	o.done = true
	if o.inner != nil {
		o.inner.Done()
		return
	}
	o.outer.Done()
}

// flatMapInner is the downstream for one inner stream, splicing its Body
// deliveries straight into the outer's downstream and resuming the outer
// stream once the inner one ends.
type flatMapInner[V, W any] struct {
	outer *flatMapOuter[V, W]
}

func (a *flatMapInner[V, W]) Begin(upstream Upstream) {
	a.outer.inner = upstream
	upstream.Next()
}

func (a *flatMapInner[V, W]) Body(v W) { a.outer.downstream.Body(v) }

func (a *flatMapInner[V, W]) Ended() {
	a.outer.inner = nil
	if a.outer.done {
		a.outer.outer.Done()
		return
	}
	a.outer.outer.Next()
}

func (a *flatMapInner[V, W]) Fail(err error) { a.outer.downstream.Fail(err) }
func (a *flatMapInner[V, W]) Stop()          { a.outer.downstream.Stop() }

// Register is a no-op: the inner stage was already registered against the
// outer's Interrupt when it was built in flatMapOuter.Body.
func (a *flatMapInner[V, W]) Register(*Interrupt) {}
