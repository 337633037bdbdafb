// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

// ConcurrentOption configures a Concurrent/ConcurrentOrdered fan-out.
type ConcurrentOption func(*concurrentConfig)

type concurrentConfig struct {
	limit int
}

// WithFiberLimit caps the number of fibers running at once. Fan-out is
// unbounded by default; this option exists for callers who need to bound
// it, and is never applied unless given explicitly.
func WithFiberLimit(n int) ConcurrentOption {
	return func(c *concurrentConfig) { c.limit = n }
}

// Concurrent spawns one fiber per upstream element, running f(x), and
// re-emits every fiber's output bodies downstream in completion order.
func Concurrent[V, W any](upstream StreamExpression[V], f func(V) StreamExpression[W], opts ...ConcurrentOption) StreamExpression[W] {
	return newConcurrent(upstream, f, false, opts)
}

// ConcurrentOrdered is Concurrent, except downstream sees fiber outputs in
// spawn order: a fiber that finishes early buffers its output until every
// earlier-spawned fiber has drained.
func ConcurrentOrdered[V, W any](upstream StreamExpression[V], f func(V) StreamExpression[W], opts ...ConcurrentOption) StreamExpression[W] {
	return newConcurrent(upstream, f, true, opts)
}

func newConcurrent[V, W any](upstream StreamExpression[V], f func(V) StreamExpression[W], ordered bool, opts []ConcurrentOption) StreamExpression[W] {
	cfg := &concurrentConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return PipeStream(upstream, func(downstream StreamTerminalStage[W]) StreamTerminalStage[V] {
		return &concurrentMerge[V, W]{
			f:          f,
			downstream: downstream,
			ordered:    ordered,
			limit:      cfg.limit,
			fibers:     make(map[int]*concurrentFiber),
			results:    make(map[int]*concurrentResult[W]),
		}
	})
}

// concurrentFiber tracks one spawned element's fan-out unit: its spawn
// index (for ordered re-merge and first-failure tie-break), its own
// Interrupt (so the composite can cancel it individually), a done channel
// closed when its goroutine exits, and the Cause it finished with, if any.
type concurrentFiber struct {
	index     int
	interrupt *Interrupt
	done      chan struct{}
	cause     Cause
	pooled    bool
}

type concurrentResult[W any] struct {
	values []W
	cause  Cause
}

const (
	concurrentCmdBody = iota
	concurrentCmdEnded
	concurrentCmdFail
	concurrentCmdStop
	concurrentCmdNext
	concurrentCmdDone
	concurrentCmdFiberDone
)

type concurrentCmd[V, W any] struct {
	kind   int
	v      V
	err    error
	idx    int
	values []W
	cause  Cause
}

// concurrentMerge is both ends of the fan-out: StreamTerminalStage[V]
// toward the upstream being fanned out, and Upstream toward the downstream
// consuming the merged output. All mutable state lives on a single
// goroutine (run) reached only through the cmds channel, so the composite
// needs no locking despite being driven from the upstream side, the
// downstream side, and every fiber goroutine concurrently.
type concurrentMerge[V, W any] struct {
	f          func(V) StreamExpression[W]
	downstream StreamTerminalStage[W]
	ordered    bool
	limit      int

	upstream  Upstream
	interrupt *Interrupt
	cmds      chan concurrentCmd[V, W]

	nextIndex int
	inflight  int
	fibers    map[int]*concurrentFiber

	results    map[int]*concurrentResult[W]
	ready      []int // unordered completion-order queue
	emitCursor int   // ordered: next spawn index due

	current    []W
	currentPos int

	wantNext      bool
	upstreamDone  bool
	upstreamStop  bool
	fail          Cause
	firstFailIdx  int
	haveFirstFail bool
	finished      bool
}

func (c *concurrentMerge[V, W]) Register(i *Interrupt) {
	c.downstream.Register(i)
	c.interrupt = i
}

func (c *concurrentMerge[V, W]) Begin(upstream Upstream) {
	c.upstream = upstream
	c.cmds = make(chan concurrentCmd[V, W], 16)
	go c.run()
	c.downstream.Begin(c)
}

func (c *concurrentMerge[V, W]) Body(v V) {
	c.cmds <- concurrentCmd[V, W]{kind: concurrentCmdBody, v: v}
}
func (c *concurrentMerge[V, W]) Ended()         { c.cmds <- concurrentCmd[V, W]{kind: concurrentCmdEnded} }
func (c *concurrentMerge[V, W]) Fail(err error) { c.cmds <- concurrentCmd[V, W]{kind: concurrentCmdFail, err: err} }
func (c *concurrentMerge[V, W]) Stop()          { c.cmds <- concurrentCmd[V, W]{kind: concurrentCmdStop} }

// Next/Done implement Upstream toward the real downstream consumer.
func (c *concurrentMerge[V, W]) Next() { c.cmds <- concurrentCmd[V, W]{kind: concurrentCmdNext} }
func (c *concurrentMerge[V, W]) Done() { c.cmds <- concurrentCmd[V, W]{kind: concurrentCmdDone} }

func (c *concurrentMerge[V, W]) run() {
	c.upstream.Next()
	for !c.finished {
		cmd := <-c.cmds
		switch cmd.kind {
		case concurrentCmdBody:
			c.spawnFiber(cmd.v)
			if c.limit <= 0 || c.inflight < c.limit {
				c.upstream.Next()
			}
		case concurrentCmdEnded:
			c.upstreamDone = true
			c.tryEmit()
		case concurrentCmdFail:
			c.upstreamDone = true
			if !c.haveFirstFail {
				c.haveFirstFail = true
				c.fail = toCause(cmd.err)
			}
			c.cancelAll()
			c.tryEmit()
		case concurrentCmdStop:
			c.upstreamDone = true
			c.upstreamStop = true
			c.tryEmit()
		case concurrentCmdNext:
			c.wantNext = true
			c.tryEmit()
		case concurrentCmdDone:
			c.wantNext = true
			c.cancelAll()
			c.upstream.Done()
			c.tryEmit()
		case concurrentCmdFiberDone:
			c.onFiberDone(cmd.idx, cmd.values, cmd.cause)
		}
	}
}

func (c *concurrentMerge[V, W]) spawnFiber(v V) {
	idx := c.nextIndex
	c.nextIndex++
	c.inflight++

	fiber := acquireConcurrentFiber()
	fiber.index = idx
	fiber.interrupt = NewInterrupt()
	fiber.done = make(chan struct{})
	c.fibers[idx] = fiber

	expr := c.f(v)
	go func() {
		values, cause := drainInner(expr, fiber.interrupt)
		close(fiber.done)
		c.cmds <- concurrentCmd[V, W]{kind: concurrentCmdFiberDone, idx: idx, values: values, cause: cause}
	}()
}

func (c *concurrentMerge[V, W]) onFiberDone(idx int, values []W, cause Cause) {
	c.inflight--
	if fiber, ok := c.fibers[idx]; ok {
		fiber.cause = cause
		delete(c.fibers, idx)
		releaseConcurrentFiber(fiber)
	}

	if cause != nil {
		if _, stopped := cause.(Stopped); !stopped {
			c.recordFailure(idx, cause)
			c.cancelAll()
		}
	}

	c.results[idx] = &concurrentResult[W]{values: values, cause: cause}
	if !c.ordered {
		c.ready = append(c.ready, idx)
	}

	if c.limit > 0 && c.inflight < c.limit && !c.upstreamDone {
		c.upstream.Next()
	}

	c.tryEmit()
}

// recordFailure applies the ordered/unordered first-failure tie-break:
// ordered surfaces strictly the first-spawned failing fiber's error;
// unordered surfaces whichever failure it observes first.
func (c *concurrentMerge[V, W]) recordFailure(idx int, cause Cause) {
	if !c.ordered {
		if !c.haveFirstFail {
			c.haveFirstFail = true
			c.fail = cause
		}
		return
	}
	if !c.haveFirstFail || idx < c.firstFailIdx {
		c.haveFirstFail = true
		c.firstFailIdx = idx
		c.fail = cause
	}
}

func (c *concurrentMerge[V, W]) cancelAll() {
	for _, f := range c.fibers {
		f.interrupt.Trigger()
	}
}

// tryEmit delivers at most one downstream message per call, and only when
// wantNext is set (an outstanding Next from the downstream, or Done asking
// for a final terminal message). It skips forward through any fully
// drained buffered blocks before deciding there is nothing ready yet.
func (c *concurrentMerge[V, W]) tryEmit() {
	if !c.wantNext || c.finished {
		return
	}
	for {
		if c.currentPos < len(c.current) {
			v := c.current[c.currentPos]
			c.currentPos++
			c.wantNext = false
			c.downstream.Body(v)
			return
		}

		var idx int
		var res *concurrentResult[W]
		if c.ordered {
			r, ok := c.results[c.emitCursor]
			if !ok {
				break
			}
			idx, res = c.emitCursor, r
			c.emitCursor++
		} else {
			if len(c.ready) == 0 {
				break
			}
			idx = c.ready[0]
			c.ready = c.ready[1:]
			res = c.results[idx]
		}
		delete(c.results, idx)
		c.current = res.values
		c.currentPos = 0
	}

	switch {
	case c.fail != nil:
		c.wantNext = false
		c.finished = true
		c.downstream.Fail(c.fail)
	case c.upstreamStop && c.inflight == 0 && len(c.results) == 0:
		c.wantNext = false
		c.finished = true
		c.downstream.Stop()
	case c.upstreamDone && c.inflight == 0 && len(c.results) == 0:
		c.wantNext = false
		c.finished = true
		c.downstream.Ended()
	}
}

func toCause(err error) Cause {
	if c, ok := AsCause(err); ok {
		return c
	}
	return asUserRaised(err)
}

// drainInner runs expr eagerly to completion — pulling every element as
// soon as it is produced — and returns the collected bodies plus the
// terminal Cause (nil for a clean Ended). Concurrent fibers use this
// rather than streaming element-by-element, trading inner-stream
// backpressure for a single self-contained unit of work per fiber
// goroutine; see DESIGN.md for why that trade is acceptable here.
func drainInner[W any](expr StreamExpression[W], interrupt *Interrupt) ([]W, Cause) {
	term := &drainTerminal[W]{}
	done := make(chan struct{})
	term.finish = func(c Cause) { term.cause = c; close(done) }

	stage := expr(toStreamTerminalStage[W](term))
	if interrupt != nil {
		stage.Register(interrupt)
	}
	stage.Start()
	<-done
	return term.values, term.cause
}

type drainTerminal[W any] struct {
	upstream Upstream
	values   []W
	cause    Cause
	finish   func(Cause)
}

func (t *drainTerminal[W]) Begin(upstream Upstream) {
	t.upstream = upstream
	upstream.Next()
}

func (t *drainTerminal[W]) Body(v W) {
	t.values = append(t.values, v)
	t.upstream.Next()
}

func (t *drainTerminal[W]) Ended()         { t.finish(nil) }
func (t *drainTerminal[W]) Fail(err error) { t.finish(toCause(err)) }
func (t *drainTerminal[W]) Stop()          { t.finish(Stopped{}) }
