// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// EventLoopOption configures an EventLoop at construction.
type EventLoopOption func(*EventLoop)

// WithLogger installs an SLogger the loop uses for submission/timer/signal
// diagnostics. The default is DefaultSLogger, a no-op.
func WithLogger(logger SLogger) EventLoopOption {
	return func(l *EventLoop) { l.logger = logger }
}

// WithCheckInterval sets how often RunForever/RunUntil wake even with no
// submitted work, to notice due timers and signal deliveries promptly.
// It is a diagnostics/latency knob, not a correctness requirement, since
// real work always wakes the loop immediately via Submit.
func WithCheckInterval(d time.Duration) EventLoopOption {
	return func(l *EventLoop) { l.checkInterval = d }
}

// EventLoop is the event-loop Scheduler: a single dedicated goroutine drains
// a lock-free MPSC queue of submitted work (waiterStack) each iteration,
// then runs any due Clock timers and pending signal deliveries.
type EventLoop struct {
	stack waiterStack
	clock *Clock

	logger        SLogger
	checkInterval time.Duration

	wake    chan struct{}
	stop    chan struct{}
	stopped sync.Once

	alive atomic.Bool
	ctx   Context

	signals signalRegistry
}

// NewEventLoop constructs a stopped EventLoop; call Run, RunForever, or
// RunUntil to drive it.
func NewEventLoop(opts ...EventLoopOption) *EventLoop {
	l := &EventLoop{
		clock:         NewClock(),
		logger:        DefaultSLogger(),
		checkInterval: 10 * time.Millisecond,
		wake:          make(chan struct{}, 1),
		stop:          make(chan struct{}),
	}
	l.ctx = Context{Scheduler: l, Name: "event-loop"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Clock returns the loop's Clock, used by Timer and by tests that need
// Pause/Advance/Resume control over virtual time.
func (l *EventLoop) Clock() *Clock { return l.clock }

// Alive reports whether the loop has been started and not yet torn down.
func (l *EventLoop) Alive() bool { return l.alive.Load() }

// InEventLoop reports whether the Context installed by Switch (see
// Current) names this loop, which holds while the loop is running one of
// its callbacks. Current is a single package-wide value, not a
// per-goroutine one, so this does not tell which goroutine is calling.
func (l *EventLoop) InEventLoop() bool {
	cur := Current()
	return cur != nil && cur.Scheduler == l
}

// Submit enqueues callback to run on the loop goroutine, tagged name for
// diagnostics. Each submission also gets a generated id, since many
// submissions share the same name (every due Timer submits as "timer",
// every signal delivery as "signal") and the log needs something to tell
// them apart by. Submitting after the loop has been torn down (Interrupt
// called and Run/RunForever/RunUntil returned) is a broken contract and
// panics with an Internal cause.
func (l *EventLoop) Submit(name string, callback func()) {
	select {
	case <-l.stop:
		failInternal("eventual: Submit called after event loop teardown")
	default:
	}

	id := uuid.New().String()
	n := acquireWaiterNode()
	n.name = name
	n.callback = callback
	l.stack.push(n)
	l.logger.Debug("eventual: submit", "name", name, "id", id)

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Continuable reports whether ctx names this loop and InEventLoop holds —
// the affinity check RescheduleAfter and Schedule use to skip a redundant
// Submit hop. Naming this loop alone is not enough: a context captured for
// this loop is only continuable while the loop's own Context is current.
func (l *EventLoop) Continuable(ctx *Context) bool {
	return ctx != nil && ctx.Scheduler == l && l.InEventLoop()
}

// runOnce drains whatever was submitted since the last drain and runs each
// callback on the calling goroutine, with Current() set to this loop's
// Context for the duration. Returns the number of callbacks executed.
func (l *EventLoop) runOnce() int {
	restore := Switch(&l.ctx)
	defer restore()

	nodes := l.stack.drain()
	for _, n := range nodes {
		cb := n.callback
		releaseWaiterNode(n)
		cb()
	}
	return len(nodes)
}

// Run drains and executes submitted work until none remains, then
// returns. It does not block waiting for future work; use RunForever or
// RunUntil for that.
func (l *EventLoop) Run() {
	l.alive.Store(true)
	l.logger.Info("eventual: loop run")
	for l.runOnce() > 0 {
	}
}

// RunForever runs until Interrupt is called. It is the goroutine intended
// to own the loop's affine state (waiter stack, clock, signal
// registrations) for the lifetime of the program.
func (l *EventLoop) RunForever() {
	l.alive.Store(true)
	l.logger.Info("eventual: loop run forever")
	ticker := time.NewTicker(l.checkInterval)
	defer ticker.Stop()

	for {
		l.runOnce()
		select {
		case <-l.stop:
			l.alive.Store(false)
			l.logger.Info("eventual: loop teardown")
			return
		case <-l.wake:
		case <-ticker.C:
		}
	}
}

// RunUntil runs the loop until future resolves, then returns its value
// and error, driven by future.Done() closing rather than a timed poll.
func RunUntil[V any](l *EventLoop, future *Future[V]) (V, error) {
	l.alive.Store(true)
	ticker := time.NewTicker(l.checkInterval)
	defer ticker.Stop()

	for {
		l.runOnce()
		select {
		case <-future.Done():
			return future.Result()
		case <-l.stop:
			l.alive.Store(false)
			var zero V
			return zero, Stopped{}
		case <-l.wake:
		case <-ticker.C:
		}
	}
}

// Schedule wraps e in RescheduleAfter and arranges for e's entry point
// (Start) to run on l's goroutine, tagged name for diagnostics, if it is
// reached from anywhere other than l's own goroutine — mirroring
// RescheduleAfter's hop on the way back out. Go methods can't carry their
// own type parameters, so this is a package-level function taking the
// loop explicitly, the same shape as RunUntil above.
func Schedule[V any](l *EventLoop, name string, e Expression[V]) Expression[V] {
	return func(downstream TerminalStage[V]) Runnable {
		return &scheduleStage[V]{loop: l, name: name, e: e, downstream: downstream}
	}
}

type scheduleStage[V any] struct {
	loop       *EventLoop
	name       string
	e          Expression[V]
	downstream TerminalStage[V]
	interrupt  *Interrupt
}

func (s *scheduleStage[V]) Register(i *Interrupt) {
	s.downstream.Register(i)
	s.interrupt = i
}

func (s *scheduleStage[V]) Start() {
	ctx := Current()
	run := func() { startRescheduled(ctx, s.e, s.downstream, s.interrupt) }
	if s.loop.Continuable(ctx) {
		run()
		return
	}
	s.loop.Submit(s.name, run)
}

// ScheduleStream is the stream analogue of Schedule.
func ScheduleStream[V any](l *EventLoop, name string, e StreamExpression[V]) StreamExpression[V] {
	return func(downstream StreamTerminalStage[V]) Runnable {
		return &scheduleStreamStage[V]{loop: l, name: name, e: e, downstream: downstream}
	}
}

type scheduleStreamStage[V any] struct {
	loop       *EventLoop
	name       string
	e          StreamExpression[V]
	downstream StreamTerminalStage[V]
	interrupt  *Interrupt
}

func (s *scheduleStreamStage[V]) Register(i *Interrupt) {
	s.downstream.Register(i)
	s.interrupt = i
}

func (s *scheduleStreamStage[V]) Start() {
	ctx := Current()
	run := func() { startRescheduledStream(ctx, s.e, s.downstream, s.interrupt) }
	if s.loop.Continuable(ctx) {
		run()
		return
	}
	s.loop.Submit(s.name, run)
}

// Interrupt stops RunForever/RunUntil, which mark the loop no longer alive
// as they return; Interrupt itself does not change Alive. Subsequent Submit
// calls panic. Idempotent.
func (l *EventLoop) Interrupt() {
	l.stopped.Do(func() {
		close(l.stop)
	})
}
