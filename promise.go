// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

import "sync"

// Future is the synchronous handle a built pipeline is bridged to by
// Promisify. Done reports readiness via channel close (so it composes
// with select, including RunUntil's loop-driving select); Result then
// returns the settled value or error exactly once settlement has
// happened.
type Future[V any] struct {
	done  chan struct{}
	once  sync.Once
	value V
	err   error
}

func newFuture[V any]() *Future[V] {
	return &Future[V]{done: make(chan struct{})}
}

// Done returns a channel closed exactly once, when the future settles.
func (f *Future[V]) Done() <-chan struct{} { return f.done }

// Result returns the settled value and error. Calling it before Done has
// fired returns the zero value and a nil error, which is never meaningful
// on its own — callers must always wait on Done first.
func (f *Future[V]) Result() (V, error) { return f.value, f.err }

func (f *Future[V]) settle(v V, err error) {
	f.once.Do(func() {
		f.value = v
		f.err = err
		close(f.done)
	})
}

// Promisify attaches a terminal stage to e whose Start/Fail/Stop settle a
// Future, and returns that future alongside the unbuilt head stage as
// entry. The caller is responsible for entry.Register(interrupt) followed
// by entry.Start(): Promisify only wires the bridge, it does not itself
// run anything.
func Promisify[V any](e Expression[V]) (*Future[V], Runnable) {
	future := newFuture[V]()
	entry := e(toTerminalStage[V](&promiseTerminal[V]{future: future}))
	return future, entry
}

type promiseTerminal[V any] struct {
	future *Future[V]
	guard  terminalGuard
}

func (t *promiseTerminal[V]) Start(v V) {
	t.guard.requireFirst("Start")
	t.future.settle(v, nil)
}

func (t *promiseTerminal[V]) Fail(err error) {
	t.guard.requireFirst("Fail")
	var zero V
	t.future.settle(zero, toCause(err))
}

func (t *promiseTerminal[V]) Stop() {
	t.guard.requireFirst("Stop")
	var zero V
	t.future.settle(zero, Stopped{})
}
