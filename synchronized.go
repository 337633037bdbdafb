// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

import "sync"

// Mutex is an asynchronous mutex: Lock-equivalent acquisition never blocks
// a goroutine, it enqueues a continuation that runs once the mutex becomes
// free. Acquisition enqueues onto a waiter list; release pops the next
// waiter. An ordinary mutex guards the waiter queue itself, since
// Synchronized must work whether or not the computation it guards is
// running on an EventLoop.
type Mutex struct {
	mu      sync.Mutex
	locked  bool
	waiters []func()
}

// NewMutex constructs an unlocked Mutex.
func NewMutex() *Mutex { return &Mutex{} }

// acquire runs cb immediately if the mutex is free, otherwise enqueues it to
// run when release reaches the front of the waiter list.
func (m *Mutex) acquire(cb func()) {
	m.mu.Lock()
	if !m.locked {
		m.locked = true
		m.mu.Unlock()
		cb()
		return
	}
	m.waiters = append(m.waiters, cb)
	m.mu.Unlock()
}

// release hands the mutex to the next waiter, or marks it free if the
// waiter list is empty.
func (m *Mutex) release() {
	m.mu.Lock()
	if len(m.waiters) == 0 {
		m.locked = false
		m.mu.Unlock()
		return
	}
	next := m.waiters[0]
	m.waiters = m.waiters[1:]
	m.mu.Unlock()
	next()
}

// Synchronized runs e only while holding m, releasing it the instant e
// delivers its terminal message (before that message reaches downstream),
// so a waiting continuation can start as soon as possible rather than
// after the rest of the chain has also finished.
func Synchronized[V any](m *Mutex, e Expression[V]) Expression[V] {
	return func(downstream TerminalStage[V]) Runnable {
		return &synchronizedStage[V]{mutex: m, e: e, downstream: downstream}
	}
}

type synchronizedStage[V any] struct {
	mutex      *Mutex
	e          Expression[V]
	downstream TerminalStage[V]
	interrupt  *Interrupt
}

func (s *synchronizedStage[V]) Register(i *Interrupt) {
	s.downstream.Register(i)
	s.interrupt = i
}

func (s *synchronizedStage[V]) Start() {
	s.mutex.acquire(func() {
		term := &synchronizedTerminal[V]{mutex: s.mutex, downstream: s.downstream}
		stage := s.e(term)
		if s.interrupt != nil {
			stage.Register(s.interrupt)
		}
		stage.Start()
	})
}

type synchronizedTerminal[V any] struct {
	mutex      *Mutex
	downstream TerminalStage[V]
	guard      terminalGuard
}

func (t *synchronizedTerminal[V]) Start(v V) {
	t.guard.requireFirst("Start")
	t.mutex.release()
	t.downstream.Start(v)
}

func (t *synchronizedTerminal[V]) Fail(err error) {
	t.guard.requireFirst("Fail")
	t.mutex.release()
	t.downstream.Fail(err)
}

func (t *synchronizedTerminal[V]) Stop() {
	t.guard.requireFirst("Stop")
	t.mutex.release()
	t.downstream.Stop()
}

func (t *synchronizedTerminal[V]) Register(i *Interrupt) { t.downstream.Register(i) }
