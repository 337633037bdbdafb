// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
)

// signalRegistry multiplexes os/signal.Notify across every Signal
// combinator sharing an EventLoop: the first registration for a given
// os.Signal starts one dispatch goroutine; later registrations for the
// same signal just add a callback.
type signalRegistry struct {
	mu   sync.Mutex
	subs map[os.Signal]map[int]func()
	next int
}

// register arranges for callback to run (on its own goroutine) every time
// sig is delivered to the process, and returns a cancel function that
// removes this particular registration.
func (r *signalRegistry) register(sig os.Signal, callback func()) (cancel func()) {
	r.mu.Lock()
	if r.subs == nil {
		r.subs = make(map[os.Signal]map[int]func())
	}
	if _, ok := r.subs[sig]; !ok {
		r.subs[sig] = make(map[int]func())
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, sig)
		go r.dispatch(sig, ch)
	}
	id := r.next
	r.next++
	r.subs[sig][id] = callback
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subs[sig], id)
	}
}

func (r *signalRegistry) dispatch(sig os.Signal, ch chan os.Signal) {
	for range ch {
		r.mu.Lock()
		callbacks := make([]func(), 0, len(r.subs[sig]))
		for _, cb := range r.subs[sig] {
			callbacks = append(callbacks, cb)
		}
		r.mu.Unlock()
		for _, cb := range callbacks {
			cb()
		}
	}
}

// Signal builds a one-shot leaf that delivers Start(sig) the next time the
// process receives sig, scheduled back onto loop's goroutine via Submit so
// the downstream chain always observes signal delivery the same way it
// observes any other loop-driven completion. An Interrupt registered
// before delivery cancels the subscription and resolves the stage with
// Stop instead.
func Signal(loop *EventLoop, sig os.Signal) Expression[os.Signal] {
	return func(downstream TerminalStage[os.Signal]) Runnable {
		return &signalStage{loop: loop, sig: sig, downstream: downstream}
	}
}

type signalStage struct {
	loop       *EventLoop
	sig        os.Signal
	downstream TerminalStage[os.Signal]
	settled    atomic.Bool
	cancel     func()
}

func (s *signalStage) Register(i *Interrupt) {
	s.downstream.Register(i)
	if i != nil {
		i.Register(s.onInterrupt)
	}
}

// Start and onInterrupt can race — delivery is dispatched from the signal
// registry's own goroutine while an Interrupt may be triggered from any
// goroutine — so settlement uses an atomic CAS rather than terminalGuard.
func (s *signalStage) Start() {
	if s.settled.Load() {
		return
	}
	s.cancel = s.loop.signals.register(s.sig, func() {
		s.loop.Submit("signal", func() {
			if s.settled.CompareAndSwap(false, true) {
				s.cancel()
				s.downstream.Start(s.sig)
			}
		})
	})
}

func (s *signalStage) onInterrupt() {
	if s.settled.CompareAndSwap(false, true) {
		if s.cancel != nil {
			s.cancel()
		}
		s.downstream.Stop()
	}
}
