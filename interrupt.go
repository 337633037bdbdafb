// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

import "sync"

// Interrupt is a one-shot cancellation token threaded through a built
// pipeline: Trigger fires every registered handler exactly once,
// most-recently-registered first, since each stage's Register installs its
// handler ahead of the ones already there.
//
// A handler registered after Trigger has already fired runs immediately,
// inline, from within Register — there is no missed-wakeup window.
type Interrupt struct {
	mu        sync.Mutex
	triggered bool
	handlers  []func()
}

// NewInterrupt constructs an un-triggered Interrupt.
func NewInterrupt() *Interrupt {
	return &Interrupt{}
}

// Register installs a handler to run when Trigger is called. If Trigger
// has already fired, handler runs synchronously before Register returns.
func (i *Interrupt) Register(handler func()) {
	i.mu.Lock()
	if i.triggered {
		i.mu.Unlock()
		handler()
		return
	}
	i.handlers = append(i.handlers, handler)
	i.mu.Unlock()
}

// Trigger fires every registered handler in LIFO order. Trigger is itself
// one-shot: calling it a second time is a no-op.
func (i *Interrupt) Trigger() {
	i.mu.Lock()
	if i.triggered {
		i.mu.Unlock()
		return
	}
	i.triggered = true
	handlers := i.handlers
	i.handlers = nil
	i.mu.Unlock()

	for n := len(handlers) - 1; n >= 0; n-- {
		handlers[n]()
	}
}

// Triggered reports whether Trigger has already fired.
func (i *Interrupt) Triggered() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.triggered
}
