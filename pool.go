// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

import "sync"

// Pools for the allocation-hot records on the event loop's submission path
// and the Concurrent combinator's per-element fan-out path. Both follow an
// Acquire/release convention: acquire returns a zeroed, pool-tagged value;
// release zeroes every field before returning it to the pool so a stale
// pointer never leaks state into the next user.

var waiterNodePool = sync.Pool{New: func() any { return new(waiterNode) }}
var concurrentFiberPool = sync.Pool{New: func() any { return new(concurrentFiber) }}

// acquireWaiterNode acquires a pooled waiterNode whose name and callback
// fields must be filled before it is pushed onto the submission stack.
func acquireWaiterNode() *waiterNode {
	n := waiterNodePool.Get().(*waiterNode)
	n.pooled = true
	return n
}

// releaseWaiterNode zeroes and returns n to the pool; no-op if not pooled.
// Callers must not touch n after release.
func releaseWaiterNode(n *waiterNode) {
	if !n.pooled {
		return
	}
	n.name = ""
	n.callback = nil
	n.next.Store(nil)
	n.pooled = false
	waiterNodePool.Put(n)
}

// acquireConcurrentFiber acquires a pooled concurrentFiber for one element
// of a Concurrent/ConcurrentOrdered fan-out. index and interrupt must be
// filled before the fiber's goroutine starts.
func acquireConcurrentFiber() *concurrentFiber {
	f := concurrentFiberPool.Get().(*concurrentFiber)
	f.pooled = true
	return f
}

// releaseConcurrentFiber zeroes and returns f to the pool; no-op if not
// pooled. Called when the merge coordinator processes the fiber's
// completion report, which the fiber's goroutine sends as its last action;
// the fiber's buffered output may not have been emitted downstream yet.
func releaseConcurrentFiber(f *concurrentFiber) {
	if !f.pooled {
		return
	}
	f.index = 0
	f.interrupt = nil
	f.done = nil
	f.cause = nil
	f.pooled = false
	concurrentFiberPool.Put(f)
}
