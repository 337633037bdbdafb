// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

import "sync/atomic"

// waiterNode is one entry in the event loop's intrusive MPSC submission
// stack: a name for diagnostics, a callback to run on the loop goroutine,
// and a next pointer used only while the node is linked into the stack.
type waiterNode struct {
	name     string
	callback func()
	next     atomic.Pointer[waiterNode]
	pooled   bool
}

// waiterStack is a lock-free, multi-producer single-consumer intrusive
// stack: any goroutine may push via Submit, only the loop goroutine ever
// pops, and it always pops everything at once via drain, which reverses
// the stack into submission (FIFO) order before returning it.
type waiterStack struct {
	head atomic.Pointer[waiterNode]
}

// push links n onto the stack. Safe to call from any goroutine.
func (s *waiterStack) push(n *waiterNode) {
	for {
		old := s.head.Load()
		n.next.Store(old)
		if s.head.CompareAndSwap(old, n) {
			return
		}
	}
}

// drain atomically detaches the entire stack and returns its nodes in
// submission order (oldest push first). Must only be called from the loop
// goroutine.
func (s *waiterStack) drain() []*waiterNode {
	head := s.head.Swap(nil)
	if head == nil {
		return nil
	}

	// head..tail is newest-to-oldest; reverse it in place into a slice.
	var reversed []*waiterNode
	for n := head; n != nil; {
		next := n.next.Load()
		reversed = append(reversed, n)
		n = next
	}
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	return reversed
}
