// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

import (
	"sync/atomic"
	"time"
)

// Timer builds a one-shot leaf that delivers Start(Unit{}) once d has
// elapsed on loop's Clock, scheduled back onto loop's goroutine so timer
// firing is observed exactly like any other loop-driven completion.
// Interruption before or after arming reports Stop instead.
//
// A Timer submitted while loop's Clock is paused is parked in the clock's
// pending list and only fires once the clock is resumed or advanced past
// its deadline.
func Timer(loop *EventLoop, d time.Duration) Expression[Unit] {
	return func(downstream TerminalStage[Unit]) Runnable {
		return &timerStage{loop: loop, d: d, downstream: downstream}
	}
}

type timerStage struct {
	loop       *EventLoop
	d          time.Duration
	downstream TerminalStage[Unit]
	settled    atomic.Bool
	cancel     func()
}

func (s *timerStage) Register(i *Interrupt) {
	s.downstream.Register(i)
	if i != nil {
		i.Register(s.onInterrupt)
	}
}

// Start and onInterrupt race the same way Signal's do: the Clock fires on
// whatever goroutine owns it (the loop goroutine once running, or a test
// calling Advance/Resume directly), while Interrupt.Trigger may be called
// from any goroutine. Settlement uses an atomic CAS rather than
// terminalGuard for the same reason given in signal.go.
func (s *timerStage) Start() {
	if s.settled.Load() {
		return
	}
	s.cancel = s.loop.Clock().Submit(s.d, func() {
		s.loop.Submit("timer", func() {
			if s.settled.CompareAndSwap(false, true) {
				s.downstream.Start(Unit{})
			}
		})
	})
}

func (s *timerStage) onInterrupt() {
	if s.settled.CompareAndSwap(false, true) {
		if s.cancel != nil {
			s.cancel()
		}
		s.downstream.Stop()
	}
}
