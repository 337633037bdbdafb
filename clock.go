// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

import (
	"sync"
	"time"
)

// pendingClockEntry is a Clock.Submit call parked while the clock is
// paused, released in due-time order on Resume/Advance.
type pendingClockEntry struct {
	due      time.Time
	callback func()
}

// Clock is the event loop's notion of time. In the default, unpaused
// state it is a thin wrapper over time.AfterFunc; once paused, Submit
// calls are recorded instead of scheduled, and only fire when virtual time
// is advanced far enough by Advance or released wholesale by Resume. This
// lets tests drive Timer-based combinators deterministically.
type Clock struct {
	mu      sync.Mutex
	paused  bool
	virtual time.Time
	pending []*pendingClockEntry
}

// NewClock constructs a running (unpaused) Clock.
func NewClock() *Clock {
	return &Clock{virtual: time.Now()}
}

// Now returns the current time: wall-clock time while running, or the
// clock's virtual time while paused.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return c.virtual
	}
	return time.Now()
}

// Paused reports whether the clock is currently paused.
func (c *Clock) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Pause freezes the clock at its current wall-clock time. Submit calls
// made after Pause are parked until Advance or Resume releases them.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.paused = true
	c.virtual = time.Now()
}

// Resume unfreezes the clock and immediately fires every parked entry,
// regardless of how much virtual time would otherwise have been needed:
// resuming catches everything up at once rather than trickling it back in.
func (c *Clock) Resume() {
	c.mu.Lock()
	if !c.paused {
		c.mu.Unlock()
		return
	}
	c.paused = false
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, e := range pending {
		e.callback()
	}
}

// Advance moves the paused clock's virtual time forward by d, firing every
// parked entry whose due time has now passed, in due-time order.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	if !c.paused {
		c.mu.Unlock()
		return
	}
	c.virtual = c.virtual.Add(d)
	cutoff := c.virtual

	var due []*pendingClockEntry
	var remaining []*pendingClockEntry
	for _, e := range c.pending {
		if !e.due.After(cutoff) {
			due = append(due, e)
		} else {
			remaining = append(remaining, e)
		}
	}
	c.pending = remaining
	c.mu.Unlock()

	for i := 0; i < len(due); i++ {
		for j := i + 1; j < len(due); j++ {
			if due[j].due.Before(due[i].due) {
				due[i], due[j] = due[j], due[i]
			}
		}
	}
	for _, e := range due {
		e.callback()
	}
}

// Submit schedules callback to run after d. If the clock is paused, the
// call is parked instead and only fires via Advance/Resume. Returns a
// cancel function; calling it after the callback has already fired is a
// no-op.
func (c *Clock) Submit(d time.Duration, callback func()) (cancel func()) {
	c.mu.Lock()
	if !c.paused {
		c.mu.Unlock()
		timer := time.AfterFunc(d, callback)
		return func() { timer.Stop() }
	}

	entry := &pendingClockEntry{due: c.virtual.Add(d), callback: callback}
	c.pending = append(c.pending, entry)
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, e := range c.pending {
			if e == entry {
				c.pending = append(c.pending[:i], c.pending[i+1:]...)
				return
			}
		}
	}
}
