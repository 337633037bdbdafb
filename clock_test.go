// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/eventual"
)

func TestClockPauseParksSubmissions(t *testing.T) {
	c := eventual.NewClock()
	c.Pause()

	var fired bool
	c.Submit(time.Second, func() { fired = true })
	require.False(t, fired)
}

func TestClockAdvanceFiresDueEntriesInOrder(t *testing.T) {
	c := eventual.NewClock()
	c.Pause()

	var order []int
	c.Submit(3*time.Second, func() { order = append(order, 3) })
	c.Submit(1*time.Second, func() { order = append(order, 1) })
	c.Submit(2*time.Second, func() { order = append(order, 2) })

	c.Advance(2 * time.Second)
	require.Equal(t, []int{1, 2}, order)

	c.Advance(time.Second)
	require.Equal(t, []int{1, 2, 3}, order)
}

func TestClockResumeFiresEverythingAtOnce(t *testing.T) {
	c := eventual.NewClock()
	c.Pause()

	var fired int
	c.Submit(time.Hour, func() { fired++ })
	c.Submit(2*time.Hour, func() { fired++ })

	c.Resume()
	require.Equal(t, 2, fired)
	require.False(t, c.Paused())
}

func TestClockSubmitCancel(t *testing.T) {
	c := eventual.NewClock()
	c.Pause()

	var fired bool
	cancel := c.Submit(time.Second, func() { fired = true })
	cancel()

	c.Advance(time.Hour)
	require.False(t, fired)
}

func TestClockUnpausedSubmitFiresAfterDuration(t *testing.T) {
	c := eventual.NewClock()

	done := make(chan struct{})
	c.Submit(10*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer callback did not fire")
	}
}

func TestClockPauseIsIdempotent(t *testing.T) {
	c := eventual.NewClock()
	c.Pause()
	before := c.Now()
	c.Pause()
	require.Equal(t, before, c.Now())
}
