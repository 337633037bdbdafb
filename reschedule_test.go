// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/eventual"
)

// fakeScheduler lets tests control Continuable independently of whatever
// goroutine is actually running, to exercise RescheduleAfter's hop
// decision without needing a real EventLoop.
type fakeScheduler struct {
	continuable bool
	submitted   []string
}

func (f *fakeScheduler) Submit(name string, callback func()) {
	f.submitted = append(f.submitted, name)
	callback()
}

func (f *fakeScheduler) Continuable(*eventual.Context) bool { return f.continuable }

func TestRescheduleAfterDeliversInlineWhenNoContextCaptured(t *testing.T) {
	require.Nil(t, eventual.Current())

	var got int
	stage, _ := eventual.Build(eventual.RescheduleAfter(eventual.Just(7)), recordTerminal[int]{
		start: func(v int) { got = v },
	})
	stage.Start()

	require.Equal(t, 7, got)
}

func TestRescheduleAfterDeliversInlineWhenCapturedContextStillContinuable(t *testing.T) {
	sched := &fakeScheduler{continuable: true}
	ctx := &eventual.Context{Scheduler: sched, Name: "caller"}
	restore := eventual.Switch(ctx)
	defer restore()

	var got int
	stage, _ := eventual.Build(eventual.RescheduleAfter(eventual.Just(9)), recordTerminal[int]{
		start: func(v int) { got = v },
	})
	stage.Start()

	require.Equal(t, 9, got)
	require.Empty(t, sched.submitted)
}

func TestRescheduleAfterHopsViaSubmitWhenCapturedContextNotContinuable(t *testing.T) {
	sched := &fakeScheduler{continuable: false}
	ctx := &eventual.Context{Scheduler: sched, Name: "caller"}
	restore := eventual.Switch(ctx)
	defer restore()

	var got int
	stage, _ := eventual.Build(eventual.RescheduleAfter(eventual.Just(11)), recordTerminal[int]{
		start: func(v int) { got = v },
	})
	stage.Start()

	require.Equal(t, 11, got)
	require.Equal(t, []string{"caller"}, sched.submitted)
}

func TestRescheduleAfterHopsOnFailAndStop(t *testing.T) {
	sched := &fakeScheduler{continuable: false}
	ctx := &eventual.Context{Scheduler: sched, Name: "caller"}
	restore := eventual.Switch(ctx)
	defer restore()

	var failed error
	stage, _ := eventual.Build(eventual.RescheduleAfter(eventual.Raise[int](assertError("boom"))), recordTerminal[int]{
		fail: func(err error) { failed = err },
	})
	stage.Start()

	require.Error(t, failed)
	require.Equal(t, []string{"caller"}, sched.submitted)
}

func TestRescheduleAfterStreamRoutesBeginBodyEnded(t *testing.T) {
	sched := &fakeScheduler{continuable: false}
	ctx := &eventual.Context{Scheduler: sched, Name: "caller"}
	restore := eventual.Switch(ctx)
	defer restore()

	result := driveStream(eventual.RescheduleAfterStream(eventual.Iterate([]int{1, 2, 3})))

	require.Equal(t, []int{1, 2, 3}, result.values)
	require.NoError(t, result.failed)
	require.False(t, result.stopped)
	require.Contains(t, sched.submitted, "caller")
}

func TestScheduleRunsInlineWhenAlreadyOnEventLoop(t *testing.T) {
	loop := eventual.NewEventLoop()
	loopCtx := &eventual.Context{Scheduler: loop, Name: "event-loop"}
	restore := eventual.Switch(loopCtx)
	defer restore()

	var got int
	e := eventual.Schedule(loop, "work", eventual.Just(5))
	stage, _ := eventual.Build(e, recordTerminal[int]{start: func(v int) { got = v }})
	stage.Start()

	require.Equal(t, 5, got)
}

func TestScheduleMovesEntryOntoEventLoopWhenCalledElsewhere(t *testing.T) {
	require.Nil(t, eventual.Current())

	loop := eventual.NewEventLoop()
	var got int
	e := eventual.Schedule(loop, "work", eventual.Just(13))
	stage, _ := eventual.Build(e, recordTerminal[int]{start: func(v int) { got = v }})
	stage.Start()

	require.Zero(t, got)

	loop.Run()

	require.Equal(t, 13, got)
}

func TestScheduleStreamMovesEntryOntoEventLoopWhenCalledElsewhere(t *testing.T) {
	loop := eventual.NewEventLoop()
	e := eventual.ScheduleStream(loop, "work", eventual.Iterate([]int{1, 2, 3}))

	result := &drainResult[int]{}
	var upstream eventual.Upstream
	stage, _ := eventual.BuildStream(e, recordStreamTerminal[int]{
		begin: func(u eventual.Upstream) {
			upstream = u
			u.Next()
		},
		body: func(v int) {
			result.values = append(result.values, v)
			upstream.Next()
		},
		ended: func() {},
	})
	stage.Start()

	require.Empty(t, result.values)

	loop.Run()

	require.Equal(t, []int{1, 2, 3}, result.values)
}
