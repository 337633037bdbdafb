// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/eventual"
)

func TestSynchronizedSerializesTwoAcquisitions(t *testing.T) {
	mutex := eventual.NewMutex()
	var order []int

	first := eventual.Synchronized(mutex, eventual.Just(1))
	second := eventual.Synchronized(mutex, eventual.Just(2))

	stage1, _ := eventual.Build(first, recordTerminal[int]{
		start: func(v int) { order = append(order, v) },
	})
	stage2, _ := eventual.Build(second, recordTerminal[int]{
		start: func(v int) { order = append(order, v) },
	})

	stage1.Start()
	stage2.Start()

	require.Equal(t, []int{1, 2}, order)
}

func TestSynchronizedReleasesOnFail(t *testing.T) {
	mutex := eventual.NewMutex()

	var failed error
	stage, _ := eventual.Build(eventual.Synchronized(mutex, eventual.Raise[int](assertError("boom"))), recordTerminal[int]{
		fail: func(err error) { failed = err },
	})
	stage.Start()
	require.ErrorIs(t, failed, assertError("boom"))

	var started bool
	stage2, _ := eventual.Build(eventual.Synchronized(mutex, eventual.Just(7)), recordTerminal[int]{
		start: func(v int) { started = true; require.Equal(t, 7, v) },
	})
	stage2.Start()
	require.True(t, started)
}

func TestSynchronizedQueuesAcquisitionUntilRelease(t *testing.T) {
	mutex := eventual.NewMutex()

	var heldTerminal eventual.Terminal[int]
	held := eventual.Synchronized(mutex, eventual.Eventual(func(downstream eventual.Terminal[int], _ *eventual.Interrupt) {
		heldTerminal = downstream
	}))
	heldStage, _ := eventual.Build(held, recordTerminal[int]{})
	heldStage.Start()
	require.NotNil(t, heldTerminal)

	var started bool
	waiting := eventual.Synchronized(mutex, eventual.Just(1))
	waitingStage, _ := eventual.Build(waiting, recordTerminal[int]{
		start: func(int) { started = true },
	})
	waitingStage.Start()
	require.False(t, started)

	heldTerminal.Start(0)
	require.True(t, started)
}
