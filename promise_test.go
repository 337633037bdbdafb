// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/eventual"
)

func TestPromisifySettlesOnStart(t *testing.T) {
	future, entry := eventual.Promisify(eventual.Just(42))
	entry.Start()

	<-future.Done()
	v, err := future.Result()
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestPromisifySettlesOnFail(t *testing.T) {
	future, entry := eventual.Promisify(eventual.Raise[int](assertError("boom")))
	entry.Start()

	<-future.Done()
	_, err := future.Result()
	require.ErrorIs(t, err, assertError("boom"))
}

func TestPromisifySettlesOnStop(t *testing.T) {
	stopping := eventual.Eventual(func(downstream eventual.Terminal[int], _ *eventual.Interrupt) {
		downstream.Stop()
	})
	future, entry := eventual.Promisify(stopping)
	entry.Start()

	<-future.Done()
	_, err := future.Result()
	require.ErrorIs(t, err, eventual.Stopped{})
}

func TestPromisifyEntryCanRegisterInterrupt(t *testing.T) {
	interrupt := eventual.NewInterrupt()
	var registered *eventual.Interrupt
	leaf := eventual.Eventual(func(downstream eventual.Terminal[int], i *eventual.Interrupt) {
		registered = i
		downstream.Start(1)
	})

	future, entry := eventual.Promisify(leaf)
	entry.Register(interrupt)
	entry.Start()

	<-future.Done()
	require.Same(t, interrupt, registered)
}
