// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/eventual"
)

func TestJustDeliversStart(t *testing.T) {
	var result int
	stage, _ := eventual.Build(eventual.Just(42), recordTerminal[int]{
		start: func(v int) { result = v },
	})
	stage.Start()
	require.Equal(t, 42, result)
}

func TestRaiseDeliversFail(t *testing.T) {
	var got error
	stage, _ := eventual.Build(eventual.Raise[int](assertError("boom")), recordTerminal[int]{
		fail: func(err error) { got = err },
	})
	stage.Start()

	require.Error(t, got)
	matched, ok := eventual.Catch[assertError](got)
	require.True(t, ok)
	require.Equal(t, assertError("boom"), matched)
}

type assertError string

func (e assertError) Error() string { return string(e) }

// recordTerminal is a minimal Terminal[V] used across tests to observe
// which of Start/Fail/Stop a built pipeline delivers.
type recordTerminal[V any] struct {
	start func(V)
	fail  func(error)
	stop  func()
}

func (t recordTerminal[V]) Start(v V) {
	if t.start != nil {
		t.start(v)
	}
}

func (t recordTerminal[V]) Fail(err error) {
	if t.fail != nil {
		t.fail(err)
	}
}

func (t recordTerminal[V]) Stop() {
	if t.stop != nil {
		t.stop()
	}
}

// recordStreamTerminal is the stream analogue of recordTerminal.
type recordStreamTerminal[V any] struct {
	begin func(eventual.Upstream)
	body  func(V)
	ended func()
	fail  func(error)
	stop  func()
}

func (t recordStreamTerminal[V]) Begin(upstream eventual.Upstream) {
	if t.begin != nil {
		t.begin(upstream)
	}
}

func (t recordStreamTerminal[V]) Body(v V) {
	if t.body != nil {
		t.body(v)
	}
}

func (t recordStreamTerminal[V]) Ended() {
	if t.ended != nil {
		t.ended()
	}
}

func (t recordStreamTerminal[V]) Fail(err error) {
	if t.fail != nil {
		t.fail(err)
	}
}

func (t recordStreamTerminal[V]) Stop() {
	if t.stop != nil {
		t.stop()
	}
}
