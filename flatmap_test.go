// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/eventual"
)

func TestFlatMapSplicesInnerStreamsInOrder(t *testing.T) {
	flat := eventual.FlatMap(eventual.Iterate([]int{1, 2, 3}), func(v int) eventual.StreamExpression[int] {
		return eventual.Iterate([]int{v, v * 10})
	})

	result := driveStream(flat)
	require.Equal(t, []int{1, 10, 2, 20, 3, 30}, result.values)
}

func TestFlatMapWithEmptyInnerStreamsSkipsThem(t *testing.T) {
	flat := eventual.FlatMap(eventual.Iterate([]int{1, 2, 3}), func(v int) eventual.StreamExpression[int] {
		if v == 2 {
			return eventual.Iterate([]int{})
		}
		return eventual.Iterate([]int{v})
	})

	result := driveStream(flat)
	require.Equal(t, []int{1, 3}, result.values)
}

func TestFlatMapPropagatesInnerFailure(t *testing.T) {
	flat := eventual.FlatMap(eventual.Iterate([]int{1, 2}), func(v int) eventual.StreamExpression[int] {
		if v == 2 {
			return eventual.Stream(eventual.StreamSteps[int]{
				Next: func(downstream eventual.StreamTerminal[int]) {
					downstream.Fail(assertError("inner broke"))
				},
			})
		}
		return eventual.Iterate([]int{v})
	})

	result := driveStream(flat)
	require.ErrorIs(t, result.failed, assertError("inner broke"))
}
