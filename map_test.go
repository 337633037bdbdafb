// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/eventual"
)

func TestMapTransformsEveryElement(t *testing.T) {
	mapped := eventual.Map(eventual.Range(0, 4, 1), func(v int) int { return v * v })
	result := driveStream(mapped)
	require.Equal(t, []int{0, 1, 4, 9}, result.values)
}

func TestMapChangesElementType(t *testing.T) {
	mapped := eventual.Map(eventual.Iterate([]int{1, 2, 3}), func(v int) string {
		return string(rune('a' + v - 1))
	})
	result := driveStream(mapped)
	require.Equal(t, []string{"a", "b", "c"}, result.values)
}

func TestMapPropagatesUpstreamFail(t *testing.T) {
	failing := eventual.Stream(eventual.StreamSteps[int]{
		Next: func(downstream eventual.StreamTerminal[int]) {
			downstream.Fail(assertError("upstream broke"))
		},
	})
	result := driveStream(eventual.Map(failing, func(v int) int { return v }))
	require.ErrorIs(t, result.failed, assertError("upstream broke"))
}
