// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual_test

import "code.hybscloud.com/eventual"

// drainResult is what driveStream collects from a fully-driven
// StreamExpression: every Body value in order, plus the terminal cause
// (nil for a clean Ended).
type drainResult[V any] struct {
	values []V
	failed error
	stopped bool
}

// driveStream pulls term's upstream to completion synchronously, used by
// tests that don't need an EventLoop to exercise a stream combinator.
func driveStream[V any](e eventual.StreamExpression[V]) drainResult[V] {
	result := &drainResult[V]{}
	var upstream eventual.Upstream

	stage, _ := eventual.BuildStream(e, recordStreamTerminal[V]{
		begin: func(u eventual.Upstream) {
			upstream = u
			u.Next()
		},
		body: func(v V) {
			result.values = append(result.values, v)
			upstream.Next()
		},
		ended: func() {},
		fail:  func(err error) { result.failed = err },
		stop:  func() { result.stopped = true },
	})
	stage.Start()
	return *result
}
