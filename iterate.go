// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

// Iterate constructs a stream that emits the elements of values in order,
// one per upstream Next() call, then Ended. A copy of the slice is
// captured and walked with a cursor rather than re-reading the caller's
// slice, so mutating values after calling Iterate has no effect
// on the stream.
func Iterate[V any](values []V) StreamExpression[V] {
	cursor := append([]V(nil), values...)
	i := 0

	return Stream(StreamSteps[V]{
		Next: func(downstream StreamTerminal[V]) {
			if i < len(cursor) {
				v := cursor[i]
				i++
				downstream.Body(v)
				return
			}
			downstream.Ended()
		},
		Done: func(downstream StreamTerminal[V]) {
			downstream.Ended()
		},
	})
}
