// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

// Range constructs a stream over the half-open interval [from, to) walked
// by step. The three-argument form is primary; RangeTo and RangeN cover
// the common to-only and from/to-only cases with step defaulted to 1.
//
// rangeIsEmpty is checked against the cursor before every element: it ends
// the walk once the cursor reaches or passes to, and a zero step, or a
// step whose sign disagrees with the direction from "from" to "to",
// yields an immediately-Ended stream rather than looping forever or
// walking backwards.
func Range(from, to, step int) StreamExpression[int] {
	cursor := from

	return Stream(StreamSteps[int]{
		Next: func(downstream StreamTerminal[int]) {
			if rangeIsEmpty(cursor, to, step) {
				downstream.Ended()
				return
			}
			v := cursor
			cursor += step
			downstream.Body(v)
		},
		Done: func(downstream StreamTerminal[int]) {
			downstream.Ended()
		},
	})
}

// RangeTo is Range(0, to, 1).
func RangeTo(to int) StreamExpression[int] { return Range(0, to, 1) }

// RangeN is Range(from, to, 1).
func RangeN(from, to int) StreamExpression[int] { return Range(from, to, 1) }

// rangeIsEmpty reports whether no more elements remain between from and
// to at the given step.
func rangeIsEmpty(from, to, step int) bool {
	return from == to ||
		step == 0 ||
		(from > to && step > 0) ||
		(from < to && step < 0)
}
