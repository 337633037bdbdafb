// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package eventual provides a composable asynchronous-computation library
// built around a type-safe, allocation-light continuation-passing execution
// engine layered over a single-threaded event loop.
//
// # Continuations and composition
//
// A pipeline is built by composing [Expression] values with [Then] and the
// combinators below; it does nothing until handed to [Build] or one of the
// Run* entry points. Every stage in a built pipeline exchanges exactly one
// of the messages described by [Terminal] and [StreamTerminal]: a
// single-value stage delivers exactly one of Start, Fail, or Stop; a stream
// stage delivers one Begin, zero or more Body, and exactly one of Ended,
// Fail, or Stop.
//
//   - [Then]: sequences two [Expression]s, feeding the first's value into the
//     second.
//   - [Just], [Raise]: construct a completed or failed [Expression] directly.
//   - [Eventual]: the leaf combinator — wraps a user-supplied CPS function
//     that drives a [Terminal] by hand.
//
// # Streams
//
//   - [Stream]: the stream-leaf analogue of [Eventual].
//   - [Iterate], [Range]: stream sources over a slice and over a
//     half-open integer interval, respectively.
//   - [Map], [FlatMap], [Collect], [Loop]: stream transformers.
//   - [Synchronized]: serializes stage execution through a mutex-shaped
//     scheduler.
//   - [Concurrent], [ConcurrentOrdered]: per-element fan-out with unordered
//     or spawn-ordered re-merge.
//
// # Interrupts
//
// [Interrupt] is a one-shot cancellation token. Handlers registered with
// [Interrupt.Register] fire in LIFO order when [Interrupt.Trigger] is
// called; a handler registered after the trigger has already fired runs
// inline, synchronously, from within Register.
//
// # Scheduling and the event loop
//
// [Scheduler] and [Context] abstract "where a continuation resumes".
// [EventLoop] is the event-loop scheduler: a single dedicated goroutine drains
// a lock-free MPSC queue of submitted work each iteration, then runs any
// due [Clock] timers and pending OS signal deliveries. [Timer] and [Signal]
// are combinators built on the loop's clock and interrupt plumbing.
// [RescheduleAfter] returns a stage's completion to the context that was
// current when it was entered; [Schedule] additionally moves entry itself
// onto an [EventLoop]'s goroutine if it wasn't already there.
//
// # Termination
//
// [Promisify] bridges a built pipeline to a Go-native [Future], resolving
// it with the pipeline's value, error, or a distinguished [Stopped] cause.
//
// # Errors
//
// Pipeline failures are ordinary Go errors carrying a [Cause]: one of
// [UserRaised], [Stopped], or [Internal]. [Catch] inspects a Fail's cause
// for a caller-supplied error type via errors.As.
//
// # Logging
//
// [SLogger] is a minimal two-method logging seam; [DefaultSLogger] is a
// no-op so that embedding this library never forces a logging backend on
// its caller.
package eventual
