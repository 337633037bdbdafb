// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

import (
	"errors"
	"fmt"
)

// Cause is the closed sum of reasons a pipeline Fail can carry: a
// user-raised error, the distinguished Stopped sentinel, or a fatal
// contract violation. The split is a runtime closed interface rather than
// a compile-time exception hierarchy, since Go has no typed-throws to
// lean on.
//
// Every Cause implements error, so a Fail's argument is always usable with
// the standard errors.Is/errors.As against any of the three cases below.
type Cause interface {
	error
	cause()
}

// UserRaised wraps an error produced by Raise or by a leaf's own Fail call.
type UserRaised struct {
	Err error
}

func (u UserRaised) Error() string { return u.Err.Error() }
func (UserRaised) cause()          {}
func (u UserRaised) Unwrap() error { return u.Err }

// Stopped is the distinguished sentinel Cause delivered when a stage
// terminates via Stop rather than Start or Fail. It carries no payload and
// is a singleton: errors.Is(err, Stopped{}) is the idiomatic test.
type Stopped struct{}

func (Stopped) Error() string { return "eventual: stopped" }
func (Stopped) cause()        {}

// Internal marks a broken protocol invariant: double delivery of a
// terminal message, Submit after loop teardown, or any other condition
// that indicates a bug in the pipeline
// rather than a runtime failure. Internal causes are not meant to be
// returned to callers in the steady state — see failInternal, which panics
// instead of delivering Fail.
type Internal struct {
	Err error
}

func (i Internal) Error() string { return "eventual: internal: " + i.Err.Error() }
func (Internal) cause()          {}
func (i Internal) Unwrap() error { return i.Err }

// asUserRaised constructs a UserRaised Cause from an arbitrary error. The
// Raise combinator goes through this, as does toCause (used by Concurrent
// and the Promisify terminal) for a plain error a leaf passed to Fail.
func asUserRaised(err error) Cause {
	if err == nil {
		err = errors.New("eventual: raised nil error")
	}
	return UserRaised{Err: err}
}

// failInternal panics with an Internal cause. Used at every point the
// protocol guarantees a condition that should never occur in a correctly
// driven pipeline; Internal is fatal rather than recoverable because it
// signals a broken caller contract, not a reportable runtime failure.
func failInternal(format string, args ...any) {
	panic(Internal{Err: fmt.Errorf(format, args...)})
}

// AsCause reports whether err (or anything it wraps) is a Cause, and
// returns it via errors.As.
func AsCause(err error) (Cause, bool) {
	var c Cause
	if errors.As(err, &c) {
		return c, true
	}
	return nil, false
}

// Catch inspects a Fail's Cause for a UserRaised error matching target via
// errors.As, returning the matched value and true. It does not match
// Stopped or Internal — those always propagate unconditionally.
func Catch[E any](err error) (E, bool) {
	var target E
	var ur UserRaised
	if errors.As(err, &ur) && errors.As(ur.Err, &target) {
		return target, true
	}
	var zero E
	return zero, false
}
