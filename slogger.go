// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package eventual

// SLogger abstracts the *slog.Logger behavior the event loop needs for
// submission/timer/signal diagnostics, so tests can assert on log output
// without a real slog.Logger and callers can wire one in without this
// package importing log/slog directly. A *slog.Logger satisfies this
// interface as-is.
//
// Debug is used for per-submission/per-wakeup traffic; Info is used for
// lifecycle events (loop start, loop teardown).
type SLogger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

// DefaultSLogger returns the no-op SLogger every EventLoop uses unless
// WithLogger overrides it, so the library never writes to stdout/stderr
// unless a caller explicitly asks it to.
func DefaultSLogger() SLogger {
	return discardSLogger{}
}

type discardSLogger struct{}

var _ SLogger = discardSLogger{}

func (discardSLogger) Debug(string, ...any) {}
func (discardSLogger) Info(string, ...any)  {}
