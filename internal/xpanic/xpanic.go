// Package xpanic implements the "panic if error" policy the toolkit applies
// to programmer errors: null arguments, send-on-closed, double-close,
// get-on-empty, and failed primitive synchronization calls all abort the
// goroutine instead of returning an error value.
package xpanic

import (
	"fmt"

	"github.com/rs/zerolog"
)

var logger = zerolog.Nop()

// SetLogger installs the logger used to record invariant violations before
// they panic. The cmd/ entry points call this during setup; library code
// never constructs its own logger.
func SetLogger(l zerolog.Logger) {
	logger = l
}

// Require panics with the formatted message if cond is false, after logging
// it as an error. Use for preconditions a caller is expected to uphold.
func Require(cond bool, format string, args ...any) {
	if cond {
		return
	}
	msg := fmt.Sprintf(format, args...)
	logger.Error().Str("invariant", msg).Msg("programmer error: aborting")
	panic(msg)
}
