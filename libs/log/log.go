// Package log wraps zerolog behind the handful of levelled constructors the
// rest of the codebase uses.
package log

import (
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

// Info starts a new info-level event.
func Info() *zerolog.Event { return logger.Info() }

// Warn starts a new warn-level event.
func Warn() *zerolog.Event { return logger.Warn() }

// Error starts a new error-level event.
func Error() *zerolog.Event { return logger.Error() }

// Debug starts a new debug-level event.
func Debug() *zerolog.Event { return logger.Debug() }

// Fatal starts a new fatal-level event; the process exits once it is sent.
func Fatal() *zerolog.Event { return logger.Fatal() }
