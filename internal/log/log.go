// Package log configures zerolog's console writer to match spec.md §7's
// exact wire format: fatal messages as "<program-name>: <message>",
// warnings as "warning: <message>", with nothing else decorating the
// line (no timestamp, no level letter) since this is a CLI tool whose
// stderr output users read directly, not machine-parsed JSON.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

var (
	logger  zerolog.Logger
	program string
)

// Init installs the global logger. verbose gates Debug()-level lines
// (spec.md §11's --verbose supplement); everything else is unconditional.
func Init(programName string, verbose bool) {
	program = programName
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		NoColor:    !isTerminal(os.Stderr),
		PartsOrder: []string{zerolog.MessageFieldName},
		FormatLevel: func(any) string { return "" },
		FormatTimestamp: func(any) string { return "" },
		FormatMessage: func(i any) string {
			return fmt.Sprint(i)
		},
	}

	logger = zerolog.New(writer).Level(level).With().Logger()
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// Debug logs a --verbose-gated diagnostic line with no prefix.
func Debug() *zerolog.Event { return logger.Debug() }

// Warning logs a "warning: <message>" line (spec.md §7).
func Warning(format string, args ...any) {
	logger.Warn().Msg("warning: " + fmt.Sprintf(format, args...))
}

// Fatal logs "<program-name>: <message>" and exits 1, matching spec.md
// §7's fatal-path wire format exactly.
func Fatal(format string, args ...any) {
	logger.Error().Msg(program + ": " + fmt.Sprintf(format, args...))
	os.Exit(1)
}

// Writer exposes the underlying io.Writer for callers (the defer
// protocol's readiness line) that must bypass zerolog's formatting
// entirely and write raw bytes to stdout instead.
func Writer() io.Writer { return os.Stdout }
