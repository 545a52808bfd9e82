// Where: internal/logging/logging.go
// What: Process logger construction on top of zerolog.
// Why: One place decides level and console-vs-JSON output.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Output formats understood by New.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// IsTerminal reports whether the writer refers to a terminal device.
var IsTerminal = func(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok || file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// New builds a logger writing to out. The auto format picks the console
// writer for terminals and JSON lines otherwise.
func New(out io.Writer, level, format string) (zerolog.Logger, error) {
	if out == nil {
		out = os.Stderr
	}
	parsedLevel, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	writer := out
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatAuto:
		if IsTerminal(out) {
			writer = consoleWriter(out)
		}
	case FormatConsole:
		writer = consoleWriter(out)
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("unsupported log format: %q", format)
	}

	return zerolog.New(writer).Level(parsedLevel).With().Timestamp().Logger(), nil
}

// ParseLevel accepts zerolog level names. Empty means info.
func ParseLevel(level string) (zerolog.Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(level))
	if trimmed == "" {
		return zerolog.InfoLevel, nil
	}
	parsed, err := zerolog.ParseLevel(trimmed)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unsupported log level: %q", level)
	}
	return parsed, nil
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}
