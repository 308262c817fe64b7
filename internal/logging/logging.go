// Package logging configures the global zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ZaguanLabs/dialect/internal/config"
)

// Setup sets the global level and output from cfg and returns the logger.
// The "auto" format writes human-readable lines to terminals and JSON
// everywhere else.
func Setup(cfg config.LogConfig, out *os.File) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = New(cfg.Format, out)
	return log.Logger, nil
}

// New builds a logger writing to out in the given format.
func New(format string, out *os.File) zerolog.Logger {
	var w io.Writer = out
	switch format {
	case config.LogFormatConsole:
		w = ConsoleWriter(out)
	case config.LogFormatJSON:
	default:
		if isTerminal(out) {
			w = ConsoleWriter(out)
		}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// isTerminal returns true if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ConsoleWriter returns a human-readable writer, colored only on terminals.
// Access log lines are condensed to "status method path (duration)".
func ConsoleWriter(f *os.File) io.Writer {
	noColor := !isTerminal(f)

	w := zerolog.ConsoleWriter{Out: f, NoColor: noColor, TimeFormat: time.DateTime}
	w.FormatPrepare = func(m map[string]any) error {
		if sys, ok := m["sys"]; ok && sys == "http" {
			m["message"] = fmt.Sprintf("%v %-5v %v (%vms)", m["status"], m["method"], m["path"], m["duration_ms"])
			delete(m, "sys")
			delete(m, "status")
			delete(m, "method")
			delete(m, "path")
			delete(m, "duration_ms")
		}
		return nil
	}
	return w
}
