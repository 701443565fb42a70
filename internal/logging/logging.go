// Package logging configures the process-wide structured logger. The
// console sink is colored when stdout is a terminal; an optional file
// sink rotates by size so long-running test drivers don't fill a disk.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	fileMaxMegabytes = 10
	fileBackups      = 5
)

// Options control logger construction.
type Options struct {
	// Verbose lowers the level from info to debug.
	Verbose bool

	// NoColor disables console coloring even on a terminal.
	NoColor bool

	// FilePath, when set, adds a size-rotated file sink alongside the
	// console.
	FilePath string
}

// New builds a zerolog logger according to the options.
func New(opts Options) zerolog.Logger {
	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.DateTime,
		NoColor:    opts.NoColor || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	writers := []io.Writer{console}
	if opts.FilePath != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    fileMaxMegabytes,
			MaxBackups: fileBackups,
		})
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().Timestamp().Logger()
}

// Nop returns a logger that discards everything, for tests and for
// components constructed without an explicit logger.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
