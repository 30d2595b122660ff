package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// Log is the process-wide logger. Init must be called once at startup.
var Log zerolog.Logger

// Init configures the global logger. Human-readable console output is
// used when pretty is true, JSON lines otherwise.
func Init(pretty bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if pretty {
		Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
		return
	}

	Log = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
