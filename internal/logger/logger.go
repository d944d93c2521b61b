package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Development gets a human console writer,
// everything else emits JSON lines.
func New(environment string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if environment == "development" {
		writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
		return zerolog.New(writer).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}
