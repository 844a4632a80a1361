package internal

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func NewLogger(w io.Writer, env string, level string) zerolog.Logger {
	// Validate log level
	l := zerolog.InfoLevel
	switch level {
	case "debug":
		l = zerolog.DebugLevel
	case "warn":
		l = zerolog.WarnLevel
	case "error":
		l = zerolog.ErrorLevel
	case "info":
	default:
		log.Warn().Str("value", level).Msg("Invalid log level. Using default level: info")
	}

	switch env {
	case "prod":
		zerolog.TimeFieldFormat = time.RFC3339Nano
		return zerolog.New(w).Level(l).With().Timestamp().Logger()
	default:
		return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
			Level(l).With().Timestamp().Logger()
	}
}
