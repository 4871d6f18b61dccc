package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"hookprobe/internal/platform/config"
)

// Init configures the global zerolog logger. Command output owns stdout, so
// logs go to stderr unless told otherwise.
func Init(cfg config.LoggingConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer
	switch cfg.Output {
	case "stdout":
		out = os.Stdout
	case "file":
		f, err := openLogFile(cfg.FilePath)
		if err == nil {
			log.Logger = zerolog.New(f).With().Timestamp().Logger()
			return
		}
		// fallback to stderr
		log.Error().Err(err).Str("path", cfg.FilePath).Msg("failed to open log file")
		out = os.Stderr
	default:
		out = os.Stderr
	}

	if cfg.Format == "text" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
		return
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, os.ErrInvalid
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
}
