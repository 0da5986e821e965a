package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	zerolog.LevelFatalValue = "critical"
	zerolog.ErrorFieldName = "err"
	zerolog.TimeFieldFormat = time.DateTime
}

// critical logs at the fatal level without exiting the process.
func critical(log zerolog.Logger) *zerolog.Event {
	return log.WithLevel(zerolog.FatalLevel)
}

// textWriter renders "time, LEVEL, message key=value" lines.
func textWriter(out io.Writer, color bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:     out,
		NoColor: !color,
		FormatTimestamp: func(i any) string {
			return fmt.Sprintf("%v,", i)
		},
		FormatLevel: func(i any) string {
			return strings.ToUpper(fmt.Sprintf("%v,", i))
		},
	}
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.DebugLevel
	}

	return lvl
}

// newLogger appends to cfg.LogFile and, if asked, mirrors to stderr.
// The returned closer releases the file.
func newLogger(cfg Config) (zerolog.Logger, io.Closer, error) {
	var writers []io.Writer
	var closer io.Closer = io.NopCloser(nil)

	if len(cfg.LogFile) > 0 {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("failed opening log file %q: %w", cfg.LogFile, err)
		}

		closer = f
		writers = append(writers, textWriter(zerolog.SyncWriter(f), false))
	}

	if cfg.LogConsole || len(writers) == 0 {
		writers = append(writers, textWriter(os.Stderr, true))
	}

	log := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(parseLevel(cfg.LogLevel)).
		With().
		Timestamp().
		Logger()

	return log, closer, nil
}
