package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New initializes the process-wide base logger.
// 'devMode' enables human-readable console logging; otherwise we emit JSON.
func New(devMode bool) zerolog.Logger {
	var logger zerolog.Logger

	if devMode {
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
		logger = zerolog.New(consoleWriter).With().Timestamp().Logger()
	} else {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	return logger
}
