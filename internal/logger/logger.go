// Package logger builds the application logger. The logger instance is passed
// explicitly to the components that need it; there is no package-level global.
package logger

import (
	"os"

	"github.com/op/go-logging"
)

const module = "gestion-rh"

var format = logging.MustStringFormatter(
	`%{time:2006/01/02 15:04:05} %{level:-7s} - %{message}`,
)

// New constructs a stderr logger at the given level ("debug", "info",
// "warning", "error"). Unknown levels fall back to info.
func New(level string) *logging.Logger {
	log := logging.MustGetLogger(module)

	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(parseLevel(level), module)

	log.SetBackend(leveled)
	return log
}

func parseLevel(level string) logging.Level {
	parsed, err := logging.LogLevel(level)
	if err != nil {
		return logging.INFO
	}
	return parsed
}
