package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

// newLogger builds the CLI's diagnostic logger. The core fcidr/cidr
// packages never import logrus themselves; this is the one place in the
// repository that wires a logging dependency in, behind the Fcidr trace
// hook (see pkg/fcidr.WithTrace).
func newLogger(verbose bool, format string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	return logger
}
