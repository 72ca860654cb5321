// Package logging wires the solver subsystems to a single structured
// logger. Per-subsystem verbosity mirrors the per-field verbosity switches
// of the equation parameters.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

func init() {
	logger = logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stderr)
	if os.Getenv("CS_LOG_TO_STDOUT") != "" {
		logger.SetOutput(os.Stdout)
	}
	logger.SetLevel(logrus.InfoLevel)
}

// Logger exposes the process logger for driver-level configuration.
func Logger() *logrus.Logger { return logger }

// SetVerbose raises the level to Debug; used when a field or subsystem
// requests verbosity > 0.
func SetVerbose(on bool) {
	if on {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// Sub returns an entry tagged with the originating subsystem, one of
// "bc", "timestep", "coupling", "physics", "driver".
func Sub(name string) *logrus.Entry {
	return logger.WithField("subsystem", name)
}
