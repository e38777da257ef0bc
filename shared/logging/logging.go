// Package logging builds the logrus logger every service uses.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to stdout at the given level.
// An unparseable level falls back to info and says so.
func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
		logger.Warnf("Unknown log level %q, using info", level)
		return logger
	}
	logger.SetLevel(lvl)
	return logger
}
