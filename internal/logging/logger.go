package logging

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/reelmates/backend/config"
)

// NewLogger creates the application logger. Development gets human-readable
// text output at debug level; everything else gets JSON at info level.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if config.IsDevelopment() {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}
