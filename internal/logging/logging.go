package logging

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogging builds the JSON logger used across the server.
func SetupLogging(level string) (*logrus.Logger, error) {
	logger := logrus.Logger{
		Formatter: &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		},
		Out:   os.Stdout,
		Hooks: make(logrus.LevelHooks),
		Level: logrus.InfoLevel,
	}

	if level != "" {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			return &logger, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		logger.SetLevel(parsed)
	}

	return &logger, nil
}
