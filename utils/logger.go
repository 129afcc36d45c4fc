package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  = logrus.New()
	ErrorLogger = logrus.New()
)

func InitLogger() {
	ConfigureLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// ConfigureLogger builds both loggers. level accepts any logrus level name,
// format is "text" (default) or "json".
func ConfigureLogger(level, format string) {
	InfoLogger = logrus.New()
	ErrorLogger = logrus.New()

	// Set output untuk InfoLogger ke stdout
	InfoLogger.SetOutput(os.Stdout)
	// Set output untuk ErrorLogger ke stderr
	ErrorLogger.SetOutput(os.Stderr)

	var formatter logrus.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	if strings.EqualFold(format, "json") {
		formatter = &logrus.JSONFormatter{}
	}
	InfoLogger.SetFormatter(formatter)
	ErrorLogger.SetFormatter(formatter)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	InfoLogger.SetLevel(lvl)
	ErrorLogger.SetLevel(logrus.ErrorLevel)
}
