package logger

import (
	"io"
	"strings"

	"github.com/FlorianRuen/sclng-languages-card/config"
	"github.com/sirupsen/logrus"
)

// Setup will configure logrus logger
// logs are written to out (stderr for the cli) so the rendered card can go to stdout if needed
func Setup(cfg config.Config, out io.Writer) {
	logrus.SetOutput(out)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if cfg.Logs.OutputLogsAsJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	logrus.SetLevel(StringToLogrusLogType(cfg.Logs.Level))
}

// StringToLogrusLogType will convert string to the right logrus level
func StringToLogrusLogType(logLevel string) logrus.Level {
	logLevelLowerCase := strings.ToLower(strings.TrimSpace(logLevel))
	switch logLevelLowerCase {
	case "error":
		return logrus.ErrorLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}
