// ABOUTME: logrus setup for the lift CLI and MCP server.
// ABOUTME: Parses levels, picks the formatter and optionally rotates a log file with lumberjack.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerSetupParams struct {
	LogFileName   string
	LogToStderr   bool
	LogLevel      string
	LogFormatJSON bool
}

// Setup configures the standard logrus logger. Logs go to stderr unless a
// log file is given, so command output on stdout stays clean. The returned
// closer releases the log file and is never nil.
func Setup(params LoggerSetupParams) io.Closer {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{})
	}

	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.LogFileName == "" {
		logrus.SetOutput(os.Stderr)
		return nopCloser{}
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}
	if err := os.MkdirAll(filepath.Dir(params.LogFileName), 0750); err != nil {
		logrus.SetOutput(os.Stderr)
		logrus.Errorf("create log directory: %s", err)
		return nopCloser{}
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   params.LogFileName,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		LocalTime:  false, // false -> use UTC
		Compress:   true,
	}

	if params.LogToStderr {
		logrus.SetOutput(io.MultiWriter(os.Stderr, lumberJackLogger))
	} else {
		logrus.SetOutput(lumberJackLogger)
	}
	return lumberJackLogger
}

// GetLevel parses a level name; unknown names fall back to warn.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "info":
		return logrus.InfoLevel
	case "trace":
		return logrus.TraceLevel
	case "warn", "warning":
		return logrus.WarnLevel
	default:
		return logrus.WarnLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
