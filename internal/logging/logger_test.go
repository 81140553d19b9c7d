// ABOUTME: Tests for logrus setup.
// ABOUTME: Verifies level parsing and file output.
package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"DEBUG":   logrus.DebugLevel,
		" info ":  logrus.InfoLevel,
		"warn":    logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"fatal":   logrus.FatalLevel,
		"trace":   logrus.TraceLevel,
		"":        logrus.WarnLevel,
		"loud":    logrus.WarnLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, GetLevel(in), "level %q", in)
	}
}

func TestSetupWritesToFile(t *testing.T) {
	defer logrus.SetOutput(os.Stderr)
	defer logrus.SetLevel(logrus.InfoLevel)
	defer logrus.SetFormatter(&logrus.TextFormatter{})

	path := filepath.Join(t.TempDir(), "logs", "lift")
	closer := Setup(LoggerSetupParams{
		LogFileName:   path,
		LogLevel:      "info",
		LogFormatJSON: true,
	})

	logrus.WithField("session_id", "abc").Info("workout started")
	logrus.Debug("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"session_id":"abc"`)
	assert.Contains(t, string(data), `"msg":"workout started"`)
	assert.NotContains(t, string(data), "hidden")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestSetupWithoutFile(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	closer := Setup(LoggerSetupParams{LogLevel: "error"})
	require.NotNil(t, closer)
	assert.NoError(t, closer.Close())
	assert.Equal(t, logrus.ErrorLevel, logrus.GetLevel())
}
