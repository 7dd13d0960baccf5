package logger

import (
	"bytes"
	"testing"

	"github.com/FlorianRuen/sclng-languages-card/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestStringToLogrusLogType(t *testing.T) {
	tests := []struct {
		input    string
		expected logrus.Level
	}{
		{input: "error", expected: logrus.ErrorLevel},
		{input: "WARN", expected: logrus.WarnLevel},
		{input: "warning", expected: logrus.WarnLevel},
		{input: " Info ", expected: logrus.InfoLevel},
		{input: "debug", expected: logrus.DebugLevel},
		{input: "trace", expected: logrus.ErrorLevel},
		{input: "", expected: logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, StringToLogrusLogType(tt.input))
		})
	}
}

func TestSetupJSONOutput(t *testing.T) {
	cfg := config.GetDefault()
	cfg.Logs.Level = "info"
	cfg.Logs.OutputLogsAsJSON = true

	var buf bytes.Buffer
	Setup(*cfg, &buf)

	logrus.WithField("pages", 2).Info("languages collected")

	assert.Contains(t, buf.String(), `"pages":2`)
	assert.Contains(t, buf.String(), `"msg":"languages collected"`)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
