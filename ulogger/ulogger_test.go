package ulogger_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bsv-blockchain/txhandler/ulogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level           string
		expectedOutputs map[string]bool
	}{
		{
			level: "DEBUG",
			expectedOutputs: map[string]bool{
				"DEBUG": true,
				"INFO":  true,
				"WARN":  true,
				"ERROR": true,
			},
		},
		{
			level: "INFO",
			expectedOutputs: map[string]bool{
				"DEBUG": false,
				"INFO":  true,
				"WARN":  true,
				"ERROR": true,
			},
		},
		{
			level: "WARN",
			expectedOutputs: map[string]bool{
				"DEBUG": false,
				"INFO":  false,
				"WARN":  true,
				"ERROR": true,
			},
		},
		{
			level: "ERROR",
			expectedOutputs: map[string]bool{
				"DEBUG": false,
				"INFO":  false,
				"WARN":  false,
				"ERROR": true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer

			logger := ulogger.New("test-service", ulogger.WithLevel(tt.level), ulogger.WithWriter(&buf))

			logger.Debugf("DEBUG message")
			logger.Infof("INFO message")
			logger.Warnf("WARN message")
			logger.Errorf("ERROR message")

			output := buf.String()

			for _, level := range []string{"DEBUG", "INFO", "WARN", "ERROR"} {
				got := strings.Contains(output, level+" message")
				assert.Equal(t, tt.expectedOutputs[level], got, "level %s in output %q", level, output)
			}
		})
	}
}

func TestZeroLoggerServiceName(t *testing.T) {
	var buf bytes.Buffer

	logger := ulogger.New("handler", ulogger.WithWriter(&buf))
	logger.Infof("batch %d accepted %d", 1, 2)

	output := buf.String()
	assert.Contains(t, output, "handler")
	assert.Contains(t, output, "batch 1 accepted 2")
}

func TestZeroLoggerNewInheritsWriterAndLevel(t *testing.T) {
	var buf bytes.Buffer

	parent := ulogger.New("parent", ulogger.WithWriter(&buf), ulogger.WithLevel("WARN"))
	child := parent.New("child")

	child.Infof("hidden")
	child.Warnf("shown")

	output := buf.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "shown")
	assert.Contains(t, output, "child")
}

func TestZeroLoggerDuplicateChangesLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := ulogger.New("dup", ulogger.WithWriter(&buf), ulogger.WithLevel("INFO"))
	dup := logger.Duplicate(ulogger.WithLevel("DEBUG"))

	logger.Debugf("from original")
	dup.Debugf("from duplicate")

	output := buf.String()
	assert.NotContains(t, output, "from original")
	assert.Contains(t, output, "from duplicate")
}

func TestSetLogLevel(t *testing.T) {
	logger := ulogger.NewZeroLogger("level", ulogger.WithWriter(&bytes.Buffer{}))

	logger.SetLogLevel("debug")
	debugLevel := logger.LogLevel()

	logger.SetLogLevel("error")
	errorLevel := logger.LogLevel()

	require.NotEqual(t, debugLevel, errorLevel)

	logger.SetLogLevel("nonsense")
	logger.SetLogLevel("INFO")
	assert.Equal(t, logger.LogLevel(), func() int {
		l := ulogger.NewZeroLogger("level", ulogger.WithWriter(&bytes.Buffer{}))
		return l.LogLevel()
	}())
}

func TestTestLogger(t *testing.T) {
	var logger ulogger.Logger = ulogger.TestLogger{}

	logger.Infof("nothing %s", "happens")
	logger.Fatalf("not even %s", "this")

	assert.Equal(t, logger, logger.New("x"))
	assert.Equal(t, logger, logger.Duplicate())
}

func TestVerboseTestLogger(t *testing.T) {
	logger := ulogger.NewVerboseTestLogger(t)

	logger.Debugf("debug %d", 1)
	logger.Infof("info %d", 2)

	assert.Equal(t, 0, logger.LogLevel())

	child := logger.New("validator", ulogger.WithLevel("WARN"))
	assert.Equal(t, 2, child.LogLevel())
	assert.Equal(t, 0, logger.LogLevel())

	child.Infof("filtered")

	dup := child.Duplicate()
	assert.Equal(t, 2, dup.LogLevel())

	logger.SetLogLevel("error")
	assert.Equal(t, 3, logger.LogLevel())

	logger.SetLogLevel("bogus")
	assert.Equal(t, 3, logger.LogLevel())
}
