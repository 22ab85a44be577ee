// Package ulogger defines the Logger used throughout the module and its zerolog, gocore and
// test implementations.
package ulogger

// ANSI codes used by the console output of the zerolog logger.
const (
	colorRed    = 31
	colorGreen  = 32
	colorYellow = 33
	colorBlue   = 34
	colorWhite  = 37
	colorBold   = 1
)

// Logger is the printf style logger handed to every component. New derives a logger for
// another service, Duplicate a copy of the same service whose options can differ.
type Logger interface {
	LogLevel() int
	SetLogLevel(level string)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	New(service string, options ...Option) Logger
	Duplicate(options ...Option) Logger
}

// New returns the logger selected by WithLoggerType, zerolog by default.
func New(service string, options ...Option) Logger {
	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	if opts.loggerType == "gocore" {
		return NewGoCoreLogger(service, options...)
	}

	return NewZeroLogger(service, options...)
}
