package ulogger

import (
	"github.com/ordishs/gocore"
)

// GoCoreLogger adapts the gocore logger. Its level is fixed at creation.
type GoCoreLogger struct {
	*gocore.Logger
	skipFrame int
}

func NewGoCoreLogger(service string, options ...Option) *GoCoreLogger {
	if service == "" {
		service = "txhandler"
	}

	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	return &GoCoreLogger{
		Logger:    gocore.Log(service, gocore.NewLogLevelFromString(opts.logLevel)),
		skipFrame: opts.skip,
	}
}

// New returns a gocore logger for service at the level of g.
func (g *GoCoreLogger) New(service string, options ...Option) Logger {
	opts := &Options{skip: g.skipFrame}
	for _, o := range options {
		o(opts)
	}

	return &GoCoreLogger{
		Logger:    gocore.Log(service, g.Logger.GetLogLevel()),
		skipFrame: opts.skip,
	}
}

// Duplicate shares the underlying gocore logger, only the skip frame option is honoured.
func (g *GoCoreLogger) Duplicate(options ...Option) Logger {
	opts := &Options{skip: g.skipFrame}
	for _, o := range options {
		o(opts)
	}

	return &GoCoreLogger{Logger: g.Logger, skipFrame: opts.skip}
}

// SetLogLevel is a no-op, the gocore level is fixed when the logger is created.
func (g *GoCoreLogger) SetLogLevel(_ string) {}
