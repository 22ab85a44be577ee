package ulogger

import (
	"strings"
	"sync"
	"testing"
)

var verboseLevels = map[string]int{
	"DEBUG": 0,
	"INFO":  1,
	"WARN":  2,
	"ERROR": 3,
	"FATAL": 4,
}

// VerboseTestLogger routes log lines through t.Logf, so they only show up for failing or -v tests.
// Loggers created with New share the test and the lock but carry their own service tag.
type VerboseTestLogger struct {
	t       *testing.T
	mutex   *sync.Mutex
	service string
	level   int
}

func NewVerboseTestLogger(t *testing.T) *VerboseTestLogger {
	return &VerboseTestLogger{t: t, mutex: &sync.Mutex{}, service: "test"}
}

func (l *VerboseTestLogger) LogLevel() int {
	return l.level
}

func (l *VerboseTestLogger) SetLogLevel(level string) {
	if lvl, ok := verboseLevels[strings.ToUpper(level)]; ok {
		l.level = lvl
	}
}

func (l *VerboseTestLogger) New(service string, options ...Option) Logger {
	child := &VerboseTestLogger{t: l.t, mutex: l.mutex, service: service, level: l.level}

	opts := &Options{}
	for _, o := range options {
		o(opts)
	}

	if opts.logLevel != "" {
		child.SetLogLevel(opts.logLevel)
	}

	return child
}

func (l *VerboseTestLogger) Duplicate(options ...Option) Logger {
	return l.New(l.service, options...)
}

func (l *VerboseTestLogger) Debugf(format string, args ...interface{}) {
	l.log("DEBUG", format, args...)
}

func (l *VerboseTestLogger) Infof(format string, args ...interface{}) {
	l.log("INFO", format, args...)
}

func (l *VerboseTestLogger) Warnf(format string, args ...interface{}) {
	l.log("WARN", format, args...)
}

func (l *VerboseTestLogger) Errorf(format string, args ...interface{}) {
	l.log("ERROR", format, args...)
}

func (l *VerboseTestLogger) Fatalf(format string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.t.Helper()
	l.t.Fatalf("[FATAL] ["+l.service+"] "+format, args...)
}

func (l *VerboseTestLogger) log(level string, format string, args ...interface{}) {
	if verboseLevels[level] < l.level {
		return
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.t.Helper()
	l.t.Logf("["+level+"] ["+l.service+"] "+format, args...)
}
