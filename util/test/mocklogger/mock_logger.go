// Package mocklogger provides a ulogger.Logger that records every call for assertions.
package mocklogger

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/bsv-blockchain/txhandler/ulogger"
)

type recording struct {
	mu       sync.Mutex
	calls    map[string]int
	messages []string
}

// MockLogger records the number of calls per method and every formatted message. Loggers
// derived with New or Duplicate share the recording of their parent.
type MockLogger struct {
	rec *recording
}

func NewTestLogger() *MockLogger {
	return &MockLogger{
		rec: &recording{calls: make(map[string]int)},
	}
}

func (l *MockLogger) LogLevel() int {
	return 0
}

func (l *MockLogger) SetLogLevel(_ string) {}

func (l *MockLogger) New(_ string, _ ...ulogger.Option) ulogger.Logger {
	return &MockLogger{rec: l.rec}
}

func (l *MockLogger) Duplicate(_ ...ulogger.Option) ulogger.Logger {
	return l
}

func (l *MockLogger) Debugf(format string, args ...interface{}) {
	l.record("Debugf", format, args)
}

func (l *MockLogger) Infof(format string, args ...interface{}) {
	l.record("Infof", format, args)
}

func (l *MockLogger) Warnf(format string, args ...interface{}) {
	l.record("Warnf", format, args)
}

func (l *MockLogger) Errorf(format string, args ...interface{}) {
	l.record("Errorf", format, args)
}

func (l *MockLogger) Fatalf(format string, args ...interface{}) {
	l.record("Fatalf", format, args)
}

func (l *MockLogger) record(methodName, format string, args []interface{}) {
	l.rec.mu.Lock()
	defer l.rec.mu.Unlock()

	l.rec.calls[methodName]++
	l.rec.messages = append(l.rec.messages, methodName+": "+fmt.Sprintf(format, args...))
}

// AssertNumberOfCalls verifies the number of calls to a method.
func (l *MockLogger) AssertNumberOfCalls(t *testing.T, methodName string, expectedCalls int) {
	t.Helper()

	l.rec.mu.Lock()
	defer l.rec.mu.Unlock()

	if actualCalls := l.rec.calls[methodName]; actualCalls != expectedCalls {
		t.Errorf("Expected %v calls to %s, got %v", expectedCalls, methodName, actualCalls)
	}
}

// Messages returns the recorded messages, each prefixed with the method name.
func (l *MockLogger) Messages() []string {
	l.rec.mu.Lock()
	defer l.rec.mu.Unlock()

	messages := make([]string, len(l.rec.messages))
	copy(messages, l.rec.messages)

	return messages
}

// Contains reports whether any recorded message contains substr.
func (l *MockLogger) Contains(substr string) bool {
	for _, message := range l.Messages() {
		if strings.Contains(message, substr) {
			return true
		}
	}

	return false
}

// Reset clears all recorded calls and messages.
func (l *MockLogger) Reset() {
	l.rec.mu.Lock()
	defer l.rec.mu.Unlock()

	l.rec.calls = make(map[string]int)
	l.rec.messages = nil
}
