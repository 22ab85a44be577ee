package ulogger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ordishs/gocore"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

const callerWidth = 32

var zerologLevels = map[string]zerolog.Level{
	"DEBUG": zerolog.DebugLevel,
	"INFO":  zerolog.InfoLevel,
	"WARN":  zerolog.WarnLevel,
	"ERROR": zerolog.ErrorLevel,
	"FATAL": zerolog.FatalLevel,
	"PANIC": zerolog.PanicLevel,
}

// gocoreLevels maps zerolog levels onto the gocore numbering returned by LogLevel.
var gocoreLevels = map[zerolog.Level]int{
	zerolog.DebugLevel: int(gocore.DEBUG),
	zerolog.InfoLevel:  int(gocore.INFO),
	zerolog.WarnLevel:  int(gocore.WARN),
	zerolog.ErrorLevel: int(gocore.ERROR),
	zerolog.FatalLevel: int(gocore.FATAL),
}

var levelColors = map[string]int{
	"debug": colorBlue,
	"info":  colorGreen,
	"warn":  colorYellow,
	"error": colorRed,
	"fatal": colorRed,
	"panic": colorRed,
}

// ZLoggerWrapper is the zerolog backed Logger. Unless PRETTY_LOGS is false it writes
// aligned console lines of the form "time | LEVEL | service | message", otherwise JSON.
type ZLoggerWrapper struct {
	zerolog.Logger
	service string
	w       io.Writer
}

func NewZeroLogger(service string, options ...Option) *ZLoggerWrapper {
	if service == "" {
		service = "txhandler"
	}

	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	var base zerolog.Logger

	if gocore.Config().GetBool("PRETTY_LOGS", true) {
		base = zerolog.New(consoleWriter(opts.writer, service)).With().
			CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount + 1 + opts.skip).
			Timestamp().
			Logger()
	} else {
		base = zerolog.New(opts.writer).With().
			CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount + 1 + opts.skip).
			Timestamp().
			Str("service", service).
			Logger()
	}

	z := &ZLoggerWrapper{Logger: base, service: service, w: opts.writer}
	z.SetLogLevel(opts.logLevel)

	return z
}

func consoleWriter(writer io.Writer, service string) zerolog.ConsoleWriter {
	noColor := !isTerminal(writer)

	return zerolog.ConsoleWriter{
		Out:        writer,
		NoColor:    noColor,
		TimeFormat: time.RFC3339,
		FormatTimestamp: func(i interface{}) string {
			s, _ := i.(string)
			parsed, _ := time.Parse(time.RFC3339, s)

			return parsed.Format("15:04:05")
		},
		FormatLevel: func(i interface{}) string {
			level, _ := i.(string)
			label := strings.ToUpper(fmt.Sprintf("%-6s", level))

			color, found := levelColors[level]
			if !found {
				color = colorWhite
			}

			return fmt.Sprintf("| %s|", colorize(label, color, noColor))
		},
		FormatMessage: func(i interface{}) string {
			return fmt.Sprintf("| %-6s| %s", service, i)
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf("%s:", i)
		},
		FormatFieldValue: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("%s", i))
		},
		FormatCaller: func(i interface{}) string {
			c, _ := i.(string)
			if c == "" {
				return c
			}

			return colorize(fmt.Sprintf("%-*s", callerWidth, shortenCaller(c)), colorBold, noColor)
		},
	}
}

// shortenCaller makes path relative to the working directory and keeps as many trailing
// path elements as fit in callerWidth.
func shortenCaller(path string) string {
	if cwd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(cwd, path); err == nil {
			path = rel
		}
	}

	parts := strings.Split(path, "/")
	short := parts[len(parts)-1]

	for i := len(parts) - 2; i >= 0 && len(short)+len(parts[i])+1 <= callerWidth; i-- {
		short = parts[i] + "/" + short
	}

	return short
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

// New returns a logger for another service writing to the same writer, at the level of z
// unless overridden.
func (z *ZLoggerWrapper) New(service string, options ...Option) Logger {
	opts := &Options{
		writer:     z.w,
		loggerType: "zerolog",
		logLevel:   z.Logger.GetLevel().String(),
	}

	for _, o := range options {
		o(opts)
	}

	return NewZeroLogger(service, WithWriter(opts.writer), WithLevel(opts.logLevel), WithSkipFrame(opts.skip))
}

// Duplicate returns a copy of z whose level can be changed without affecting z.
func (z *ZLoggerWrapper) Duplicate(options ...Option) Logger {
	opts := &Options{logLevel: z.Logger.GetLevel().String()}
	for _, o := range options {
		o(opts)
	}

	dup := &ZLoggerWrapper{Logger: z.Logger, service: z.service, w: z.w}
	dup.SetLogLevel(opts.logLevel)

	return dup
}

// SetLogLevel accepts DEBUG, INFO, WARN, ERROR, FATAL and PANIC in any case. Anything else
// selects INFO.
func (z *ZLoggerWrapper) SetLogLevel(logLevel string) {
	level, found := zerologLevels[strings.ToUpper(logLevel)]
	if !found {
		level = zerolog.InfoLevel
	}

	z.Logger = z.Logger.Level(level)
}

func (z *ZLoggerWrapper) LogLevel() int {
	if level, found := gocoreLevels[z.Logger.GetLevel()]; found {
		return level
	}

	return int(gocore.INFO)
}

func (z *ZLoggerWrapper) Debugf(format string, args ...interface{}) {
	z.Logger.Debug().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Infof(format string, args ...interface{}) {
	z.Logger.Info().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Warnf(format string, args ...interface{}) {
	z.Logger.Warn().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Errorf(format string, args ...interface{}) {
	z.Logger.Error().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Fatalf(format string, args ...interface{}) {
	z.Logger.Fatal().Msgf(format, args...)
}

// colorize wraps s in the ANSI code c, unless disabled, NO_COLOR is set or c is 0.
func colorize(s interface{}, c int, disabled bool) string {
	if disabled || c == 0 || os.Getenv("NO_COLOR") != "" {
		return fmt.Sprintf("%s", s)
	}

	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}
