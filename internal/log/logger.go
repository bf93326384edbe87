// Package log is jigolo's structured logging facade. It wraps logrus so the
// rest of the code base logs through a small, field-oriented API.
//
// The interactive session owns the terminal, so the default logger discards
// everything until Configure routes it to a file.
package log

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"jigolo/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	isDebug = false
	logger  = NewLogger()
)

// Field is a single structured key/value pair attached to a log entry
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger is a structured logger backed by a logrus entry
type Logger struct {
	entry *logrus.Entry
	file  *os.File
	min   logrus.Level
}

type settings struct {
	out   io.Writer
	file  string
	json  bool
	level logrus.Level
}

// Option configures a Logger
type Option func(*settings)

// WithOutput writes log entries to w
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		s.out = w
	}
}

// WithFile appends log entries to the file at path, creating it if needed
func WithFile(path string) Option {
	return func(s *settings) {
		s.file = path
	}
}

// WithJSON switches to one JSON object per entry
func WithJSON() Option {
	return func(s *settings) {
		s.json = true
	}
}

// WithLevel sets the minimum level for non-debug entries. Unknown names keep
// the info level.
func WithLevel(name string) Option {
	return func(s *settings) {
		if lvl, err := logrus.ParseLevel(name); err == nil {
			s.level = lvl
		}
	}
}

// NewLogger creates a logger. Without options it discards all output.
func NewLogger(opts ...Option) *Logger {
	s := &settings{out: io.Discard, level: logrus.InfoLevel}
	for _, opt := range opts {
		opt(s)
	}

	base := logrus.New()
	base.SetLevel(logrus.DebugLevel)
	if s.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyMsg:  "message",
				logrus.FieldKeyTime: "timestamp",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	l := &Logger{min: s.level}
	out := s.out
	if s.file != "" {
		if err := os.MkdirAll(filepath.Dir(s.file), 0755); err == nil {
			f, err := os.OpenFile(s.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				l.file = f
				out = f
			}
		}
	}
	base.SetOutput(out)

	l.entry = logrus.NewEntry(base)
	return l
}

func (l *Logger) enabled(level logrus.Level) bool {
	if level == logrus.DebugLevel {
		return isDebug
	}
	return level <= l.min
}

// Configure replaces the package-level logger
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// Default returns the package-level logger
func Default() *Logger {
	return logger
}

// SetDebug toggles debug entries for every logger
func SetDebug(debug bool) {
	isDebug = debug
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// With returns a logger that attaches fields to every entry
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), file: l.file, min: l.min}
}

// WithError attaches err and its classification
func (l *Logger) WithError(err error) *Logger {
	return l.With(errorFields(err)...)
}

// WithContext attaches ctx to subsequent entries
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	return &Logger{entry: l.entry.WithContext(ctx), file: l.file, min: l.min}
}

func (l *Logger) log(level logrus.Level, msg string) {
	if !l.enabled(level) {
		return
	}
	l.entry.Log(level, msg)
}

func (l *Logger) logf(level logrus.Level, format string, args ...interface{}) {
	if !l.enabled(level) {
		return
	}
	l.entry.Logf(level, format, args...)
}

// Debug logs msg at debug level
func (l *Logger) Debug(msg string) {
	l.log(logrus.DebugLevel, msg)
}

// Debugf logs a formatted message at debug level
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(logrus.DebugLevel, format, args...)
}

// Info logs msg at info level
func (l *Logger) Info(msg string) {
	l.log(logrus.InfoLevel, msg)
}

// Infof logs a formatted message at info level
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(logrus.InfoLevel, format, args...)
}

// Warn logs msg at warn level
func (l *Logger) Warn(msg string) {
	l.log(logrus.WarnLevel, msg)
}

// Warnf logs a formatted message at warn level
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf(logrus.WarnLevel, format, args...)
}

// Error logs msg at error level
func (l *Logger) Error(msg string) {
	l.log(logrus.ErrorLevel, msg)
}

// Errorf logs a formatted message at error level
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(logrus.ErrorLevel, format, args...)
}

// LogWithFields returns the package-level logger with fields attached
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package-level logger with err attached
func LogWithError(err error) *Logger {
	return logger.WithError(err)
}

// LogError logs err at error level with msg
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}

func errorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}

	fields := []Field{
		F("error", err.Error()),
		F("error_kind", int(errors.KindOf(err))),
	}

	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Path() != "" {
		fields = append(fields, F("path", fileErr.Path()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var storeErr *errors.StoreError
	if errors.As(err, &storeErr) && storeErr.Operation() != "" {
		fields = append(fields, F("operation", storeErr.Operation()))
	}
	return fields
}

func Info(msg string, args ...interface{}) {
	if len(args) == 0 {
		logger.log(logrus.InfoLevel, msg)
		return
	}
	logger.logf(logrus.InfoLevel, msg, args...)
}

// Infof logs a formatted message
func Infof(format string, args ...interface{}) {
	logger.logf(logrus.InfoLevel, format, args...)
}

// Debug logs a message with arguments
func Debug(msg string, args ...interface{}) {
	if len(args) == 0 {
		logger.log(logrus.DebugLevel, msg)
		return
	}
	logger.logf(logrus.DebugLevel, msg+": %v", args...)
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	logger.logf(logrus.DebugLevel, format, args...)
}

// Error logs an error message with arguments
func Error(msg string, args ...interface{}) {
	if len(args) == 0 {
		logger.log(logrus.ErrorLevel, msg)
		return
	}
	logger.logf(logrus.ErrorLevel, msg+": %v", args...)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	logger.logf(logrus.ErrorLevel, format, args...)
}

// Warn logs a warning message with arguments
func Warn(msg string, args ...interface{}) {
	if len(args) == 0 {
		logger.log(logrus.WarnLevel, msg)
		return
	}
	logger.logf(logrus.WarnLevel, msg+": %v", args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.logf(logrus.WarnLevel, format, args...)
}
