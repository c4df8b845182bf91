package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogrusAdapter implements Logger over a logrus entry.
type LogrusAdapter struct {
	logger *logrus.Logger
	entry  *logrus.Entry
}

// NewLogrus builds a logrus logger for a level name and a format, "json" or
// anything else for text. An unknown level logs a warning and falls back to
// info.
func NewLogrus(level, format string) *logrus.Logger {
	logger := logrus.New()

	if strings.EqualFold(format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	return logger
}

// NewLogrusAdapter creates a Logger with the given level and format.
func NewLogrusAdapter(level, format string) Logger {
	return NewLogrusAdapterFromLogger(NewLogrus(level, format))
}

// NewLogrusAdapterFromLogger wraps an existing logrus logger. A nil logger
// gets a fresh one.
func NewLogrusAdapterFromLogger(logger *logrus.Logger) Logger {
	if logger == nil {
		logger = logrus.New()
	}
	return &LogrusAdapter{logger: logger, entry: logrus.NewEntry(logger)}
}

// NewDiscardLogger returns a logger whose output is thrown away.
func NewDiscardLogger() Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return NewLogrusAdapterFromLogger(logger)
}

func (l *LogrusAdapter) Debug(msg string, fields ...Field) { l.log(logrus.DebugLevel, msg, fields) }
func (l *LogrusAdapter) Info(msg string, fields ...Field)  { l.log(logrus.InfoLevel, msg, fields) }
func (l *LogrusAdapter) Warn(msg string, fields ...Field)  { l.log(logrus.WarnLevel, msg, fields) }
func (l *LogrusAdapter) Error(msg string, fields ...Field) { l.log(logrus.ErrorLevel, msg, fields) }

// log skips building the field map when the level is disabled; engine
// components log per record at debug level.
func (l *LogrusAdapter) log(level logrus.Level, msg string, fields []Field) {
	if !l.logger.IsLevelEnabled(level) {
		return
	}
	entry := l.entry
	if len(fields) > 0 {
		entry = entry.WithFields(toLogrusFields(fields))
	}
	entry.Log(level, msg)
}

func (l *LogrusAdapter) WithError(err error) Logger {
	return l.derive(l.entry.WithError(err))
}

func (l *LogrusAdapter) WithField(key string, value interface{}) Logger {
	return l.derive(l.entry.WithField(key, value))
}

func (l *LogrusAdapter) WithFields(fields ...Field) Logger {
	return l.derive(l.entry.WithFields(toLogrusFields(fields)))
}

func (l *LogrusAdapter) derive(entry *logrus.Entry) Logger {
	return &LogrusAdapter{logger: l.logger, entry: entry}
}

func toLogrusFields(fields []Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}
