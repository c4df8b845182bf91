// Package logging provides a logging abstraction layer that decouples the analytics
// packages from a specific logging framework. Engine components receive a Logger
// through their constructors and only ever log at debug level.
package logging

// Logger is the structured logger handed to every component.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a derived logger carrying err.
	WithError(err error) Logger
	// WithField returns a derived logger carrying one extra field.
	WithField(key string, value interface{}) Logger
	// WithFields returns a derived logger carrying the given fields.
	WithFields(fields ...Field) Logger
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// OrDiscard returns logger, or a logger that drops everything when logger is nil.
// Engine constructors accept a nil logger so library callers are not forced to wire one.
func OrDiscard(logger Logger) Logger {
	if logger == nil {
		return NewDiscardLogger()
	}
	return logger
}

// ForComponent returns logger tagged with the component name, discarding
// output when logger is nil.
func ForComponent(logger Logger, component string) Logger {
	return OrDiscard(logger).WithField(FieldComponent, component)
}
