package logging

import "fmt"

// ScopedLogger wraps a base logger and tags every entry with a scope
type ScopedLogger struct {
	base    Logger
	scope   string
	prefix  bool
	context map[string]interface{}
}

// NewScopedLogger creates a new scope-specific logger
func NewScopedLogger(base Logger, scope string) *ScopedLogger {
	return &ScopedLogger{
		base:    base,
		scope:   scope,
		prefix:  true,
		context: make(map[string]interface{}),
	}
}

// Info logs informational messages with scope context
func (s *ScopedLogger) Info(msg string, fields map[string]interface{}) {
	s.base.Info(s.format(msg), s.enrichFields(fields))
}

// Error logs error messages with scope context
func (s *ScopedLogger) Error(msg string, err error, fields map[string]interface{}) {
	s.base.Error(s.format(msg), err, s.enrichFields(fields))
}

// Warn logs warning messages with scope context
func (s *ScopedLogger) Warn(msg string, fields map[string]interface{}) {
	s.base.Warn(s.format(msg), s.enrichFields(fields))
}

// Debug logs debug messages with scope context
func (s *ScopedLogger) Debug(msg string, fields map[string]interface{}) {
	s.base.Debug(s.format(msg), s.enrichFields(fields))
}

// WithComponent moves the underlying logger to another component
func (s *ScopedLogger) WithComponent(component string) Logger {
	return &ScopedLogger{
		base:    s.base.WithComponent(component),
		scope:   s.scope,
		prefix:  s.prefix,
		context: copyFields(s.context),
	}
}

// WithContext creates a new logger with additional context fields
func (s *ScopedLogger) WithContext(ctx map[string]interface{}) Logger {
	return &ScopedLogger{
		base:    s.base,
		scope:   s.scope,
		prefix:  s.prefix,
		context: mergeFields(s.context, ctx),
	}
}

func (s *ScopedLogger) format(msg string) string {
	if !s.prefix {
		return msg
	}
	return fmt.Sprintf("[%s] %s", s.scope, msg)
}

// enrichFields combines scope context with provided fields. Provided
// fields override context; the scope key always wins.
func (s *ScopedLogger) enrichFields(fields map[string]interface{}) map[string]interface{} {
	enriched := mergeFields(s.context, fields)
	enriched["scope"] = s.scope
	return enriched
}

// StoreLogger tags entries with the table a repository works on
type StoreLogger struct {
	*ScopedLogger
	entity string
}

// NewStoreLogger creates a logger for repository operations on entity. The
// scope goes into the fields only; base is expected to carry the "store"
// component prefix already.
func NewStoreLogger(base Logger, entity string) *StoreLogger {
	scoped := NewScopedLogger(base, "store")
	scoped.prefix = false
	return &StoreLogger{
		ScopedLogger: scoped.WithContext(map[string]interface{}{
			"entity": entity,
		}).(*ScopedLogger),
		entity: entity,
	}
}

// WithRecord adds the record id to the logger context
func (s *StoreLogger) WithRecord(id uint) Logger {
	return s.WithContext(map[string]interface{}{
		"record_id": id,
	})
}
