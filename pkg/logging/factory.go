package logging

import (
	"sync"
)

// DefaultLoggerFactory implements LoggerFactory using zap loggers
type DefaultLoggerFactory struct {
	loggers map[string]Logger
	opts    Options
	mu      sync.Mutex
}

// NewLoggerFactory creates a new logger factory
func NewLoggerFactory(opts Options) *DefaultLoggerFactory {
	return &DefaultLoggerFactory{
		loggers: make(map[string]Logger),
		opts:    opts,
	}
}

// CreateLogger creates a basic logger for the specified component. Loggers
// are cached per component; if zap cannot be built a no-op logger is used.
func (f *DefaultLoggerFactory) CreateLogger(component string) Logger {
	f.mu.Lock()
	defer f.mu.Unlock()

	if logger, exists := f.loggers[component]; exists {
		return logger
	}

	var logger Logger
	zapLogger, err := NewZapLogger(component, f.opts)
	if err != nil {
		logger = NewNopLogger().WithComponent(component)
	} else {
		logger = zapLogger
	}

	f.loggers[component] = logger
	return logger
}

// CreateStoreLogger creates a logger for repository operations on entity
func (f *DefaultLoggerFactory) CreateStoreLogger(entity string) Logger {
	return NewStoreLogger(f.CreateLogger("store"), entity)
}

// DatabaseLoggerFactory extends the default factory with database persistence
type DatabaseLoggerFactory struct {
	*DefaultLoggerFactory
	repository LogRepository
	pending    *sync.WaitGroup
}

// NewDatabaseLoggerFactory creates a logger factory with database persistence
func NewDatabaseLoggerFactory(opts Options, repository LogRepository) *DatabaseLoggerFactory {
	return &DatabaseLoggerFactory{
		DefaultLoggerFactory: NewLoggerFactory(opts),
		repository:           repository,
		pending:              &sync.WaitGroup{},
	}
}

// CreateLogger creates a database-backed logger for the specified component
func (f *DatabaseLoggerFactory) CreateLogger(component string) Logger {
	return f.wrap(component, f.DefaultLoggerFactory.CreateLogger(component))
}

// CreateStoreLogger creates a database-backed logger for repository operations on entity
func (f *DatabaseLoggerFactory) CreateStoreLogger(entity string) Logger {
	base := NewStoreLogger(f.DefaultLoggerFactory.CreateLogger("store"), entity)
	return f.wrap("store", base).WithContext(map[string]interface{}{"entity": entity})
}

// Flush waits for in-flight log writes to finish
func (f *DatabaseLoggerFactory) Flush() {
	f.pending.Wait()
}

func (f *DatabaseLoggerFactory) wrap(component string, base Logger) Logger {
	return &DatabaseLogger{
		base:       base,
		component:  component,
		context:    make(map[string]interface{}),
		repository: f.repository,
		pending:    f.pending,
	}
}

// DatabaseLogger wraps a base logger with database persistence
type DatabaseLogger struct {
	base       Logger
	component  string
	context    map[string]interface{}
	repository LogRepository
	pending    *sync.WaitGroup
}

// Info logs informational messages and persists to database
func (d *DatabaseLogger) Info(msg string, fields map[string]interface{}) {
	d.base.Info(msg, fields)
	d.persistLog("INFO", msg, nil, fields)
}

// Error logs error messages and persists to database
func (d *DatabaseLogger) Error(msg string, err error, fields map[string]interface{}) {
	d.base.Error(msg, err, fields)
	d.persistLog("ERROR", msg, err, fields)
}

// Warn logs warning messages and persists to database
func (d *DatabaseLogger) Warn(msg string, fields map[string]interface{}) {
	d.base.Warn(msg, fields)
	d.persistLog("WARN", msg, nil, fields)
}

// Debug logs debug messages. Debug output is not persisted.
func (d *DatabaseLogger) Debug(msg string, fields map[string]interface{}) {
	d.base.Debug(msg, fields)
}

// WithComponent creates a new logger for another component
func (d *DatabaseLogger) WithComponent(component string) Logger {
	return &DatabaseLogger{
		base:       d.base.WithComponent(component),
		component:  component,
		context:    copyFields(d.context),
		repository: d.repository,
		pending:    d.pending,
	}
}

// WithContext creates a new logger with additional context fields
func (d *DatabaseLogger) WithContext(ctx map[string]interface{}) Logger {
	return &DatabaseLogger{
		base:       d.base.WithContext(ctx),
		component:  d.component,
		context:    mergeFields(d.context, ctx),
		repository: d.repository,
		pending:    d.pending,
	}
}

// persistLog saves the log entry to the database without blocking the caller
func (d *DatabaseLogger) persistLog(level, message string, err error, fields map[string]interface{}) {
	allFields := mergeFields(d.context, fields)
	entry := LogEntry{
		Component: d.component,
		Level:     level,
		Message:   message,
		Fields:    allFields,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if entity, ok := allFields["entity"].(string); ok {
		entry.Entity = entity
	}

	d.pending.Add(1)
	go func() {
		defer d.pending.Done()
		if saveErr := d.repository.SaveLog(entry); saveErr != nil {
			// base logger only, persisting this would recurse
			d.base.Error("Failed to persist log to database", saveErr, map[string]interface{}{
				"original_message": message,
				"original_level":   level,
			})
		}
	}()
}
