package logging

import "sync"

// Buffer holds log calls made while a database transaction is open.
// Commit replays every call in order. Rollback replays only warnings and
// errors: info and debug lines describe writes that were undone.
type Buffer struct {
	mu    sync.Mutex
	calls []bufferedCall
}

type bufferedCall struct {
	failure bool
	emit    func()
}

// NewBuffer creates an empty buffer
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Factory wraps base so every logger it creates writes into the buffer
func (b *Buffer) Factory(base LoggerFactory) LoggerFactory {
	return &bufferedFactory{base: base, buffer: b}
}

// Commit emits every buffered call
func (b *Buffer) Commit() {
	b.flush(false)
}

// Rollback emits buffered warnings and errors and drops the rest
func (b *Buffer) Rollback() {
	b.flush(true)
}

func (b *Buffer) add(failure bool, emit func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, bufferedCall{failure: failure, emit: emit})
}

func (b *Buffer) flush(failuresOnly bool) {
	b.mu.Lock()
	calls := b.calls
	b.calls = nil
	b.mu.Unlock()

	for _, call := range calls {
		if failuresOnly && !call.failure {
			continue
		}
		call.emit()
	}
}

type bufferedFactory struct {
	base   LoggerFactory
	buffer *Buffer
}

func (f *bufferedFactory) CreateLogger(component string) Logger {
	return &bufferedLogger{base: f.base.CreateLogger(component), buffer: f.buffer}
}

func (f *bufferedFactory) CreateStoreLogger(entity string) Logger {
	return &bufferedLogger{base: f.base.CreateStoreLogger(entity), buffer: f.buffer}
}

// bufferedLogger defers every call to its buffer
type bufferedLogger struct {
	base   Logger
	buffer *Buffer
}

func (l *bufferedLogger) Info(msg string, fields map[string]interface{}) {
	fields = copyFields(fields)
	l.buffer.add(false, func() { l.base.Info(msg, fields) })
}

func (l *bufferedLogger) Error(msg string, err error, fields map[string]interface{}) {
	fields = copyFields(fields)
	l.buffer.add(true, func() { l.base.Error(msg, err, fields) })
}

func (l *bufferedLogger) Warn(msg string, fields map[string]interface{}) {
	fields = copyFields(fields)
	l.buffer.add(true, func() { l.base.Warn(msg, fields) })
}

func (l *bufferedLogger) Debug(msg string, fields map[string]interface{}) {
	fields = copyFields(fields)
	l.buffer.add(false, func() { l.base.Debug(msg, fields) })
}

func (l *bufferedLogger) WithComponent(component string) Logger {
	return &bufferedLogger{base: l.base.WithComponent(component), buffer: l.buffer}
}

func (l *bufferedLogger) WithContext(ctx map[string]interface{}) Logger {
	return &bufferedLogger{base: l.base.WithContext(ctx), buffer: l.buffer}
}
