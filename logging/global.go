package logging

import (
	"sync"
)

var (
	globalLogger Logger
	globalMu     sync.RWMutex
	once         sync.Once
)

func initGlobal() {
	once.Do(func() {
		globalMu.Lock()
		defer globalMu.Unlock()
		if globalLogger == nil {
			globalLogger = NewLogger(DefaultConfig())
		}
	})
}

// Global returns the global logger instance.
func Global() Logger {
	globalMu.RLock()
	if globalLogger != nil {
		defer globalMu.RUnlock()
		return globalLogger
	}
	globalMu.RUnlock()

	initGlobal()

	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetGlobal replaces the global logger with the given logger.
func SetGlobal(logger Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// Init initializes the global logger with the given config.
func Init(config Config) Logger {
	logger := NewLogger(config)
	SetGlobal(logger)
	return logger
}

// Named creates a child logger from the global logger with the given name.
func Named(name string) Logger {
	return Global().Named(name)
}
