package util

import (
	"sync"
)

var (
	globalLogger LoggerInterface
	globalMu     sync.RWMutex
)

// InitLogger installs the global logger. Calling it again replaces the
// previous logger and closes its outputs.
func InitLogger(cfg LoggerConfig) error {
	logger, err := NewLogger(cfg)
	if err != nil {
		return err
	}
	SetLogger(logger)
	return nil
}

// SetLogger swaps the global logger; nil disables logging
func SetLogger(logger LoggerInterface) {
	globalMu.Lock()
	previous := globalLogger
	globalLogger = logger
	globalMu.Unlock()

	if previous != nil && previous != logger {
		_ = previous.Close()
	}
}

// GetLogger returns the global logger, or nil before initialisation
func GetLogger() LoggerInterface {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

func LogDebug(msg string, fields ...Field) {
	if l := GetLogger(); l != nil {
		l.Debug(msg, fields...)
	}
}

func LogDebugf(format string, args ...interface{}) {
	if l := GetLogger(); l != nil {
		l.Debugf(format, args...)
	}
}

// LogInfo convenience functions for logging
func LogInfo(msg string, fields ...Field) {
	if l := GetLogger(); l != nil {
		l.Info(msg, fields...)
	}
}

func LogInfof(format string, args ...interface{}) {
	if l := GetLogger(); l != nil {
		l.Infof(format, args...)
	}
}

func LogWarn(msg string, fields ...Field) {
	if l := GetLogger(); l != nil {
		l.Warn(msg, fields...)
	}
}

func LogWarnf(format string, args ...interface{}) {
	if l := GetLogger(); l != nil {
		l.Warnf(format, args...)
	}
}

func LogError(msg string, fields ...Field) {
	if l := GetLogger(); l != nil {
		l.Error(msg, fields...)
	}
}

func LogErrorf(format string, args ...interface{}) {
	if l := GetLogger(); l != nil {
		l.Errorf(format, args...)
	}
}
