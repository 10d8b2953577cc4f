// Package common provides logging utilities for the application
package common

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// --------------------------------------------------------------------------
// Log Levels
// --------------------------------------------------------------------------

// LogLevel defines the verbosity of a logger
type LogLevel int

const (
	CRITICAL LogLevel = iota
	ERROR
	WARNING
	INFO
	DEBUG
)

// --------------------------------------------------------------------------
// Logger Interface
// --------------------------------------------------------------------------

// ILogger is the interface implemented by all named loggers
type ILogger interface {
	SetLevel(level LogLevel)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Panicf(format string, args ...interface{})
}

// --------------------------------------------------------------------------
// Custom Logger
// --------------------------------------------------------------------------

// relayLogger implements the ILogger interface with custom formatting
type relayLogger struct {
	name   string
	level  LogLevel
	logger *log.Logger
}

func (l *relayLogger) SetLevel(level LogLevel) {
	l.level = level
}

func (l *relayLogger) Debugf(format string, args ...interface{}) {
	if l.level >= DEBUG {
		l.log("DEBUG", format, args...)
	}
}

func (l *relayLogger) Infof(format string, args ...interface{}) {
	if l.level >= INFO {
		l.log("INFO", format, args...)
	}
}

func (l *relayLogger) Warningf(format string, args ...interface{}) {
	if l.level >= WARNING {
		l.log("WARN", format, args...)
	}
}

func (l *relayLogger) Errorf(format string, args ...interface{}) {
	if l.level >= ERROR {
		l.log("ERROR", format, args...)
	}
}

func (l *relayLogger) Panicf(format string, args ...interface{}) {
	if l.level >= CRITICAL {
		panic(fmt.Sprintf(format, args...))
	}
}

// log formats and writes a log message. this internal helper is used by the public methods
func (l *relayLogger) log(levelStr string, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	l.logger.Printf("%-5s | %-15s | %s", levelStr, l.name, message)
}

// --------------------------------------------------------------------------
// Logger Registry
// --------------------------------------------------------------------------

var (
	loggersMu sync.Mutex
	loggers   = make(map[string]*relayLogger)
)

// GetLogger returns the named logger, creating it on first use.
// All loggers write to stdout with the same line format.
func GetLogger(pkgName string) ILogger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if l, ok := loggers[pkgName]; ok {
		return l
	}

	// Create standard logger with custom flags
	stdLogger := log.New(os.Stdout, "", log.Ldate|log.Ltime)

	l := &relayLogger{
		name:   pkgName,
		level:  INFO,
		logger: stdLogger,
	}
	loggers[pkgName] = l
	return l
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// ParseLogLevel converts a string level to LogLevel
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warning", "warn":
		return WARNING, nil
	case "error":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// InitLoggers sets the configured level on all loggers used by the relay
func InitLoggers(config ServerConfig) error {
	level, err := ParseLogLevel(config.LogLevel)
	if err != nil {
		return err
	}

	GetLogger("relay").SetLevel(level)
	GetLogger("relay/hub").SetLevel(level)
	GetLogger("client").SetLevel(level)

	return nil
}
