// Package xlog implements the leveled, per-package logging used by every
// long-running component of raftsql: the raft engine, the transport layer,
// the node driver and the applier.
package xlog

import (
	"fmt"
	"os"
	"sync"
)

// Level is the set of all log levels, ordered from least to most verbose.
type Level int8

const (
	// CRITICAL logs are always emitted and terminate the process.
	CRITICAL Level = iota - 1
	// ERROR indicates a problem that does not abort the current operation.
	ERROR
	// WARN indicates a potential problem.
	WARN
	// INFO is routine operational logging.
	INFO
	// DEBUG is verbose diagnostic logging.
	DEBUG
)

// String returns a single-character representation of the level.
func (l Level) String() string {
	switch l {
	case CRITICAL:
		return "C"
	case ERROR:
		return "E"
	case WARN:
		return "W"
	case INFO:
		return "I"
	case DEBUG:
		return "D"
	default:
		return "?"
	}
}

// Logger logs on behalf of a single package.
type Logger struct {
	pkg    string
	maxLvl Level
}

func (l *Logger) log(lvl Level, txt string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if l.maxLvl < lvl {
		return
	}
	registry.formatter.WriteFlush(l.pkg, lvl, txt)
}

// Fatal logs at CRITICAL and exits the process. Used for the
// spec's fatal-to-the-node-process errors (state machine errors,
// unrecoverable log-store I/O).
func (l *Logger) Fatal(args ...interface{}) {
	l.log(CRITICAL, fmt.Sprint(args...))
	os.Exit(1)
}

func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log(CRITICAL, fmt.Sprintf(format, args...))
	os.Exit(1)
}

func (l *Logger) Error(args ...interface{})            { l.log(ERROR, fmt.Sprint(args...)) }
func (l *Logger) Errorf(f string, args ...interface{}) { l.log(ERROR, fmt.Sprintf(f, args...)) }

func (l *Logger) Warning(args ...interface{})            { l.log(WARN, fmt.Sprint(args...)) }
func (l *Logger) Warningf(f string, args ...interface{}) { l.log(WARN, fmt.Sprintf(f, args...)) }

func (l *Logger) Info(args ...interface{})            { l.log(INFO, fmt.Sprint(args...)) }
func (l *Logger) Infof(f string, args ...interface{}) { l.log(INFO, fmt.Sprintf(f, args...)) }

func (l *Logger) Debug(args ...interface{})            { l.log(DEBUG, fmt.Sprint(args...)) }
func (l *Logger) Debugf(f string, args ...interface{}) { l.log(DEBUG, fmt.Sprintf(f, args...)) }

// SetMaxLevel updates this logger's verbosity.
func (l *Logger) SetMaxLevel(lvl Level) {
	registry.mu.Lock()
	l.maxLvl = lvl
	registry.mu.Unlock()
}

type loggerRegistry struct {
	mu        sync.Mutex
	loggers   map[string]*Logger
	formatter Formatter
}

var registry = &loggerRegistry{
	loggers:   make(map[string]*Logger),
	formatter: NewTextFormatter(os.Stderr),
}

// SetFormatter replaces the formatter used by all loggers.
func SetFormatter(f Formatter) {
	registry.mu.Lock()
	registry.formatter = f
	registry.mu.Unlock()
}

// SetGlobalMaxLevel sets the verbosity of every logger created so far.
func SetGlobalMaxLevel(lvl Level) {
	registry.mu.Lock()
	for _, lg := range registry.loggers {
		lg.maxLvl = lvl
	}
	registry.mu.Unlock()
}

// New returns a Logger prefixed with pkg, defaulting to INFO verbosity.
func New(pkg string) *Logger {
	lg := &Logger{pkg: pkg, maxLvl: INFO}
	registry.mu.Lock()
	registry.loggers[pkg] = lg
	registry.mu.Unlock()
	return lg
}
