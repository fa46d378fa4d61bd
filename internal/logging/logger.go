// Package logging adapts the standard library logger to the glog.Logger
// interface used by the pool packages.
package logging

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// Level orders log severities.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (l Level) String() string {
	if l < LevelTrace || l > LevelFatal {
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel maps a name such as "warn" to a Level.
func ParseLevel(name string) (Level, error) {
	for i, n := range levelNames {
		if strings.EqualFold(name, n) {
			return Level(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// StdLogger writes one line per entry: "[LEVEL] message key=value ...".
type StdLogger struct {
	out      *log.Logger
	minLevel Level
	exit     func(int)
	scope    string
}

var _ glog.Logger = (*StdLogger)(nil)

// New creates a logger writing to w. Entries below minLevel are dropped.
func New(w io.Writer, minLevel Level) *StdLogger {
	return &StdLogger{
		out:      log.New(w, "", log.LstdFlags),
		minLevel: minLevel,
		exit:     os.Exit,
	}
}

// Named returns a copy that prefixes messages with [scope].
func (l *StdLogger) Named(scope string) *StdLogger {
	c := *l
	c.scope = scope
	return &c
}

func (l *StdLogger) Trace(msg string, args ...any) { l.write(LevelTrace, msg, args) }
func (l *StdLogger) Debug(msg string, args ...any) { l.write(LevelDebug, msg, args) }
func (l *StdLogger) Info(msg string, args ...any)  { l.write(LevelInfo, msg, args) }
func (l *StdLogger) Warn(msg string, args ...any)  { l.write(LevelWarn, msg, args) }
func (l *StdLogger) Error(msg string, args ...any) { l.write(LevelError, msg, args) }

func (l *StdLogger) Fatal(msg string, args ...any) {
	l.write(LevelFatal, msg, args)
	l.exit(1)
}

func (l *StdLogger) WithContext(context.Context) glog.Logger {
	return l
}

func (l *StdLogger) write(level Level, msg string, args []any) {
	if level < l.minLevel {
		return
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(level.String())
	b.WriteString("] ")
	if l.scope != "" {
		b.WriteString("[")
		b.WriteString(l.scope)
		b.WriteString("] ")
	}
	b.WriteString(msg)

	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
		} else {
			fmt.Fprintf(&b, " %v", args[i])
		}
	}

	l.out.Print(b.String())
}
