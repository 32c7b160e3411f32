// Package logging provides the structured Logger used by the filter runtime
// and the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Logger provides structured logging with optional key-value pairs.
type Logger interface {
	// Debug logs debug-level messages with optional key-value pairs.
	Debug(msg string, keysAndValues ...interface{})

	// Info logs info-level messages with optional key-value pairs.
	Info(msg string, keysAndValues ...interface{})

	// Warn logs warning-level messages with optional key-value pairs.
	Warn(msg string, keysAndValues ...interface{})

	// Error logs error-level messages with optional key-value pairs.
	Error(msg string, keysAndValues ...interface{})
}

// noopLogger is a Logger implementation that does nothing.
type noopLogger struct{}

func (n *noopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (n *noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (n *noopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (n *noopLogger) Error(msg string, keysAndValues ...interface{}) {}

// Noop returns a Logger that discards everything.
func Noop() Logger {
	return &noopLogger{}
}

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Console writes leveled lines to a writer, coloring the level tag when the
// writer is a terminal.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	min    Level
	colors map[Level]*color.Color
}

// NewConsole creates a Console that drops messages below min.
func NewConsole(w io.Writer, min Level) *Console {
	colors := map[Level]*color.Color{
		LevelDebug: color.New(color.FgHiBlack),
		LevelInfo:  color.New(color.FgGreen),
		LevelWarn:  color.New(color.FgYellow),
		LevelError: color.New(color.FgRed, color.Bold),
	}

	if !isTerminal(w) {
		for _, c := range colors {
			c.DisableColor()
		}
	}

	return &Console{w: w, min: min, colors: colors}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (c *Console) Debug(msg string, keysAndValues ...interface{}) {
	c.log(LevelDebug, msg, keysAndValues)
}

func (c *Console) Info(msg string, keysAndValues ...interface{}) {
	c.log(LevelInfo, msg, keysAndValues)
}

func (c *Console) Warn(msg string, keysAndValues ...interface{}) {
	c.log(LevelWarn, msg, keysAndValues)
}

func (c *Console) Error(msg string, keysAndValues ...interface{}) {
	c.log(LevelError, msg, keysAndValues)
}

func (c *Console) log(level Level, msg string, kv []interface{}) {
	if level < c.min {
		return
	}

	var b strings.Builder
	b.WriteString(c.colors[level].Sprintf("%-5s", strings.ToUpper(level.String())))
	b.WriteByte(' ')
	b.WriteString(msg)
	for i := 0; i < len(kv); i += 2 {
		if i+1 < len(kv) {
			fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
		} else {
			// Odd trailing key
			fmt.Fprintf(&b, " %v=?", kv[i])
		}
	}
	b.WriteByte('\n')

	c.mu.Lock()
	defer c.mu.Unlock()
	// Logging never fails the caller
	_, _ = io.WriteString(c.w, b.String())
}
