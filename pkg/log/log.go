// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	kindWidth   = 10 // Width for file kind
	actionWidth = 9  // Width for action text
)

// 🎬 Action is what happened to a file during a switch
type Action string

const (
	ActionWrite   Action = "write"
	ActionBackup  Action = "backup"
	ActionRestore Action = "restore"
	ActionSeed    Action = "seed"
	ActionDelete  Action = "delete"
)

// 🎯 FileOperation represents a file operation for logging
type FileOperation struct {
	Action Action // What happened
	Kind   string // manifest, lock, flag or status
	Target string // File that was written or removed
	Source string // File that was copied from, if any
}

// 📣 Reporter receives progress output from a switch
type Reporter interface {
	Header(msg string)
	Line(level int, msg string)
	FileOperation(op FileOperation)
	Newline()
	Info(msg string)
	Warning(msg string)
	Success(msg string)
}

// 🔇 Nop discards everything
type Nop struct{}

func (Nop) Header(string)               {}
func (Nop) Line(int, string)            {}
func (Nop) FileOperation(FileOperation) {}
func (Nop) Newline()                    {}
func (Nop) Info(string)                 {}
func (Nop) Warning(string)              {}
func (Nop) Success(string)              {}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

var _ Reporter = (*Logger)(nil)

// 🏭 New creates a new logger writing human output to console and
// mirroring every message to zlog
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 📝 formatFileOperation formats a file operation for display
func formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch op.Action {
	case ActionDelete:
		symbol = '✗'
		symbolColor = color.FgRed
	case ActionWrite:
		symbol = '✓'
		symbolColor = color.FgGreen
	case ActionBackup, ActionRestore, ActionSeed:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	line := fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, filepath.Base(op.Target)),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", kindWidth, op.Kind)),
		fmt.Sprintf("%-*s", actionWidth, op.Action))

	if op.Source != "" {
		line += color.New(color.Faint).Sprint("<- " + filepath.Base(op.Source))
	}

	return strings.TrimRight(line, " ")
}

// 📝 FileOperation logs a file operation
func (l *Logger) FileOperation(op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, formatFileOperation(op))

	l.zlog.Info().
		Str("action", string(op.Action)).
		Str("kind", op.Kind).
		Str("target", op.Target).
		Str("source", op.Source).
		Msg("file operation")
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("composer-switch")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Line logs an indented line. Level 1 is the outermost.
func (l *Logger) Line(level int, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, linePrefix(level)+msg)
	l.zlog.Info().Int("level", level).Msg(msg)
}

func linePrefix(level int) string {
	switch {
	case level <= 1:
		return "- "
	case level == 2:
		return "  - "
	default:
		return "    . "
	}
}

// 📝 Newline logs a newline
func (l *Logger) Newline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}
