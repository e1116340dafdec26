// Copyright 2025 refx authors
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
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	exprIndent  = 4  // spaces to indent expression entries
	nameWidth   = 30 // Base width for expression name
	scopeWidth  = 12 // Width for scope
	statusWidth = 18 // Width for status text
)

// 🎯 ApplyOperation represents one expression pass for logging
type ApplyOperation struct {
	Expression string // Expression name (or "<dialog>" for ad-hoc patterns)
	Pattern    string // Pattern applied
	Scope      string // Scope operated on (document/selection)
	Count      int    // Number of replacements made
	Changed    bool   // Whether the text changed
	Invalid    bool   // Whether the pattern failed to compile
	Skipped    bool   // Whether the expression was skipped (dangling reference)
}

// 📦 RunOperation represents a buffer-level run for logging
type RunOperation struct {
	Action string // Action kind (apply/batch/group/preview)
	Buffer string // Buffer identity
	Scope  string // Scope (document/selection)
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentOp  *RunOperation
	operations []ApplyOperation
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatApplyOperation formats an expression pass for display
func (l *Logger) formatApplyOperation(op ApplyOperation) string {
	// Determine symbol and color
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.Invalid:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.Skipped:
		symbol = '-'
		symbolColor = color.FgYellow
	case op.Changed:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	// Status text
	status := "no match"
	switch {
	case op.Invalid:
		status = "invalid pattern"
	case op.Skipped:
		status = "skipped"
	case op.Count > 0:
		status = "replaced " + strconv.Itoa(op.Count)
	}

	// Build the line
	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", exprIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Expression),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", scopeWidth, op.Scope)),
		fmt.Sprintf("%-*s", statusWidth, status))
}

// 📝 LogApplyOperation logs one expression pass
func (l *Logger) LogApplyOperation(ctx context.Context, op ApplyOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Add to operations list
	l.operations = append(l.operations, op)

	// Format and print
	fmt.Fprintln(l.console, l.formatApplyOperation(op))

	// Log to zerolog
	l.zlog.Info().
		Str("expression", op.Expression).
		Str("pattern", op.Pattern).
		Str("scope", op.Scope).
		Int("count", op.Count).
		Bool("changed", op.Changed).
		Bool("invalid", op.Invalid).
		Bool("skipped", op.Skipped).
		Msg("apply operation")
}

// 📝 StartRunOperation starts a new buffer-level run
func (l *Logger) StartRunOperation(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.operations = nil

	// Print run header
	fmt.Fprintf(l.console, "[%s %s]\n",
		op.Action,
		color.New(color.FgCyan).Sprint(op.Buffer))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.Action),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprint(op.Scope))

	// Log to zerolog
	l.zlog.Info().
		Str("action", op.Action).
		Str("buffer", op.Buffer).
		Str("scope", op.Scope).
		Msg("starting run")
}

// 📝 EndRunOperation ends the current buffer-level run
func (l *Logger) EndRunOperation(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	total := 0
	for _, op := range l.operations {
		total += op.Count
	}

	// Log summary
	l.zlog.Info().
		Str("action", l.currentOp.Action).
		Int("expressions", len(l.operations)).
		Int("total", total).
		Msg("run complete")

	l.currentOp = nil
	l.operations = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	refxText := color.New(color.Bold, color.FgCyan).Sprint("refx")
	fmt.Fprintf(l.console, "\n%s %s\n\n", refxText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
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

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
