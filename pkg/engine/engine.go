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

// Package engine implements pattern compilation, scoped match scanning,
// escape-sequence post-processing, and sequential batch composition over
// saved expressions.
package engine

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/refx-sh/refx/pkg/editor"
	"github.com/refx-sh/refx/pkg/store"
)

// 🔧 Settings is the explicit per-call configuration of a transform. It is
// assembled by the caller from persisted toggles; the engine reads no
// ambient state.
type Settings struct {
	UseRegex        bool // regex mode vs literal substring mode
	SelectionOnly   bool // operate on the current selection instead of the document
	CaseInsensitive bool // case-insensitive scan (dialog path only)
	ExpandLineBreak bool // literal `\n` in the replacement becomes a line break
	ExpandTab       bool // literal `\t` in the replacement becomes a tab
}

// replacementOptions extracts the escape-expansion toggles.
func (s Settings) replacementOptions() ReplacementOptions {
	return ReplacementOptions{
		ExpandLineBreak: s.ExpandLineBreak,
		ExpandTab:       s.ExpandTab,
	}
}

// 📊 Result is the outcome of a transform over one text scope.
type Result struct {
	Text    string // rewritten scope text (original text when Count is 0)
	Count   int    // number of replacements; 0 means NoMatch, which is not an error
	Changed bool   // whether the text differs from the input
}

// 📐 ScopeText is the text currently under operation: the full document
// (base 0) or the current selection (base = selection start). Computed per
// invocation, never persisted.
type ScopeText struct {
	Text      string
	Base      int
	Selection bool
}

// 🔧 Options contains configuration for the engine.
type Options struct {
	// Store resolves group items against live saved expressions.
	Store *store.Store
}

// 🎯 Engine orchestrates single-expression, batch, and group application
// over a text scope. Execution is single-threaded, synchronous, and
// blocking: no internal parallelism, no timeouts, no cancellation.
type Engine struct {
	store *store.Store
}

// 🏭 New creates a new engine with the given options.
func New(opts Options) (*Engine, error) {
	if opts.Store == nil {
		return nil, errors.Errorf("store is required")
	}
	return &Engine{store: opts.Store}, nil
}

// 📝 ApplyOne applies a single expression to text. Regex mode compiles
// pattern+flags and rewrites every scanned match; zero matches is a NoMatch
// result (count 0, text unchanged), not an error. Literal mode treats the
// pattern as a plain substring and inserts the replacement verbatim — group
// tokens are not interpreted and compilation cannot fail.
func (e *Engine) ApplyOne(ctx context.Context, text string, expr store.Expression, set Settings) (Result, error) {
	if expr.Pattern == "" {
		return Result{Text: text}, errors.Errorf("applying expression: %w", ErrEmptyPattern)
	}

	replacement := ResolveReplacement(expr.Replace, set.replacementOptions())

	if !set.UseRegex {
		pieces := strings.Split(text, expr.Pattern)
		count := len(pieces) - 1
		if count == 0 {
			return Result{Text: text}, nil
		}
		return Result{
			Text:    strings.Join(pieces, replacement),
			Count:   count,
			Changed: true,
		}, nil
	}

	re, err := Compile(expr.Pattern, expr.Flags)
	if err != nil {
		return Result{Text: text}, errors.Errorf("applying expression: %w", err)
	}

	matches := Scan(text, re)
	if len(matches) == 0 {
		return Result{Text: text}, nil
	}

	rewritten := replaceAll(text, re, replacement, matches)
	zerolog.Ctx(ctx).Debug().
		Str("pattern", expr.Pattern).
		Str("flags", expr.Flags).
		Int("count", len(matches)).
		Msg("applied expression")

	return Result{
		Text:    rewritten,
		Count:   len(matches),
		Changed: rewritten != text,
	}, nil
}

// 🔄 ApplyBatch applies expressions strictly in list order, each against the
// OUTPUT of the previous one. The total count sums each pass's matches as
// measured against the text state at the moment it runs; later counts may
// reflect matches created or destroyed by earlier passes. A compile failure
// for any member aborts the whole batch: original text, count 0.
func (e *Engine) ApplyBatch(ctx context.Context, text string, exprs []store.Expression, set Settings) (Result, error) {
	current := text
	total := 0

	for _, expr := range exprs {
		res, err := e.ApplyOne(ctx, current, expr, set)
		if err != nil {
			return Result{Text: text}, errors.Errorf("batch expression %q: %w", expr.Name, err)
		}
		current = res.Text
		total += res.Count
	}

	return Result{
		Text:    current,
		Count:   total,
		Changed: current != text,
	}, nil
}

// 📦 ApplyGroup resolves the group's items against the live store in stored
// order, silently dropping dangling names, then delegates to ApplyBatch. A
// group resolving to zero expressions is ErrEmptyGroup: no transform is
// attempted.
func (e *Engine) ApplyGroup(ctx context.Context, text string, group store.Group, set Settings) (Result, error) {
	exprs := e.store.ResolveGroup(group)
	if len(exprs) == 0 {
		return Result{Text: text}, errors.Errorf("applying group %q: %w", group.Name, ErrEmptyGroup)
	}
	return e.ApplyBatch(ctx, text, exprs, set)
}

// 📐 ReadScope issues the single read call for an invocation: the current
// selection when selection-only mode is active, the full document otherwise.
func ReadScope(buf editor.Buffer, selectionOnly bool) ScopeText {
	if selectionOnly {
		start, _ := buf.Selection()
		return ScopeText{Text: buf.SelectionText(), Base: start, Selection: true}
	}
	return ScopeText{Text: buf.Text()}
}

// writeScope issues the single write call for an invocation.
func writeScope(buf editor.Buffer, scope ScopeText, text string) {
	if scope.Selection {
		buf.ReplaceSelection(text)
		return
	}
	buf.SetText(text)
}

// 🏃 RunExpression applies one expression to the buffer's active scope,
// writing the result back only when something matched.
func (e *Engine) RunExpression(ctx context.Context, buf editor.Buffer, expr store.Expression, set Settings) (Result, error) {
	scope := ReadScope(buf, set.SelectionOnly)
	res, err := e.ApplyOne(ctx, scope.Text, expr, set)
	if err != nil {
		return res, err
	}
	if res.Count > 0 {
		writeScope(buf, scope, res.Text)
	}
	return res, nil
}

// 🏃 RunBatch applies an ordered list of expressions to the buffer's active
// scope. On compile failure for any member, none of the batch's changes are
// written.
func (e *Engine) RunBatch(ctx context.Context, buf editor.Buffer, exprs []store.Expression, set Settings) (Result, error) {
	scope := ReadScope(buf, set.SelectionOnly)
	res, err := e.ApplyBatch(ctx, scope.Text, exprs, set)
	if err != nil {
		return res, err
	}
	if res.Count > 0 {
		writeScope(buf, scope, res.Text)
	}
	return res, nil
}

// 🏃 RunGroup applies a saved group to the buffer's active scope.
func (e *Engine) RunGroup(ctx context.Context, buf editor.Buffer, group store.Group, set Settings) (Result, error) {
	scope := ReadScope(buf, set.SelectionOnly)
	res, err := e.ApplyGroup(ctx, scope.Text, group, set)
	if err != nil {
		return res, err
	}
	if res.Count > 0 {
		writeScope(buf, scope, res.Text)
	}
	return res, nil
}
