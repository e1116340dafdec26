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

// Package preview computes non-mutating live highlight ranges and a capped
// match list for the find dialog.
package preview

import (
	"github.com/refx-sh/refx/pkg/editor"
	"github.com/refx-sh/refx/pkg/engine"
)

// 🔢 DefaultMaxItems caps the human-scannable match list. Highlight ranges
// are never capped.
const DefaultMaxItems = 200

// 📐 Range is an absolute half-open match range.
type Range struct {
	From int
	To   int
}

// 📄 Item is one entry of the displayed match list.
type Item struct {
	Text  string // matched text
	Range Range  // absolute range of the match
}

// 📊 Result is a full preview computation. Each new computation fully
// supersedes the previous one; nothing is merged across invocations.
type Result struct {
	Ranges    []Range // full, untruncated set: highlights and the match count
	Items     []Item  // display list, capped at the service maximum
	Truncated bool    // whether Items was capped
	Omitted   int     // number of entries omitted from Items
	Invalid   bool    // empty or non-compiling pattern; never an error
}

// 🎯 Service computes previews and tracks, per buffer identity, whether the
// highlight capability has been attached yet.
type Service struct {
	maxItems int
	attached map[string]bool
}

// 🏭 NewService creates a preview service with the default item cap.
func NewService() *Service {
	return &Service{
		maxItems: DefaultMaxItems,
		attached: make(map[string]bool),
	}
}

// 🔍 Preview scans text and returns highlight ranges plus the capped display
// list. Offsets in both outputs are absolute: local match offset + base,
// where base is 0 for document scope or the selection start for selection
// scope. An empty or invalid pattern degrades to an empty Invalid result —
// this path is hit on every keystroke and must never fail.
func (s *Service) Preview(text, pattern, flags string, base int) Result {
	if pattern == "" {
		return Result{Invalid: true}
	}

	re, err := engine.Compile(pattern, flags)
	if err != nil {
		return Result{Invalid: true}
	}

	matches := engine.Scan(text, re)

	result := Result{}
	for i, m := range matches {
		r := Range{From: base + m.Start, To: base + m.Start + m.Length}
		result.Ranges = append(result.Ranges, r)
		if i < s.maxItems {
			result.Items = append(result.Items, Item{Text: m.Text, Range: r})
		}
	}

	if len(matches) > s.maxItems {
		result.Truncated = true
		result.Omitted = len(matches) - s.maxItems
	}

	return result
}

// 🖍️ Attach marks the highlight capability as attached to the given buffer
// view, reporting whether this call attached it. Attaching twice is a no-op.
func (s *Service) Attach(buf editor.Buffer) bool {
	if s.attached[buf.ID()] {
		return false
	}
	s.attached[buf.ID()] = true
	return true
}

// 🖍️ Apply pushes a preview's highlight ranges to the buffer, attaching the
// capability first if needed. An invalid preview clears all highlights.
func (s *Service) Apply(buf editor.Buffer, result Result) {
	s.Attach(buf)

	if result.Invalid || len(result.Ranges) == 0 {
		buf.ClearHighlights()
		return
	}

	highlights := make([]editor.Highlight, len(result.Ranges))
	for i, r := range result.Ranges {
		highlights[i] = editor.Highlight{From: r.From, To: r.To}
	}
	buf.SetHighlights(highlights)
}
