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

// Package editor defines the host text-buffer capability set the engine
// requires, plus an in-memory implementation used by the CLI and tests.
package editor

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📍 Position is a (line, column) location in a buffer. Both are zero-based;
// column counts bytes within the line.
type Position struct {
	Line   int
	Column int
}

// 🖍️ Highlight is an absolute half-open byte range to visually mark.
type Highlight struct {
	From int
	To   int
}

// 🔌 Buffer is the host text-buffer collaborator. The engine issues exactly
// one read and one write call per invocation; highlight attachment is
// idempotent per buffer identity.
type Buffer interface {
	// ID identifies this buffer view for attachment tracking.
	ID() string

	// Text returns the full document text.
	Text() string

	// SetText atomically replaces the full document text.
	SetText(text string)

	// Selection returns the current selection as a half-open byte range.
	Selection() (start, end int)

	// SelectionText returns the current selection text.
	SelectionText() string

	// ReplaceSelection replaces the current selection text, keeping the
	// selection anchored at its start.
	ReplaceSelection(text string)

	// Select sets the selection to a half-open byte range.
	Select(start, end int) error

	// OffsetToPosition maps a linear byte offset to a (line, column).
	OffsetToPosition(offset int) Position

	// PositionToOffset maps a (line, column) back to a linear byte offset.
	PositionToOffset(pos Position) int

	// SetHighlights replaces the buffer's highlight set.
	SetHighlights(ranges []Highlight)

	// ClearHighlights removes all highlights.
	ClearHighlights()
}

// 📄 MemoryBuffer is a string-backed Buffer.
type MemoryBuffer struct {
	id         string
	text       string
	selStart   int
	selEnd     int
	highlights []Highlight
}

// 🏭 NewMemoryBuffer creates a buffer with the given identity and content.
// The selection starts collapsed at offset 0.
func NewMemoryBuffer(id, text string) *MemoryBuffer {
	return &MemoryBuffer{id: id, text: text}
}

// ID implements Buffer.
func (b *MemoryBuffer) ID() string { return b.id }

// Text implements Buffer.
func (b *MemoryBuffer) Text() string { return b.text }

// SetText implements Buffer. The selection is clamped to the new length.
func (b *MemoryBuffer) SetText(text string) {
	b.text = text
	b.selStart = clamp(b.selStart, 0, len(text))
	b.selEnd = clamp(b.selEnd, b.selStart, len(text))
}

// Selection implements Buffer.
func (b *MemoryBuffer) Selection() (int, int) { return b.selStart, b.selEnd }

// SelectionText implements Buffer.
func (b *MemoryBuffer) SelectionText() string { return b.text[b.selStart:b.selEnd] }

// ReplaceSelection implements Buffer.
func (b *MemoryBuffer) ReplaceSelection(text string) {
	b.text = b.text[:b.selStart] + text + b.text[b.selEnd:]
	b.selEnd = b.selStart + len(text)
}

// Select implements Buffer.
func (b *MemoryBuffer) Select(start, end int) error {
	if start < 0 || end < start || end > len(b.text) {
		return errors.Errorf("invalid selection [%d, %d) for buffer of length %d", start, end, len(b.text))
	}
	b.selStart, b.selEnd = start, end
	return nil
}

// OffsetToPosition implements Buffer. Offsets beyond the end map to the end.
func (b *MemoryBuffer) OffsetToPosition(offset int) Position {
	offset = clamp(offset, 0, len(b.text))
	prefix := b.text[:offset]
	line := strings.Count(prefix, "\n")
	col := offset
	if i := strings.LastIndexByte(prefix, '\n'); i >= 0 {
		col = offset - i - 1
	}
	return Position{Line: line, Column: col}
}

// PositionToOffset implements Buffer. Out-of-range positions clamp to the
// nearest valid offset.
func (b *MemoryBuffer) PositionToOffset(pos Position) int {
	offset := 0
	for line := 0; line < pos.Line; line++ {
		i := strings.IndexByte(b.text[offset:], '\n')
		if i < 0 {
			return len(b.text)
		}
		offset += i + 1
	}
	lineEnd := len(b.text)
	if i := strings.IndexByte(b.text[offset:], '\n'); i >= 0 {
		lineEnd = offset + i
	}
	return clamp(offset+pos.Column, offset, lineEnd)
}

// SetHighlights implements Buffer.
func (b *MemoryBuffer) SetHighlights(ranges []Highlight) {
	b.highlights = append([]Highlight(nil), ranges...)
}

// ClearHighlights implements Buffer.
func (b *MemoryBuffer) ClearHighlights() {
	b.highlights = nil
}

// Highlights returns the current highlight set.
func (b *MemoryBuffer) Highlights() []Highlight {
	return append([]Highlight(nil), b.highlights...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
