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

// Package status tracks per-entry outcomes while syncing expression
// libraries.
package status

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// 📊 EntryStatus represents the sync outcome for one stored entry
type EntryStatus int

const (
	StatusUnknown   EntryStatus = iota
	StatusNew                   // Entry did not exist in the store
	StatusUpdated               // Entry existed but its definition changed
	StatusUnchanged             // Entry existed with an identical definition
	StatusSkipped               // Library file ignored by pattern
)

// String returns a string representation of EntryStatus
func (s EntryStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusUpdated:
		return "updated"
	case StatusUnchanged:
		return "unchanged"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// 📄 Entry records the sync outcome of one expression or group
type Entry struct {
	Name    string      // Entry name
	Kind    string      // "expression" or "group"
	Library string      // Source library (repo@hash)
	File    string      // Library file the entry came from
	Status  EntryStatus // Sync outcome
}

// 🎯 Manager tracks entry outcomes and progress for one sync run
type Manager struct {
	mu      sync.Mutex
	entries []Entry
	current int
	total   int
}

// 🏭 NewManager creates a new status manager
func NewManager() *Manager {
	return &Manager{}
}

// 🏁 StartOperation begins tracking the next library's total files. Entries
// accumulate across libraries; the manager lives for one sync run.
func (m *Manager) StartOperation(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = 0
	m.total = total

	zerolog.Ctx(ctx).Debug().Int("total", total).Msg("starting sync")
}

// 📈 UpdateProgress records that current of total files are processed
func (m *Manager) UpdateProgress(ctx context.Context, current int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = current
}

// ➕ AddEntry records one entry outcome
func (m *Manager) AddEntry(ctx context.Context, entry Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, entry)

	zerolog.Ctx(ctx).Debug().
		Str("name", entry.Name).
		Str("kind", entry.Kind).
		Str("library", entry.Library).
		Str("status", entry.Status.String()).
		Msg("sync entry")
}

// 📋 Entries returns a copy of the recorded entries
func (m *Manager) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Entry(nil), m.entries...)
}

// 📊 Counts returns how many entries landed in each outcome
func (m *Manager) Counts() (added, updated, unchanged, skipped int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		switch e.Status {
		case StatusNew:
			added++
		case StatusUpdated:
			updated++
		case StatusUnchanged:
			unchanged++
		case StatusSkipped:
			skipped++
		}
	}
	return added, updated, unchanged, skipped
}

// 🏁 FinishOperation completes the sync run
func (m *Manager) FinishOperation(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	added, updated, unchanged := 0, 0, 0
	for _, e := range m.entries {
		switch e.Status {
		case StatusNew:
			added++
		case StatusUpdated:
			updated++
		case StatusUnchanged:
			unchanged++
		}
	}

	zerolog.Ctx(ctx).Info().
		Int("files", m.total).
		Int("new", added).
		Int("updated", updated).
		Int("unchanged", unchanged).
		Msg("sync complete")
}
