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

package operation

import (
	"context"
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/refx-sh/refx/pkg/config"
	"github.com/refx-sh/refx/pkg/provider"
	"github.com/refx-sh/refx/pkg/status"
)

// maxConcurrentDownloads bounds the errgroup fetching library files.
const maxConcurrentDownloads = 4

// Sync implements Operator.Sync. Files are downloaded concurrently but
// applied to the store strictly in file order, so library authors control
// the resulting collection order.
func (o *operator) Sync(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("libraries", len(o.config.Libraries)).Msg("syncing expression libraries")

	for _, lib := range o.config.Libraries {
		if err := o.syncLibrary(ctx, lib); err != nil {
			return errors.Errorf("syncing library %s: %w", lib.Repo, err)
		}
	}

	o.statusMgr.FinishOperation(ctx)
	return nil
}

// 📦 syncLibrary pulls one library's files into the store
func (o *operator) syncLibrary(ctx context.Context, lib config.Library) error {
	logger := zerolog.Ctx(ctx)

	p, err := provider.Get(ctx, lib.Provider)
	if err != nil {
		return errors.Errorf("getting provider: %w", err)
	}

	// Resolve the source label up front for status entries
	commitHash, err := p.GetCommitHash(ctx, lib)
	if err != nil {
		return errors.Errorf("getting commit hash: %w", err)
	}
	source, err := p.GetSourceInfo(ctx, lib, commitHash)
	if err != nil {
		return errors.Errorf("getting source info: %w", err)
	}

	if o.userLogger != nil {
		o.userLogger.LogLibrary("syncing " + source)
	}

	// List files at path
	files, err := p.ListFiles(ctx, lib)
	if err != nil {
		return errors.Errorf("listing files: %w", err)
	}

	// Keep only library files, marking ignored ones
	var selected []string
	for _, file := range files {
		if !strings.HasSuffix(file, ".yaml") && !strings.HasSuffix(file, ".yml") {
			continue
		}
		if ignored, err := o.shouldIgnore(lib, file); err != nil {
			return err
		} else if ignored {
			o.statusMgr.AddEntry(ctx, status.Entry{
				Name:    file,
				Kind:    "file",
				Library: source,
				File:    file,
				Status:  status.StatusSkipped,
			})
			continue
		}
		selected = append(selected, file)
	}

	o.statusMgr.StartOperation(ctx, len(selected))

	// Download concurrently, preserving file order
	contents := make([][]byte, len(selected))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDownloads)
	for i, file := range selected {
		i, file := i, file
		g.Go(func() error {
			rc, err := p.GetFile(gctx, lib, file)
			if err != nil {
				return errors.Errorf("getting file %s: %w", file, err)
			}
			defer rc.Close()

			data, err := io.ReadAll(rc)
			if err != nil {
				return errors.Errorf("reading file %s: %w", file, err)
			}

			contents[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Errorf("downloading library files: %w", err)
	}

	// Apply sequentially in file order
	for i, file := range selected {
		if err := o.applyFile(ctx, source, file, contents[i]); err != nil {
			return errors.Errorf("applying file %s: %w", file, err)
		}
		o.statusMgr.UpdateProgress(ctx, i+1)
	}

	logger.Debug().Str("library", source).Int("files", len(selected)).Msg("library synced")
	return nil
}

// 🔍 shouldIgnore checks the library's ignore globs against a file path
func (o *operator) shouldIgnore(lib config.Library, file string) (bool, error) {
	for _, pattern := range lib.IgnorePatterns {
		matched, err := doublestar.Match(pattern, file)
		if err != nil {
			return false, errors.Errorf("matching ignore pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// 📄 applyFile parses one library file and upserts its entries in order
func (o *operator) applyFile(ctx context.Context, source, file string, data []byte) error {
	var libFile LibraryFile
	if err := yaml.Unmarshal(data, &libFile); err != nil {
		return errors.Errorf("parsing library file: %w", err)
	}

	for _, expr := range libFile.Expressions {
		entryStatus := status.StatusNew
		if existing, ok := o.store.FindExpression(expr.Name); ok {
			if existing == expr {
				entryStatus = status.StatusUnchanged
			} else {
				entryStatus = status.StatusUpdated
			}
		}

		if err := o.store.UpsertExpression(expr); err != nil {
			return errors.Errorf("storing expression %q: %w", expr.Name, err)
		}

		o.recordEntry(ctx, status.Entry{
			Name:    expr.Name,
			Kind:    "expression",
			Library: source,
			File:    file,
			Status:  entryStatus,
		})
	}

	for _, group := range libFile.Groups {
		entryStatus := status.StatusNew
		if existing, ok := o.store.FindGroup(group.Name); ok {
			if equalItems(existing.Items, group.Items) {
				entryStatus = status.StatusUnchanged
			} else {
				entryStatus = status.StatusUpdated
			}
		}

		if err := o.store.UpsertGroup(group); err != nil {
			return errors.Errorf("storing group %q: %w", group.Name, err)
		}

		o.recordEntry(ctx, status.Entry{
			Name:    group.Name,
			Kind:    "group",
			Library: source,
			File:    file,
			Status:  entryStatus,
		})
	}

	return nil
}

// recordEntry tracks the entry and renders the user-facing line
func (o *operator) recordEntry(ctx context.Context, entry status.Entry) {
	o.statusMgr.AddEntry(ctx, entry)
	if o.userLogger != nil {
		o.userLogger.LogEntry(entry)
	}
}

func equalItems(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
