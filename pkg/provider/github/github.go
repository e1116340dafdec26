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

package github

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/refx-sh/refx/pkg/config"
	"github.com/refx-sh/refx/pkg/provider"
)

func init() {
	provider.Register("github", New)
}

// 🎯 Provider implements the provider interface for GitHub
type Provider struct {
	client *github.Client
	logger zerolog.Logger
}

// 🏭 New creates a new GitHub provider. GITHUB_TOKEN is optional; without it
// only public library repositories are reachable.
func New(ctx context.Context) (provider.Provider, error) {
	logger := zerolog.Ctx(ctx)

	client := github.NewClient(nil)
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		client = client.WithAuthToken(token)
	}

	return &Provider{
		client: client,
		logger: *logger,
	}, nil
}

// 🔍 parseRepo parses a GitHub repository URL
func (p *Provider) parseRepo(repo string) (owner, name string, err error) {
	parts := strings.Split(repo, "/")
	if len(parts) < 2 {
		return "", "", errors.Errorf("invalid repository format: %s", repo)
	}

	return parts[len(parts)-2], parts[len(parts)-1], nil
}

// 📂 ListFiles returns the library files under the configured path
func (p *Provider) ListFiles(ctx context.Context, lib config.Library) ([]string, error) {
	owner, name, err := p.parseRepo(lib.Repo)
	if err != nil {
		return nil, errors.Errorf("parsing repo: %w", err)
	}

	// Get repository tree
	tree, _, err := p.client.Git.GetTree(ctx, owner, name, lib.Ref, true)
	if err != nil {
		return nil, errors.Errorf("getting repository tree: %w", err)
	}

	// Filter files by path
	var files []string
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}

		entryPath := entry.GetPath()
		if !strings.HasPrefix(entryPath, lib.Path) {
			continue
		}

		files = append(files, strings.TrimPrefix(strings.TrimPrefix(entryPath, lib.Path), "/"))
	}

	return files, nil
}

// 🔍 GetFile retrieves a single library file's contents
func (p *Provider) GetFile(ctx context.Context, lib config.Library, file string) (io.ReadCloser, error) {
	owner, name, err := p.parseRepo(lib.Repo)
	if err != nil {
		return nil, errors.Errorf("parsing repo: %w", err)
	}

	// Get file content
	content, _, _, err := p.client.Repositories.GetContents(ctx, owner, name, path.Join(lib.Path, file), &github.RepositoryContentGetOptions{
		Ref: lib.Ref,
	})
	if err != nil {
		return nil, errors.Errorf("getting file content: %w", err)
	}

	// Decode content; large files come back empty and must be downloaded
	// from the raw URL instead
	data, err := content.GetContent()
	if err != nil || (data == "" && content.GetDownloadURL() != "") {
		if url := content.GetDownloadURL(); url != "" {
			return provider.DownloadFile(ctx, url)
		}
		return nil, errors.Errorf("decoding content: %w", err)
	}

	return io.NopCloser(strings.NewReader(data)), nil
}

// 🎯 GetCommitHash returns the commit hash for the configured ref
func (p *Provider) GetCommitHash(ctx context.Context, lib config.Library) (string, error) {
	owner, name, err := p.parseRepo(lib.Repo)
	if err != nil {
		return "", errors.Errorf("parsing repo: %w", err)
	}

	// Get reference
	ref, _, err := p.client.Git.GetRef(ctx, owner, name, "refs/heads/"+lib.Ref)
	if err != nil {
		return "", errors.Errorf("getting reference: %w", err)
	}

	return ref.Object.GetSHA(), nil
}

// 🔗 GetPermalink returns a permanent link to a library file
func (p *Provider) GetPermalink(ctx context.Context, lib config.Library, commitHash string, file string) (string, error) {
	owner, name, err := p.parseRepo(lib.Repo)
	if err != nil {
		return "", errors.Errorf("parsing repo: %w", err)
	}

	return fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s/%s", owner, name, commitHash, lib.Path, file), nil
}

// 📝 GetSourceInfo returns a string describing the library source
func (p *Provider) GetSourceInfo(ctx context.Context, lib config.Library, commitHash string) (string, error) {
	if len(commitHash) < 7 {
		return lib.Repo, nil
	}
	return fmt.Sprintf("%s@%s", lib.Repo, commitHash[:7]), nil
}
