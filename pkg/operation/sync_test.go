package operation

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refx-sh/refx/pkg/config"
	"github.com/refx-sh/refx/pkg/provider"
	"github.com/refx-sh/refx/pkg/status"
	"github.com/refx-sh/refx/pkg/store"
)

// fakeProvider serves an in-memory file tree
type fakeProvider struct {
	files map[string]string
}

func (f *fakeProvider) ListFiles(ctx context.Context, lib config.Library) ([]string, error) {
	var out []string
	for name := range f.files {
		out = append(out, name)
	}
	// deterministic order for assertions
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j] < out[i] {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (f *fakeProvider) GetFile(ctx context.Context, lib config.Library, path string) (io.ReadCloser, error) {
	content, ok := f.files[path]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (f *fakeProvider) GetCommitHash(ctx context.Context, lib config.Library) (string, error) {
	return "abc1234", nil
}

func (f *fakeProvider) GetPermalink(ctx context.Context, lib config.Library, commitHash, file string) (string, error) {
	return lib.Repo + "/blob/" + commitHash + "/" + file, nil
}

func (f *fakeProvider) GetSourceInfo(ctx context.Context, lib config.Library, commitHash string) (string, error) {
	return lib.Repo + "@" + commitHash, nil
}

func registerFake(t *testing.T, files map[string]string) {
	t.Helper()
	provider.Register("fake", func(ctx context.Context) (provider.Provider, error) {
		return &fakeProvider{files: files}, nil
	})
}

func newTestOperator(t *testing.T, cfg *config.Config, s *store.Store) Operator {
	t.Helper()
	op, err := New(Options{
		Config:    cfg,
		Store:     s,
		StatusMgr: status.NewManager(),
	})
	require.NoError(t, err)
	return op
}

func TestNew(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)

	_, err = New(Options{Config: config.Default()})
	require.Error(t, err)

	_, err = New(Options{Config: config.Default(), Store: store.New(nil, nil)})
	require.Error(t, err)
}

func TestSync(t *testing.T) {
	registerFake(t, map[string]string{
		"libs/cleanup.yaml": `
expressions:
  - name: trim-trailing
    pattern: "[ \t]+$"
    flags: gm
    replace: ""
  - name: collapse-blanks
    pattern: "\n{3,}"
    flags: gm
    replace: "\n\n"
groups:
  - name: cleanup
    items: [trim-trailing, collapse-blanks]
`,
		"libs/notes.md": "not a library file",
	})

	cfg := config.Default()
	cfg.Libraries = []config.Library{{Provider: "fake", Repo: "github.com/org/exprs", Ref: "main", Path: "libs"}}

	s := store.New(nil, nil)
	statusMgr := status.NewManager()
	op, err := New(Options{Config: cfg, Store: s, StatusMgr: statusMgr})
	require.NoError(t, err)

	require.NoError(t, op.Sync(context.Background()))

	exprs := s.Expressions()
	require.Len(t, exprs, 2)
	assert.Equal(t, "trim-trailing", exprs[0].Name, "file order decides collection order")
	assert.Equal(t, "collapse-blanks", exprs[1].Name)

	groups := s.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, "cleanup", groups[0].Name)

	added, updated, unchanged, skipped := statusMgr.Counts()
	assert.Equal(t, 3, added)
	assert.Zero(t, updated)
	assert.Zero(t, unchanged)
	assert.Zero(t, skipped)
}

func TestSyncEntryStatuses(t *testing.T) {
	registerFake(t, map[string]string{
		"libs/one.yaml": `
expressions:
  - name: same
    pattern: "a"
    flags: gm
    replace: "b"
  - name: changed
    pattern: "new"
    flags: gm
    replace: "new"
`,
	})

	cfg := config.Default()
	cfg.Libraries = []config.Library{{Provider: "fake", Repo: "github.com/org/exprs", Ref: "main", Path: "libs"}}

	s := store.New([]store.Expression{
		{Name: "same", Pattern: "a", Flags: "gm", Replace: "b"},
		{Name: "changed", Pattern: "old", Flags: "gm", Replace: "old"},
		{Name: "local-only", Pattern: "x", Flags: "gm"},
	}, nil)

	statusMgr := status.NewManager()
	op, err := New(Options{Config: cfg, Store: s, StatusMgr: statusMgr})
	require.NoError(t, err)

	require.NoError(t, op.Sync(context.Background()))

	added, updated, unchanged, _ := statusMgr.Counts()
	assert.Zero(t, added)
	assert.Equal(t, 1, updated)
	assert.Equal(t, 1, unchanged)

	// updated in place, local entries untouched
	exprs := s.Expressions()
	require.Len(t, exprs, 3)
	assert.Equal(t, "changed", exprs[1].Name)
	assert.Equal(t, "new", exprs[1].Pattern)
	assert.Equal(t, "local-only", exprs[2].Name)
}

func TestSyncIgnorePatterns(t *testing.T) {
	registerFake(t, map[string]string{
		"libs/keep.yaml": `
expressions:
  - name: kept
    pattern: "a"
`,
		"libs/wip-drop.yaml": `
expressions:
  - name: dropped
    pattern: "b"
`,
	})

	cfg := config.Default()
	cfg.Libraries = []config.Library{{
		Provider:       "fake",
		Repo:           "github.com/org/exprs",
		Ref:            "main",
		Path:           "libs",
		IgnorePatterns: []string{"**/wip-*.yaml"},
	}}

	s := store.New(nil, nil)
	statusMgr := status.NewManager()
	op, err := New(Options{Config: cfg, Store: s, StatusMgr: statusMgr})
	require.NoError(t, err)

	require.NoError(t, op.Sync(context.Background()))

	_, ok := s.FindExpression("kept")
	assert.True(t, ok)
	_, ok = s.FindExpression("dropped")
	assert.False(t, ok)

	_, _, _, skipped := statusMgr.Counts()
	assert.Equal(t, 1, skipped)
}

func TestSyncUnknownProvider(t *testing.T) {
	cfg := config.Default()
	cfg.Libraries = []config.Library{{Provider: "nope", Repo: "github.com/org/exprs", Path: "libs"}}

	op := newTestOperator(t, cfg, store.New(nil, nil))
	require.Error(t, op.Sync(context.Background()))
}

func TestShouldIgnore(t *testing.T) {
	o := &operator{}

	tests := []struct {
		name     string
		patterns []string
		file     string
		want     bool
	}{
		{name: "no patterns", file: "libs/a.yaml", want: false},
		{name: "exact glob", patterns: []string{"libs/a.yaml"}, file: "libs/a.yaml", want: true},
		{name: "doublestar", patterns: []string{"**/drafts/**"}, file: "libs/drafts/x.yaml", want: true},
		{name: "non-matching", patterns: []string{"*.json"}, file: "libs/a.yaml", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := o.shouldIgnore(config.Library{IgnorePatterns: tt.patterns}, tt.file)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
