package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refx-sh/refx/pkg/editor"
	"github.com/refx-sh/refx/pkg/store"
)

func newTestEngine(t *testing.T, exprs []store.Expression, groups []store.Group) *Engine {
	t.Helper()
	e, err := New(Options{Store: store.New(exprs, groups)})
	require.NoError(t, err)
	return e
}

func TestNew(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)

	e, err := New(Options{Store: store.New(nil, nil)})
	require.NoError(t, err)
	require.NotNil(t, e)
}

func TestApplyOne(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		expr      store.Expression
		set       Settings
		wantText  string
		wantCount int
		wantErr   error
	}{
		{
			name:      "regex replace",
			text:      "aaa bbb aaa",
			expr:      store.Expression{Pattern: "aaa", Flags: "gm", Replace: "zzz"},
			set:       Settings{UseRegex: true},
			wantText:  "zzz bbb zzz",
			wantCount: 2,
		},
		{
			name:      "no match is not an error",
			text:      "aaa",
			expr:      store.Expression{Pattern: "zzz", Flags: "gm", Replace: "x"},
			set:       Settings{UseRegex: true},
			wantText:  "aaa",
			wantCount: 0,
		},
		{
			name:     "empty pattern rejected before compile",
			text:     "aaa",
			expr:     store.Expression{Pattern: "", Flags: "gm", Replace: "x"},
			set:      Settings{UseRegex: true},
			wantText: "aaa",
			wantErr:  ErrEmptyPattern,
		},
		{
			name:     "malformed pattern",
			text:     "aaa",
			expr:     store.Expression{Pattern: "a(", Flags: "gm", Replace: "x"},
			set:      Settings{UseRegex: true},
			wantText: "aaa",
			wantErr:  ErrInvalidPattern,
		},
		{
			name:      "literal mode treats metacharacters verbatim",
			text:      "a.b c a.b",
			expr:      store.Expression{Pattern: "a.b", Flags: "gm", Replace: "X"},
			set:       Settings{},
			wantText:  "X c X",
			wantCount: 2,
		},
		{
			name:      "literal mode does not expand group tokens",
			text:      "aaa",
			expr:      store.Expression{Pattern: "aaa", Flags: "gm", Replace: "$1"},
			set:       Settings{},
			wantText:  "$1",
			wantCount: 1,
		},
		{
			name:      "literal mode never fails to compile",
			text:      "a( b a(",
			expr:      store.Expression{Pattern: "a(", Flags: "gm", Replace: "x"},
			set:       Settings{},
			wantText:  "x b x",
			wantCount: 2,
		},
		{
			name:      "escape expansion in regex mode",
			text:      "a,b",
			expr:      store.Expression{Pattern: ",", Flags: "gm", Replace: `\n`},
			set:       Settings{UseRegex: true, ExpandLineBreak: true},
			wantText:  "a\nb",
			wantCount: 1,
		},
		{
			name:      "escape expansion in literal mode",
			text:      "a,b",
			expr:      store.Expression{Pattern: ",", Flags: "gm", Replace: `\t`},
			set:       Settings{ExpandTab: true},
			wantText:  "a\tb",
			wantCount: 1,
		},
		{
			name:      "escapes stay literal when expansion is off",
			text:      "a,b",
			expr:      store.Expression{Pattern: ",", Flags: "gm", Replace: `\n`},
			set:       Settings{UseRegex: true},
			wantText:  `a\nb`,
			wantCount: 1,
		},
	}

	e := newTestEngine(t, nil, nil)
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.ApplyOne(ctx, tt.text, tt.expr, tt.set)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.text, res.Text)
				assert.Zero(t, res.Count)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, res.Text)
			assert.Equal(t, tt.wantCount, res.Count)
			assert.Equal(t, tt.wantText != tt.text, res.Changed)
		})
	}
}

// The reported count always equals the scan count for the same inputs.
func TestApplyOneCountMatchesScan(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	ctx := context.Background()

	text := "one two three two one"
	expr := store.Expression{Pattern: `\w+`, Flags: "gm", Replace: "w"}

	re, err := Compile(expr.Pattern, expr.Flags)
	require.NoError(t, err)

	res, err := e.ApplyOne(ctx, text, expr, Settings{UseRegex: true})
	require.NoError(t, err)
	assert.Equal(t, len(Scan(text, re)), res.Count)
}

func TestApplyBatch(t *testing.T) {
	exprA := store.Expression{Name: "A", Pattern: "foo", Flags: "gm", Replace: "bar"}
	exprB := store.Expression{Name: "B", Pattern: "bar", Flags: "gm", Replace: "baz"}

	e := newTestEngine(t, nil, nil)
	ctx := context.Background()

	t.Run("order matters: each pass sees the previous output", func(t *testing.T) {
		res, err := e.ApplyBatch(ctx, "foo", []store.Expression{exprA, exprB}, Settings{UseRegex: true})
		require.NoError(t, err)
		assert.Equal(t, "baz", res.Text)
		assert.Equal(t, 2, res.Count)

		res, err = e.ApplyBatch(ctx, "foo", []store.Expression{exprB, exprA}, Settings{UseRegex: true})
		require.NoError(t, err)
		assert.Equal(t, "bar", res.Text)
		assert.Equal(t, 1, res.Count)
	})

	t.Run("compile failure aborts the whole batch", func(t *testing.T) {
		bad := store.Expression{Name: "bad", Pattern: "a(", Flags: "gm", Replace: "x"}
		res, err := e.ApplyBatch(ctx, "foo", []store.Expression{exprA, bad}, Settings{UseRegex: true})
		require.ErrorIs(t, err, ErrInvalidPattern)
		assert.Equal(t, "foo", res.Text)
		assert.Zero(t, res.Count)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		res, err := e.ApplyBatch(ctx, "foo", nil, Settings{UseRegex: true})
		require.NoError(t, err)
		assert.Equal(t, "foo", res.Text)
		assert.Zero(t, res.Count)
		assert.False(t, res.Changed)
	})

	t.Run("self-stable batch reaches a fixed point", func(t *testing.T) {
		norm := store.Expression{Name: "norm", Pattern: "  +", Flags: "gm", Replace: " "}
		first, err := e.ApplyBatch(ctx, "a   b    c", []store.Expression{norm}, Settings{UseRegex: true})
		require.NoError(t, err)
		assert.Equal(t, "a b c", first.Text)

		second, err := e.ApplyBatch(ctx, first.Text, []store.Expression{norm}, Settings{UseRegex: true})
		require.NoError(t, err)
		assert.Equal(t, first.Text, second.Text)
		assert.False(t, second.Changed)
	})
}

func TestApplyGroup(t *testing.T) {
	exprs := []store.Expression{
		{Name: "A", Pattern: "foo", Flags: "gm", Replace: "bar"},
		{Name: "B", Pattern: "bar", Flags: "gm", Replace: "baz"},
	}

	ctx := context.Background()

	t.Run("resolves items in stored order", func(t *testing.T) {
		e := newTestEngine(t, exprs, nil)
		res, err := e.ApplyGroup(ctx, "foo", store.Group{Name: "g", Items: []string{"A", "B"}}, Settings{UseRegex: true})
		require.NoError(t, err)
		assert.Equal(t, "baz", res.Text)
		assert.Equal(t, 2, res.Count)
	})

	t.Run("dangling names behave like a batch of the remainder", func(t *testing.T) {
		e := newTestEngine(t, exprs, nil)
		withDangling, err := e.ApplyGroup(ctx, "foo", store.Group{Name: "g", Items: []string{"A", "gone", "B"}}, Settings{UseRegex: true})
		require.NoError(t, err)

		remainder, err := e.ApplyBatch(ctx, "foo", exprs, Settings{UseRegex: true})
		require.NoError(t, err)

		assert.Equal(t, remainder.Text, withDangling.Text)
		assert.Equal(t, remainder.Count, withDangling.Count)
	})

	t.Run("group resolving to nothing is an error", func(t *testing.T) {
		e := newTestEngine(t, nil, nil)
		res, err := e.ApplyGroup(ctx, "foo", store.Group{Name: "g", Items: []string{"gone"}}, Settings{UseRegex: true})
		require.ErrorIs(t, err, ErrEmptyGroup)
		assert.Equal(t, "foo", res.Text)
	})
}

func TestReadScope(t *testing.T) {
	buf := editor.NewMemoryBuffer("test", "hello world")
	require.NoError(t, buf.Select(6, 11))

	doc := ReadScope(buf, false)
	assert.Equal(t, "hello world", doc.Text)
	assert.Zero(t, doc.Base)
	assert.False(t, doc.Selection)

	sel := ReadScope(buf, true)
	assert.Equal(t, "world", sel.Text)
	assert.Equal(t, 6, sel.Base)
	assert.True(t, sel.Selection)
}

func TestRunExpression(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	ctx := context.Background()
	expr := store.Expression{Name: "w", Pattern: "world", Flags: "gm", Replace: "there"}

	t.Run("document scope writes the full text", func(t *testing.T) {
		buf := editor.NewMemoryBuffer("test", "hello world")
		res, err := e.RunExpression(ctx, buf, expr, Settings{UseRegex: true})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Count)
		assert.Equal(t, "hello there", buf.Text())
	})

	t.Run("selection scope only touches the selection", func(t *testing.T) {
		buf := editor.NewMemoryBuffer("test", "world world")
		require.NoError(t, buf.Select(6, 11))

		res, err := e.RunExpression(ctx, buf, expr, Settings{UseRegex: true, SelectionOnly: true})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Count)
		assert.Equal(t, "world there", buf.Text())
	})

	t.Run("no match leaves the buffer unwritten", func(t *testing.T) {
		buf := editor.NewMemoryBuffer("test", "hello")
		res, err := e.RunExpression(ctx, buf, expr, Settings{UseRegex: true})
		require.NoError(t, err)
		assert.Zero(t, res.Count)
		assert.Equal(t, "hello", buf.Text())
	})

	t.Run("compile failure leaves the buffer unwritten", func(t *testing.T) {
		buf := editor.NewMemoryBuffer("test", "hello")
		bad := store.Expression{Name: "bad", Pattern: "a(", Flags: "gm"}
		_, err := e.RunExpression(ctx, buf, bad, Settings{UseRegex: true})
		require.ErrorIs(t, err, ErrInvalidPattern)
		assert.Equal(t, "hello", buf.Text())
	})
}

func TestRunBatchSelection(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	ctx := context.Background()

	buf := editor.NewMemoryBuffer("test", "foo foo")
	require.NoError(t, buf.Select(4, 7))

	exprs := []store.Expression{
		{Name: "A", Pattern: "foo", Flags: "gm", Replace: "bar"},
		{Name: "B", Pattern: "bar", Flags: "gm", Replace: "baz"},
	}
	res, err := e.RunBatch(ctx, buf, exprs, Settings{UseRegex: true, SelectionOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "foo baz", buf.Text())
}

func TestRunGroup(t *testing.T) {
	exprs := []store.Expression{
		{Name: "A", Pattern: "foo", Flags: "gm", Replace: "bar"},
	}
	e := newTestEngine(t, exprs, nil)
	ctx := context.Background()

	buf := editor.NewMemoryBuffer("test", "foo")
	res, err := e.RunGroup(ctx, buf, store.Group{Name: "g", Items: []string{"A"}}, Settings{UseRegex: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, "bar", buf.Text())
}
