package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertExpression(t *testing.T) {
	s := New(nil, nil)

	require.ErrorIs(t, s.UpsertExpression(Expression{Pattern: "a"}), ErrMissingName)
	assert.Empty(t, s.Expressions())

	require.NoError(t, s.UpsertExpression(Expression{Name: "one", Pattern: "a"}))
	require.NoError(t, s.UpsertExpression(Expression{Name: "two", Pattern: "b"}))

	// re-saving by name replaces in place, preserving position
	require.NoError(t, s.UpsertExpression(Expression{Name: "one", Pattern: "c"}))

	exprs := s.Expressions()
	require.Len(t, exprs, 2)
	assert.Equal(t, "one", exprs[0].Name)
	assert.Equal(t, "c", exprs[0].Pattern)
	assert.Equal(t, "two", exprs[1].Name)
}

func TestUpsertGroup(t *testing.T) {
	s := New(nil, nil)

	require.ErrorIs(t, s.UpsertGroup(Group{Items: []string{"a"}}), ErrMissingName)

	require.NoError(t, s.UpsertGroup(Group{Name: "g", Items: []string{"a", "b"}}))
	require.NoError(t, s.UpsertGroup(Group{Name: "g", Items: []string{"c"}}))

	groups := s.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"c"}, groups[0].Items)
}

func TestDelete(t *testing.T) {
	s := New(
		[]Expression{{Name: "one"}, {Name: "two"}},
		[]Group{{Name: "g", Items: []string{"one", "two"}}},
	)

	assert.False(t, s.DeleteExpression("missing"))
	assert.True(t, s.DeleteExpression("one"))
	assert.False(t, s.DeleteExpression("one"))

	// no cascade: the group keeps the now-dangling name
	g, ok := s.FindGroup("g")
	require.True(t, ok)
	assert.Equal(t, []string{"one", "two"}, g.Items)

	assert.True(t, s.DeleteGroup("g"))
	assert.False(t, s.DeleteGroup("g"))
}

func TestFind(t *testing.T) {
	s := New([]Expression{{Name: "one", Pattern: "a"}}, []Group{{Name: "g"}})

	expr, ok := s.FindExpression("one")
	require.True(t, ok)
	assert.Equal(t, "a", expr.Pattern)

	_, ok = s.FindExpression("ONE")
	assert.False(t, ok, "exact lookup is case-sensitive")

	_, ok = s.FindGroup("g")
	assert.True(t, ok)

	_, ok = s.FindGroup("missing")
	assert.False(t, ok)
}

func TestFilter(t *testing.T) {
	s := New([]Expression{
		{Name: "Trim Trailing"},
		{Name: "collapse blanks"},
		{Name: "trim leading"},
	}, nil)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "empty query matches everything in order",
			query: "",
			want:  []string{"Trim Trailing", "collapse blanks", "trim leading"},
		},
		{
			name:  "case-insensitive substring",
			query: "TRIM",
			want:  []string{"Trim Trailing", "trim leading"},
		},
		{
			name:  "no hits",
			query: "zzz",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.FilterExpressions(tt.query)
			var names []string
			for _, e := range got {
				names = append(names, e.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestResolveGroup(t *testing.T) {
	s := New([]Expression{
		{Name: "A", Pattern: "a"},
		{Name: "B", Pattern: "b"},
	}, nil)

	resolved := s.ResolveGroup(Group{Name: "g", Items: []string{"B", "gone", "A"}})
	require.Len(t, resolved, 2)
	assert.Equal(t, "B", resolved[0].Name)
	assert.Equal(t, "A", resolved[1].Name)

	assert.Empty(t, s.ResolveGroup(Group{Name: "g", Items: []string{"gone"}}))
}

func TestCollectionsAreCopies(t *testing.T) {
	s := New([]Expression{{Name: "one", Pattern: "a"}}, nil)

	exprs := s.Expressions()
	exprs[0].Pattern = "mutated"

	stored, ok := s.FindExpression("one")
	require.True(t, ok)
	assert.Equal(t, "a", stored.Pattern)
}
