package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refx-sh/refx/pkg/editor"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		pattern     string
		flags       string
		base        int
		wantRanges  []Range
		wantInvalid bool
	}{
		{
			name:    "document scope uses base zero",
			text:    "aaa bbb aaa",
			pattern: "aaa",
			flags:   "gm",
			wantRanges: []Range{
				{From: 0, To: 3},
				{From: 8, To: 11},
			},
		},
		{
			name:    "selection scope offsets by base",
			text:    "aaa",
			pattern: "aaa",
			flags:   "gm",
			base:    10,
			wantRanges: []Range{
				{From: 10, To: 13},
			},
		},
		{
			name:        "empty pattern is invalid not an error",
			text:        "aaa",
			pattern:     "",
			flags:       "gm",
			wantInvalid: true,
		},
		{
			name:        "non-compiling pattern is invalid not an error",
			text:        "aaa",
			pattern:     "a(",
			flags:       "gm",
			wantInvalid: true,
		},
		{
			name:       "no match yields an empty valid result",
			text:       "aaa",
			pattern:    "zzz",
			flags:      "gm",
			wantRanges: nil,
		},
	}

	svc := NewService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.Preview(tt.text, tt.pattern, tt.flags, tt.base)
			assert.Equal(t, tt.wantInvalid, result.Invalid)
			assert.Equal(t, tt.wantRanges, result.Ranges)
			assert.False(t, result.Truncated)
		})
	}
}

func TestPreviewTruncation(t *testing.T) {
	svc := NewService()
	svc.maxItems = 3

	result := svc.Preview(strings.Repeat("a ", 5), "a", "gm", 0)
	require.Len(t, result.Ranges, 5, "ranges are never capped")
	assert.Len(t, result.Items, 3)
	assert.True(t, result.Truncated)
	assert.Equal(t, 2, result.Omitted)

	// item list keeps the first matches in order
	assert.Equal(t, 0, result.Items[0].Range.From)
	assert.Equal(t, 2, result.Items[1].Range.From)
	assert.Equal(t, 4, result.Items[2].Range.From)
}

func TestAttachIdempotent(t *testing.T) {
	svc := NewService()
	buf := editor.NewMemoryBuffer("buf-1", "aaa")
	other := editor.NewMemoryBuffer("buf-2", "aaa")

	assert.True(t, svc.Attach(buf))
	assert.False(t, svc.Attach(buf))
	assert.True(t, svc.Attach(other), "attachment is tracked per buffer identity")
}

func TestApply(t *testing.T) {
	svc := NewService()
	buf := editor.NewMemoryBuffer("buf-1", "aaa bbb aaa")

	svc.Apply(buf, svc.Preview(buf.Text(), "aaa", "gm", 0))
	require.Len(t, buf.Highlights(), 2)
	assert.Equal(t, editor.Highlight{From: 0, To: 3}, buf.Highlights()[0])
	assert.Equal(t, editor.Highlight{From: 8, To: 11}, buf.Highlights()[1])

	// a new computation fully supersedes the previous one
	svc.Apply(buf, svc.Preview(buf.Text(), "bbb", "gm", 0))
	require.Len(t, buf.Highlights(), 1)

	// invalid preview clears everything
	svc.Apply(buf, svc.Preview(buf.Text(), "", "gm", 0))
	assert.Empty(t, buf.Highlights())
}
