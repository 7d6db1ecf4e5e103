package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleTagsAddMergesOverlapping(t *testing.T) {
	tags := NewStyleTags()
	tags.Add(TagBold, 5, 10)
	tags.Add(TagBold, 0, 3)
	tags.Add(TagBold, 3, 6)
	tags.Add(TagBold, 20, 15)

	assert.Equal(t, []Range{{0, 10}, {15, 20}}, tags.Ranges(TagBold))
}

func TestStyleTagsRemoveSplitsRange(t *testing.T) {
	tags := NewStyleTags()
	tags.Add(TagBold, 0, 10)
	tags.Remove(TagBold, 3, 6)

	assert.Equal(t, []Range{{0, 3}, {6, 10}}, tags.Ranges(TagBold))
	assert.True(t, tags.Has(TagBold, 2))
	assert.False(t, tags.Has(TagBold, 3))
	assert.True(t, tags.Has(TagBold, 6))

	tags.Remove(TagBold, 0, 10)
	assert.Empty(t, tags.Ranges(TagBold))
}

func TestToggleBoldTwiceRestoresState(t *testing.T) {
	tests := []struct {
		name    string
		initial []Range
		sel     Selection
	}{
		{"plain text", nil, Selection{2, 6}},
		{"already bold", []Range{{2, 6}}, Selection{2, 6}},
		{"bold elsewhere", []Range{{10, 12}}, Selection{0, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags := NewStyleTags()
			for _, r := range tt.initial {
				tags.Add(TagBold, r.Start, r.End)
			}
			before := tags.Ranges(TagBold)

			require.True(t, tags.ToggleBold(tt.sel))
			require.True(t, tags.ToggleBold(tt.sel))

			assert.Equal(t, before, tags.Ranges(TagBold))
		})
	}
}

func TestToggleBoldDecidesFromFirstCharacter(t *testing.T) {
	tags := NewStyleTags()
	tags.Add(TagBold, 0, 3)

	tags.ToggleBold(Selection{0, 8})
	assert.Empty(t, tags.Ranges(TagBold), "selection starting bold removes bold everywhere in it")

	tags.Add(TagBold, 5, 8)
	tags.ToggleBold(Selection{0, 8})
	assert.Equal(t, []Range{{0, 8}}, tags.Ranges(TagBold))
}

func TestStylingWithoutSelectionIsNoop(t *testing.T) {
	tags := NewStyleTags()

	assert.False(t, tags.ToggleBold(Selection{4, 4}))
	assert.False(t, tags.SetColor(Selection{4, 4}, "#ff0000"))
	assert.Empty(t, tags.Ranges(TagBold))
	assert.Empty(t, tags.Ranges(TagColor))
	_, configured := tags.Config(TagColor)
	assert.False(t, configured)
}

func TestSetColorReconfiguresWholeTag(t *testing.T) {
	tags := NewStyleTags()
	tags.SetColor(Selection{0, 2}, "#ff0000")
	tags.SetColor(Selection{4, 6}, "#0000ff")

	spans := tags.Spans("abcdefg")
	require.Len(t, spans, 4)
	assert.Equal(t, "#0000ff", spans[0].Foreground)
	assert.Equal(t, "", spans[1].Foreground)
	assert.Equal(t, "#0000ff", spans[2].Foreground)
}

func TestSpansUnionOfTags(t *testing.T) {
	tags := NewStyleTags()
	tags.ToggleBold(Selection{0, 5})
	tags.SetColor(Selection{3, 8}, "#00ff00")

	spans := tags.Spans("hello world")

	assert.Equal(t, []Span{
		{Text: "hel", Bold: true},
		{Text: "lo", Bold: true, Foreground: "#00ff00"},
		{Text: " wo", Foreground: "#00ff00"},
		{Text: "rld"},
	}, spans)
}

func TestSpansPlainAndEmpty(t *testing.T) {
	tags := NewStyleTags()
	assert.Nil(t, tags.Spans(""))
	assert.Equal(t, []Span{{Text: "привет"}}, tags.Spans("привет"))

	tags.Add(TagBold, 4, 100)
	assert.Equal(t, []Span{{Text: "прив"}, {Text: "ет", Bold: true}}, tags.Spans("привет"))
}

func TestEditKeepsRangesAttached(t *testing.T) {
	tests := []struct {
		name     string
		pos      int
		deleted  int
		inserted int
		want     []Range
	}{
		{"insert before", 0, 0, 2, []Range{{6, 10}}},
		{"insert at start boundary", 4, 0, 2, []Range{{6, 10}}},
		{"insert inside", 5, 0, 3, []Range{{4, 11}}},
		{"insert at end boundary", 8, 0, 2, []Range{{4, 8}}},
		{"insert after", 9, 0, 2, []Range{{4, 8}}},
		{"delete before", 0, 2, 0, []Range{{2, 6}}},
		{"delete overlapping start", 2, 4, 0, []Range{{2, 4}}},
		{"delete inside", 5, 2, 0, []Range{{4, 6}}},
		{"delete covering", 3, 6, 0, nil},
		{"replace inside", 5, 1, 3, []Range{{4, 10}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags := NewStyleTags()
			tags.Add(TagBold, 4, 8)

			tags.Edit(tt.pos, tt.deleted, tt.inserted)

			got := tags.Ranges(TagBold)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClearKeepsConfiguration(t *testing.T) {
	tags := NewStyleTags()
	tags.SetColor(Selection{0, 3}, "#123456")
	tags.Clear()

	assert.Empty(t, tags.Ranges(TagColor))
	style, ok := tags.Config(TagColor)
	require.True(t, ok)
	assert.Equal(t, "#123456", style.Foreground)
}
