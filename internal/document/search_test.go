package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFind(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		query         string
		caseSensitive bool
		want          []int
	}{
		{"case insensitive", "Foo bar foo FOO", "foo", false, []int{0, 8, 12}},
		{"case sensitive", "Foo bar foo FOO", "foo", true, []int{8}},
		{"non overlapping", "aaaa", "aa", true, []int{0, 2}},
		{"odd repeat", "aaaaa", "aa", true, []int{0, 2}},
		{"empty query", "abc", "", false, nil},
		{"longer than content", "ab", "abc", false, nil},
		{"no match", "abc", "x", false, nil},
		{"query folded too", "select * FROM t", "From", false, []int{9}},
		{"non ascii kept exact", "ÄÄ ää", "ää", false, []int{5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Find(tc.content, tc.query, tc.caseSensitive))
		})
	}
}

func TestPropertyFindSortedAndExact(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		content := rapid.StringOf(rapid.SampledFrom([]rune("aAbB \n"))).Draw(rt, "content")
		query := rapid.StringOfN(rapid.SampledFrom([]rune("aAb")), 1, 3, -1).Draw(rt, "query")
		cs := rapid.Bool().Draw(rt, "caseSensitive")

		prev := -len(query)
		for _, off := range Find(content, query, cs) {
			require.GreaterOrEqual(rt, off, prev+len(query))
			got := content[off : off+len(query)]
			if cs {
				require.Equal(rt, query, got)
			} else {
				require.True(rt, strings.EqualFold(query, got))
			}
			prev = off
		}
	})
}

func TestNextPrevWrap(t *testing.T) {
	d := New("a.txt", "x\nx\nx\n")
	require.False(t, d.NextMatch())
	require.False(t, d.PrevMatch())

	d.SetQuery("x")
	require.Equal(t, []int{0, 2, 4}, d.Search.Matches)

	require.True(t, d.PrevMatch())
	assert.Equal(t, 2, d.Search.Current)

	d.SetQuery("x")
	for _, want := range []int{0, 1, 2, 0} {
		require.True(t, d.NextMatch())
		assert.Equal(t, want, d.Search.Current)
	}
	for _, want := range []int{2, 1, 0, 2} {
		require.True(t, d.PrevMatch())
		assert.Equal(t, want, d.Search.Current)
	}
}

func TestSetCaseSensitive(t *testing.T) {
	d := New("a.txt", "Foo foo")
	d.SetQuery("foo")
	require.Len(t, d.Search.Matches, 2)
	d.NextMatch()

	d.SetCaseSensitive(true)
	assert.Equal(t, []int{4}, d.Search.Matches)
	assert.Equal(t, NoMatch, d.Search.Current)
}

func TestToggleSearch(t *testing.T) {
	d := New("a.txt", "")
	d.ToggleSearch()
	assert.True(t, d.Search.Active)
	d.ToggleSearch()
	assert.False(t, d.Search.Active)
}

func TestScrollRequests(t *testing.T) {
	d := New("a.txt", "one\ntwo\nthree\nfour\n")

	_, ok := d.TakeScroll()
	require.False(t, ok)

	assert.Equal(t, 4, d.GotoLine(99))
	assert.Equal(t, 1, d.GotoLine(-3))
	assert.Equal(t, 3, d.GotoLine(3))
	line, ok := d.TakeScroll()
	require.True(t, ok)
	assert.Equal(t, 3, line)
	_, ok = d.TakeScroll()
	require.False(t, ok)

	d.SetQuery("four")
	d.NextMatch()
	line, ok = d.TakeScroll()
	require.True(t, ok)
	assert.Equal(t, 4, line)
}

func TestGotoLineEmptyDocument(t *testing.T) {
	d := New("a.txt", "")
	assert.Equal(t, 1, d.GotoLine(5))
}

func TestLineHelpers(t *testing.T) {
	content := "ab\ncd\n\nef"
	assert.Equal(t, 1, LineOf(content, 0))
	assert.Equal(t, 1, LineOf(content, 2))
	assert.Equal(t, 2, LineOf(content, 3))
	assert.Equal(t, 4, LineOf(content, len(content)))

	assert.Equal(t, 0, LineStart(content, 1))
	assert.Equal(t, 3, LineStart(content, 2))
	assert.Equal(t, 6, LineStart(content, 3))
	assert.Equal(t, 7, LineStart(content, 4))
	assert.Equal(t, len(content), LineStart(content, 9))
}
