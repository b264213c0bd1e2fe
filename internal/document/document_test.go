package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bkmeneguello/codeview/internal/syntax"
)

const sample = "int x = 1; // comment\n\n// only comment\nint y;"

func TestNew(t *testing.T) {
	d := New("src/main.CPP", sample)

	assert.Equal(t, "main.CPP", d.Name)
	assert.Equal(t, syntax.CFamily, d.Language)
	assert.True(t, d.ShowComments)
	assert.True(t, d.Open)
	assert.Equal(t, sample, d.Processed)
	assert.Equal(t, NoMatch, d.Search.Current)
}

func TestToggleComments(t *testing.T) {
	d := New("main.cpp", sample)

	d.ToggleComments()
	require.False(t, d.ShowComments)
	require.Equal(t, "int x = 1;\nint y;\n", d.Processed)
	require.Equal(t, sample, d.Content)

	d.ToggleComments()
	require.Equal(t, sample, d.Processed)
}

func TestToggleCommentsRefreshesSearch(t *testing.T) {
	d := New("main.cpp", sample)
	d.SetQuery("comment")
	require.Len(t, d.Search.Matches, 2)
	require.True(t, d.NextMatch())

	d.SetShowComments(false)
	assert.Empty(t, d.Search.Matches)
	assert.Equal(t, NoMatch, d.Search.Current)
}

func TestReprocessIsPure(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		content := rapid.StringOf(rapid.SampledFrom([]rune("ab/*#\"\n "))).Draw(rt, "content")
		d := New(rapid.SampledFrom([]string{"a.c", "a.py", "a.css", "a.js", "a.html", "a.txt"}).Draw(rt, "name"), content)
		d.SetShowComments(rapid.Bool().Draw(rt, "show"))

		before := d.Processed
		d.Reprocess()
		require.Equal(rt, before, d.Processed)
	})
}

func TestReload(t *testing.T) {
	d := New("a.py", "x = 1  # one\n")
	d.SetShowComments(false)
	d.SetQuery("y")

	d.Reload("y = 2  # two\n")
	assert.Equal(t, "y = 2\n", d.Processed)
	assert.Equal(t, []int{0}, d.Search.Matches)
	assert.False(t, d.ShowComments)
}

func TestClose(t *testing.T) {
	d := New("a.py", "x = 1\n")
	d.Close()
	assert.False(t, d.Open)
}

func TestScanStartsFresh(t *testing.T) {
	d := New("a.c", "x /* open\nstill\n")
	for range 2 {
		var first []syntax.Token
		d.Scan(func(i int, _ string, toks []syntax.Token) bool {
			if i == 0 {
				first = toks
			}
			return true
		})
		require.NotEmpty(t, first)
		require.Equal(t, syntax.Token{Start: 0, Text: "x", Category: syntax.Default}, first[0])
	}
}

func loader(files map[string]string) func(string) (string, error) {
	return func(path string) (string, error) {
		content, ok := files[path]
		if !ok {
			return "", errors.New("no such file")
		}
		return content, nil
	}
}

func TestWorkspaceOpenDedupes(t *testing.T) {
	w := NewWorkspace()
	load := loader(map[string]string{"a.c": "a", "b.py": "b", "./a.c": "a"})

	a, created, err := w.Open("a.c", load)
	require.NoError(t, err)
	require.True(t, created)

	_, created, err = w.Open("b.py", load)
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, 1, w.ActiveIndex())

	again, created, err := w.Open("./a.c", load)
	require.NoError(t, err)
	require.False(t, created)
	require.Same(t, a, again)
	require.Equal(t, 2, w.Len())
	require.Same(t, a, w.Active())
}

func TestWorkspaceOpenError(t *testing.T) {
	w := NewWorkspace()
	_, _, err := w.Open("missing.c", loader(nil))
	require.Error(t, err)
	require.Zero(t, w.Len())
	require.Nil(t, w.Active())
}

func TestWorkspaceClose(t *testing.T) {
	w := NewWorkspace()
	load := loader(map[string]string{"a": "", "b": "", "c": ""})
	for _, p := range []string{"a", "b", "c"} {
		_, _, err := w.Open(p, load)
		require.NoError(t, err)
	}

	w.Activate(1)
	b := w.Active()
	require.True(t, w.Close(b))
	assert.False(t, b.Open)
	assert.Equal(t, "c", w.Active().Path)

	require.True(t, w.Close(w.Active()))
	assert.Equal(t, "a", w.Active().Path)

	require.False(t, w.Close(b))

	require.True(t, w.Close(w.Active()))
	assert.Nil(t, w.Active())
	assert.Equal(t, -1, w.ActiveIndex())
}

func TestWorkspaceCloseBeforeActive(t *testing.T) {
	w := NewWorkspace()
	load := loader(map[string]string{"a": "", "b": ""})
	a, _, _ := w.Open("a", load)
	b, _, _ := w.Open("b", load)

	require.True(t, w.Close(a))
	assert.Same(t, b, w.Active())
}

func TestWorkspaceCycle(t *testing.T) {
	w := NewWorkspace()
	w.Next()
	w.Prev()
	require.Nil(t, w.Active())

	load := loader(map[string]string{"a": "", "b": "", "c": ""})
	for _, p := range []string{"a", "b", "c"} {
		_, _, _ = w.Open(p, load)
	}
	w.Next()
	assert.Equal(t, "a", w.Active().Path)
	w.Prev()
	assert.Equal(t, "c", w.Active().Path)
	assert.False(t, w.Activate(3))

	d, ok := w.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, "b", d.Name)
	assert.Len(t, w.Documents(), 3)
}
