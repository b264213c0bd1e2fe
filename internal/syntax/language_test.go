package syntax

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Language
	}{
		{"cpp upper case", "main.CPP", CFamily},
		{"c header", "include/util.h", CFamily},
		{"hxx", "a.hxx", CFamily},
		{"python", "script.py", Python},
		{"python windowed", "gui.pyw", Python},
		{"html", "index.html", HTML},
		{"htm", "INDEX.HTM", HTML},
		{"css", "site.css", CSS},
		{"javascript", "app.js", JavaScript},
		{"no extension", "noext", Unknown},
		{"unknown extension", "main.go", Unknown},
		{"dot in directory only", "some.dir/Makefile", Unknown},
		{"trailing dot", "file.", Unknown},
		{"last extension wins", "bundle.min.js", JavaScript},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Classify(tc.filename))
		})
	}
}

func TestLanguageString(t *testing.T) {
	require.Equal(t, "C++", CFamily.String())
	require.Equal(t, "JavaScript", JavaScript.String())
	require.Equal(t, "Plain Text", Unknown.String())
}

func TestKeywordsFor(t *testing.T) {
	require.True(t, KeywordsFor(CFamily).Contains("constexpr"))
	require.True(t, KeywordsFor(Python).Contains("lambda"))
	require.True(t, KeywordsFor(JavaScript).Contains("typeof"))
	require.True(t, KeywordsFor(CSS).Contains("z-index"))
	require.True(t, KeywordsFor(HTML).Contains("div"))
	require.False(t, KeywordsFor(Python).Contains("int"))
	require.Zero(t, KeywordsFor(Unknown).Len())
	require.False(t, KeywordsFor(Unknown).Contains("if"))
}
